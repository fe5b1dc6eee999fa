package app

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the ordersim configuration, loadable from environment
// variables (ORDERSIM_ prefix), flags, or YAML config files.
type Config struct {
	BaseURL         string        `default:"http://localhost:5000/api" usage:"Restaurant API base URL" flag:"base-url"`
	Timeout         time.Duration `default:"10s" usage:"Per-request timeout"`
	OrderType       string        `default:"pickup" usage:"Fulfillment type (pickup or delivery)" flag:"order-type"`
	DeliveryAddress string        `default:"" usage:"Delivery address (delivery orders only)" flag:"delivery-address"`
	Notes           string        `default:"" usage:"Order notes"`
	CardNumber      string        `default:"4111 1111 1111 4242" usage:"Demo payment card number" flag:"card-number"`
	Items           []string      `usage:"Cart lines as menuItemID=quantity pairs; defaults to one of the first available item"`
}

// LoadConfig loads configuration from environment variables, flags, and YAML
// config files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERSIM",
		Files:     []string{"config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}

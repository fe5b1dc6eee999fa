// Package app wires the client, cart, and checkout orchestrator into the
// ordersim driver: load the menu, fill a cart, and run one full checkout
// against a configured backend.
package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"restaurant-client/internal/api"
	"restaurant-client/internal/cart"
	"restaurant-client/internal/checkout"
	"restaurant-client/internal/domain/menu"
	"restaurant-client/internal/domain/order"
)

// Run drives a single end-to-end checkout. It is the single wiring point of
// the binary.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	ctx = zctx.Base(ctx, lg)

	client := api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithTracerProvider(m.TracerProvider()),
	)

	items, err := client.ListMenu(ctx)
	if err != nil {
		return errors.Wrap(err, "load menu")
	}
	lg.Info("Menu loaded", zap.Int("items", len(items)))

	c := cart.New(items)
	if err := fillCart(c, cfg.Items, items); err != nil {
		return err
	}
	lg.Info("Cart filled",
		zap.Int("lines", len(c.Lines())),
		zap.String("total", c.Total().StringFixed(2)),
	)

	orch := checkout.New(c, client, client)
	orch.SetOrderType(order.Type(cfg.OrderType))
	orch.SetDeliveryAddress(cfg.DeliveryAddress)
	orch.SetNotes(cfg.Notes)

	if err := orch.Start(ctx); err != nil {
		return errors.Wrap(err, "start checkout")
	}
	if err := orch.ConfirmPayment(ctx, cfg.CardNumber); err != nil {
		return errors.Wrap(err, "confirm payment")
	}

	confirmed, ok := orch.State().(checkout.Confirmed)
	if !ok {
		return errors.Errorf("unexpected final state %T", orch.State())
	}
	lg.Info("Checkout confirmed",
		zap.Int64("order_id", confirmed.OrderID),
		zap.Int("history_rows", len(orch.Orders())),
	)
	return nil
}

// fillCart applies menuItemID=quantity pairs; with none given it orders one
// of the first available item so the simulation always has work to do.
func fillCart(c *cart.Cart, pairs []string, items []menu.Item) error {
	if len(pairs) == 0 {
		for _, item := range items {
			if item.Available {
				c.SetQuantity(item.ID, "1")
				return nil
			}
		}
		return errors.New("menu has no available items")
	}
	for _, pair := range pairs {
		idStr, qty, ok := strings.Cut(pair, "=")
		if !ok {
			return errors.Errorf("invalid cart line %q, want menuItemID=quantity", pair)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid menu item id in %q", pair)
		}
		c.SetQuantity(id, strings.TrimSpace(qty))
	}
	return nil
}

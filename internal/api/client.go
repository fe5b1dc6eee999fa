// Package api implements the typed HTTP client for the restaurant backend.
// The server is a black box; this package owns the wire contract: request
// encoding, the {message} error envelope, and strict response shapes where a
// missing identifier is an error rather than something to guess around.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"restaurant-client/internal/admin"
	"restaurant-client/internal/booking"
	"restaurant-client/internal/catalog"
	"restaurant-client/internal/checkout"
	"restaurant-client/pkg/httptransport"
)

// Compile-time checks that Client satisfies every consumer-side interface.
var (
	_ checkout.Gateway       = (*Client)(nil)
	_ checkout.HistoryLoader = (*Client)(nil)
	_ catalog.API            = (*Client)(nil)
	_ booking.API            = (*Client)(nil)
	_ admin.API              = (*Client)(nil)
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// ErrMalformedResponse indicates the server response was missing a required
// field or carried an unexpected shape. Treated as a remote failure, never a
// crash.
var ErrMalformedResponse = errors.New("malformed server response")

// APIError is a server-reported failure with its human-readable message from
// the {message} error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	return "server returned " + http.StatusText(e.StatusCode) + ": " + e.Message
}

// UserMessage returns the text suitable for direct display.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Client is the typed client over the restaurant API.
type Client struct {
	baseURL string
	httpc   *http.Client

	menuFlight singleflight.Group
}

type options struct {
	httpClient     *http.Client
	timeout        time.Duration
	userAgent      string
	tracerProvider trace.TracerProvider
}

// Option customizes a Client.
type Option func(*options)

// WithHTTPClient supplies a fully built http.Client, replacing the default
// instrumented transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithUserAgent overrides the User-Agent of the default client.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithTracerProvider sets the tracer provider for the default transport
// instead of the OpenTelemetry global.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:5000/api". The default transport traces requests via
// OpenTelemetry, stamps X-Request-ID, and logs through the context logger.
func NewClient(baseURL string, opts ...Option) *Client {
	o := options{
		timeout:   10 * time.Second,
		userAgent: "restaurant-client",
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpc := o.httpClient
	if httpc == nil {
		var otelOpts []otelhttp.Option
		if o.tracerProvider != nil {
			otelOpts = append(otelOpts, otelhttp.WithTracerProvider(o.tracerProvider))
		}
		httpc = &http.Client{
			Timeout: o.timeout,
			Transport: httptransport.Wrap(
				otelhttp.NewTransport(http.DefaultTransport, otelOpts...),
				httptransport.RequestID(),
				httptransport.UserAgent(o.userAgent),
				httptransport.LogRequests(),
			),
		}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// get issues a GET and returns the raw body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, false)
}

// do issues one request. Bodies are JSON; checkout POSTs additionally carry
// an Idempotency-Key identifying the attempt. Statuses >= 400 are decoded
// into *APIError.
func (c *Client) do(ctx context.Context, method, path string, body []byte, idempotencyKey bool) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey {
		req.Header.Set("Idempotency-Key", uuid.New().String())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeError(resp.StatusCode, data)
	}
	return data, nil
}

// decodeError extracts the {message} envelope; when absent the HTTP status
// text stands in.
func decodeError(code int, data []byte) error {
	msg := ""
	if len(data) > 0 {
		d := jx.DecodeBytes(data)
		_ = d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			if string(key) == "message" {
				s, err := d.Str()
				if err != nil {
					return err
				}
				msg = s
				return nil
			}
			return d.Skip()
		})
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &APIError{StatusCode: code, Message: msg}
}

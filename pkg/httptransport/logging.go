package httptransport

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// LogRequests returns middleware that logs every outgoing request with its
// method, URL, status, and duration. The logger is taken from the request
// context, so callers control the sink per call.
func LogRequests() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			lg := zctx.From(r.Context())
			start := time.Now()

			resp, err := next.RoundTrip(r)
			elapsed := time.Since(start)

			if err != nil {
				lg.Warn("http request failed",
					zap.String("method", r.Method),
					zap.String("url", r.URL.String()),
					zap.Duration("duration", elapsed),
					zap.Error(err),
				)
				return nil, err
			}

			lg.Debug("http request",
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.Int("status", resp.StatusCode),
				zap.Duration("duration", elapsed),
			)
			return resp, nil
		})
	}
}

package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mrchypark/shopclient/pkg/store"
	"golang.org/x/time/rate"
)

// OptionError is returned by New when an option is invalid.
type OptionError struct {
	Message string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("transport: configuration error: %s", e.Message)
}

// Option configures a Client.
type Option func(c *Client) error

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return &OptionError{"http client cannot be nil"}
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout sets the timeout of the underlying *http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return &OptionError{"timeout must be positive"}
		}
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
		return nil
	}
}

// WithRateLimit allows at most rps requests per second with bursts of burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 {
			return &OptionError{"rate limit must be positive"}
		}
		if burst <= 0 {
			return &OptionError{"rate limit burst must be positive"}
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

// WithStore enables ETag revalidation backed by s.
func WithStore(s store.Store) Option {
	return func(c *Client) error {
		c.store = s
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua == "" {
			return &OptionError{"user agent cannot be empty"}
		}
		c.userAgent = ua
		return nil
	}
}

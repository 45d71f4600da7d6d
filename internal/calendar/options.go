package calendar

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option configures a Submitter.
type Option func(*Submitter)

// WithHTTPClient sets the client whose transport, timeout and redirect policy
// are used for every request. The bearer token is layered on top of its
// transport.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Submitter) {
		s.base = c
	}
}

// WithLocation sets the zone used to pick the calendar date for date-only
// events. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Submitter) {
		s.loc = loc
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Submitter) {
		s.logger = l
	}
}

// WithRateLimit throttles outgoing requests to r per second with the given
// burst. Calls wait for a slot; nothing is dropped. A burst below 1 is
// raised to 1.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(s *Submitter) {
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(r, burst)
	}
}

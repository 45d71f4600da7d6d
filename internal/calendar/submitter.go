package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Submitter adds events to a Cronofy-style calendar API.
// It is safe for concurrent use; the token and HTTP client never change
// after construction.
type Submitter struct {
	token      string
	httpClient *http.Client
	base       *http.Client
	transport  http.RoundTripper
	loc        *time.Location
	logger     *zap.Logger
	limiter    *rate.Limiter
}

// NewSubmitter creates a Submitter that authenticates every request with the
// given bearer token.
func NewSubmitter(token string, opts ...Option) (*Submitter, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	s := &Submitter{
		token:  token,
		loc:    time.Local,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.httpClient, s.transport = bearerClient(s.base, token)
	return s, nil
}

// bearerClient copies base and wraps its transport so that each request
// carries "Authorization: Bearer <token>". Without a base transport the
// client gets its own clone of http.DefaultTransport. The unwrapped transport
// is returned so its idle connections can be released.
func bearerClient(base *http.Client, token string) (*http.Client, http.RoundTripper) {
	c := &http.Client{}
	if base != nil {
		*c = *base
	}
	rt := c.Transport
	if rt == nil {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}
	c.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   rt,
	}
	return c, rt
}

// Close releases idle connections held by the submitter's transport.
// oauth2.Transport does not forward CloseIdleConnections, so the call goes to
// the wrapped transport directly.
func (s *Submitter) Close() {
	if ci, ok := s.transport.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}

// EventsURL returns the add-event URL for a calendar. The calendar ID is
// inserted as given and must already be URL-safe.
func EventsURL(endpoint, calendarID string) string {
	return endpoint + "/calendars/" + calendarID + "/events"
}

// AddEvent submits ev with start and end rendered as calendar dates
// (yyyy-MM-dd) in the submitter's location. It returns the HTTP status code of
// the response; 202 means the API accepted the event.
func (s *Submitter) AddEvent(ctx context.Context, endpoint, calendarID string, ev Event) (int, error) {
	p := BuildPayload(ev, FormatDate(ev.Start, s.loc), FormatDate(ev.End, s.loc))
	return s.send(ctx, EventsURL(endpoint, calendarID), p)
}

// AddEventInZone submits ev with start and end converted to tzid and rendered
// as ISO-8601 instants. See FormatInstantInZone.
func (s *Submitter) AddEventInZone(ctx context.Context, endpoint, calendarID string, ev Event, tzid string) (int, error) {
	start, err := FormatInstantInZone(ev.Start, tzid)
	if err != nil {
		return 0, err
	}
	end, err := FormatInstantInZone(ev.End, tzid)
	if err != nil {
		return 0, err
	}
	return s.send(ctx, EventsURL(endpoint, calendarID), BuildPayload(ev, start, end))
}

func (s *Submitter) send(ctx context.Context, url string, p Payload) (int, error) {
	body, err := p.Encode()
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("%w: rate limit wait: %w", ErrTransport, err)
		}
	}

	s.logger.Debug("submitting event",
		zap.String("url", url),
		zap.String("event_id", p.EventID),
		zap.String("start", p.Start),
		zap.String("end", p.End),
	)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return 0, fmt.Errorf("%w: reading response: %w", ErrTransport, err)
	}

	s.logger.Debug("event submitted",
		zap.String("event_id", p.EventID),
		zap.Int("status", resp.StatusCode),
	)
	return resp.StatusCode, nil
}

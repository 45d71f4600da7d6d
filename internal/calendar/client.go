package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleSubmitter adds the same events to a Google Calendar through the
// Calendar v3 API.
type GoogleSubmitter struct {
	service *gcal.Service
	loc     *time.Location
}

// NewGoogleSubmitter creates a Google Calendar submitter.
// Optionally accepts an endpoint URL for testing with mock servers.
func NewGoogleSubmitter(ctx context.Context, httpClient *http.Client, endpoint ...string) (*GoogleSubmitter, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if len(endpoint) > 0 && endpoint[0] != "" {
		opts = append(opts, option.WithEndpoint(endpoint[0]))
	}

	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}

	return &GoogleSubmitter{
		service: srv,
		loc:     time.Local,
	}, nil
}

// SetLocation sets the zone used for all-day dates.
func (g *GoogleSubmitter) SetLocation(loc *time.Location) {
	if loc != nil {
		g.loc = loc
	}
}

// AddEvent inserts ev as an all-day event and returns the HTTP status code.
func (g *GoogleSubmitter) AddEvent(ctx context.Context, calendarID string, ev Event) (int, error) {
	return g.insert(ctx, calendarID, MapEventToGoogleDate(ev, g.loc))
}

// AddEventInZone inserts ev as a timed event in tzid and returns the HTTP
// status code.
func (g *GoogleSubmitter) AddEventInZone(ctx context.Context, calendarID string, ev Event, tzid string) (int, error) {
	event, err := MapEventToGoogleInstant(ev, tzid)
	if err != nil {
		return 0, err
	}
	return g.insert(ctx, calendarID, event)
}

func (g *GoogleSubmitter) insert(ctx context.Context, calendarID string, event *gcal.Event) (int, error) {
	if calendarID == "" {
		calendarID = "primary"
	}

	created, err := g.service.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return apiErr.Code, nil
		}
		return 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return created.HTTPStatusCode, nil
}

package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/drewfead/calpost/pkg/googlecaltest"
)

func newTestGoogleSubmitter(t *testing.T, server *googlecaltest.Server) *GoogleSubmitter {
	t.Helper()

	sub, err := NewGoogleSubmitter(context.Background(), &http.Client{}, server.URL)
	if err != nil {
		t.Fatalf("failed to create google submitter: %v", err)
	}
	return sub
}

func TestGoogleSubmitter_AddEvent(t *testing.T) {
	server := googlecaltest.NewServer()
	defer server.Close()

	sub := newTestGoogleSubmitter(t, server)
	sub.SetLocation(time.UTC)

	status, err := sub.AddEvent(context.Background(), "", testEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}

	events := server.GetEvents("primary")
	if len(events) != 1 {
		t.Fatalf("expected empty calendar ID to insert into 'primary', got %d events", len(events))
	}
	got := events[0]

	if got.Summary != "Planning" {
		t.Errorf("expected summary 'Planning', got %q", got.Summary)
	}
	if got.Description != "Sprint planning" {
		t.Errorf("expected description 'Sprint planning', got %q", got.Description)
	}
	if got.Start == nil || got.Start.Date != "2011-12-03" || got.Start.DateTime != "" {
		t.Errorf("expected all-day start 2011-12-03, got %+v", got.Start)
	}
	if got.ExtendedProperties == nil || got.ExtendedProperties.Private["event_id"] != "evt-1" {
		t.Errorf("expected stored event_id extended property, got %+v", got.ExtendedProperties)
	}
}

func TestGoogleSubmitter_AddEventInZone(t *testing.T) {
	server := googlecaltest.NewServer()
	defer server.Close()

	sub := newTestGoogleSubmitter(t, server)

	if _, err := sub.AddEventInZone(context.Background(), "team", testEvent(), "America/New_York"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := server.GetEvents("team")
	if len(events) != 1 {
		t.Fatalf("expected 1 event in 'team', got %d", len(events))
	}
	got := events[0]

	if got.Start == nil || got.Start.DateTime != "2011-12-03T15:15:30Z" {
		t.Errorf("expected start dateTime 2011-12-03T15:15:30Z, got %+v", got.Start)
	}
	if got.Start.TimeZone != "America/New_York" {
		t.Errorf("expected timeZone America/New_York, got %q", got.Start.TimeZone)
	}
	if got.End == nil || got.End.DateTime != "2011-12-03T16:15:30Z" {
		t.Errorf("expected end dateTime 2011-12-03T16:15:30Z, got %+v", got.End)
	}
	if got.ExtendedProperties == nil || got.ExtendedProperties.Private["event_id"] != "evt-1" {
		t.Errorf("expected stored event_id extended property, got %+v", got.ExtendedProperties)
	}
}

func TestGoogleSubmitter_UnknownZone(t *testing.T) {
	server := googlecaltest.NewServer()
	defer server.Close()

	sub := newTestGoogleSubmitter(t, server)
	if _, err := sub.AddEventInZone(context.Background(), "primary", testEvent(), "Not/AZone"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
	if len(server.GetEvents("primary")) != 0 {
		t.Error("expected nothing to be inserted")
	}
}

func TestGoogleSubmitter_APIErrorReturnsStatus(t *testing.T) {
	server := googlecaltest.NewServer()
	defer server.Close()
	server.FailWith(http.StatusForbidden)

	sub := newTestGoogleSubmitter(t, server)
	status, err := sub.AddEvent(context.Background(), "primary", testEvent())
	if err != nil {
		t.Fatalf("expected API error to be reported as status, got %v", err)
	}
	if status != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", status)
	}
}

func TestGoogleSubmitter_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	endpoint := ts.URL
	ts.Close()

	sub, _ := NewGoogleSubmitter(context.Background(), &http.Client{}, endpoint)
	_, err := sub.AddEvent(context.Background(), "primary", testEvent())
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

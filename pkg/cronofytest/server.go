// Package cronofytest provides a mock Cronofy-style calendar API server for testing.
package cronofytest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Event is an event as stored by the mock server.
type Event struct {
	EventID     string `json:"event_id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// Request is a recorded incoming request.
type Request struct {
	Method     string
	Path       string
	CalendarID string
	Header     http.Header
	Body       []byte
}

// Server is a mock calendar API server for testing.
type Server struct {
	*httptest.Server
	mu       sync.RWMutex
	events   map[string]map[string]Event // calendarID -> eventID -> event
	requests []Request
	token    string
	status   int
}

// NewServer creates a new mock calendar API server.
func NewServer() *Server {
	s := &Server{
		events: make(map[string]map[string]Event),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)

	s.Server = httptest.NewServer(mux)
	return s
}

// handleRequest records and routes all requests.
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("read body: %v", err), http.StatusBadRequest)
		return
	}

	calendarID, ok := parseEventsPath(r.URL.Path)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		CalendarID: calendarID,
		Header:     r.Header.Clone(),
		Body:       body,
	})
	token, status := s.token, s.status
	s.mu.Unlock()

	if !ok {
		http.Error(w, "unsupported endpoint", http.StatusNotFound)
		return
	}
	if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
		http.Error(w, "invalid bearer token", http.StatusUnauthorized)
		return
	}
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "expected application/json", http.StatusUnsupportedMediaType)
		return
	}

	s.upsertEvent(w, calendarID, body)
}

// parseEventsPath extracts the calendar ID from .../calendars/{calendarId}/events.
func parseEventsPath(path string) (string, bool) {
	idx := strings.Index(path, "/calendars/")
	if idx == -1 {
		return "", false
	}

	parts := strings.Split(path[idx+len("/calendars/"):], "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "events" {
		return "", false
	}
	return parts[0], true
}

// upsertEvent stores the event keyed by event_id and answers 202.
func (s *Server) upsertEvent(w http.ResponseWriter, calendarID string, body []byte) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	if event.EventID == "" {
		http.Error(w, "event_id is required", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events[calendarID] == nil {
		s.events[calendarID] = make(map[string]Event)
	}
	s.events[calendarID][event.EventID] = event

	w.WriteHeader(http.StatusAccepted)
}

// RequireToken makes the server answer 401 to requests that do not carry
// "Authorization: Bearer <token>". An empty token disables the check.
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetStatus forces the status code of every subsequent request to a known
// calendar path. Zero restores normal handling.
func (s *Server) SetStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Reset clears all events, recorded requests and overrides.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]map[string]Event)
	s.requests = nil
	s.token = ""
	s.status = 0
}

// Requests returns a copy of all recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Events returns the stored events for a calendar keyed by event_id.
func (s *Server) Events(calendarID string) map[string]Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	calEvents := s.events[calendarID]
	if calEvents == nil {
		return nil
	}

	out := make(map[string]Event, len(calEvents))
	for id, evt := range calEvents {
		out[id] = evt
	}
	return out
}

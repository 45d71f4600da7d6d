// Package cronofytest provides a mock Cronofy-style calendar API server for testing.
//
// The mock server accepts add-event requests the way the hosted API does,
// allowing tests to run without credentials or network access.
//
// # Supported Operations
//
//   - Add Event: POST /calendars/{calendarId}/events (upsert by event_id, answers 202)
//
// Any prefix before /calendars/ is accepted, so a base URL such as
// server.URL + "/v1" works the same as server.URL.
//
// # Basic Usage
//
//	server := cronofytest.NewServer()
//	defer server.Close()
//
//	sub, err := calendar.NewSubmitter("tok_xyz")
//	status, err := sub.AddEvent(ctx, server.URL+"/v1", "cal_abc123", calendar.Event{
//	    ID:      "evt-1",
//	    Summary: "Standup",
//	    Start:   start,
//	    End:     end,
//	})
//
// # Test Helpers
//
//	// Every request is recorded, including rejected ones
//	reqs := server.Requests()
//
//	// Stored events per calendar, keyed by event_id
//	events := server.Events("cal_abc123")
//
//	// Reject requests that do not carry this bearer token
//	server.RequireToken("tok_xyz")
//
//	// Answer every request with a fixed status
//	server.SetStatus(http.StatusUnprocessableEntity)
//
//	// Clear all data between tests
//	server.Reset()
package cronofytest

// Package googlecaltest provides a mock Google Calendar API server for testing.
//
// The mock server implements the Google Calendar API v3 event insert
// endpoint, which is all calpost's Google backend calls, so tests run without
// authentication or network access.
//
// # Supported Operations
//
//   - Insert Event: POST /calendars/{calendarId}/events
//
// # Basic Usage
//
//	server := googlecaltest.NewServer()
//	defer server.Close()
//
//	sub, err := calendar.NewGoogleSubmitter(ctx, &http.Client{}, server.URL)
//	status, err := sub.AddEvent(ctx, "primary", ev)
//
// # Test Helpers
//
//	// Get all inserted events for assertions
//	events := server.GetEvents("primary")
//
//	// Answer inserts with an API error
//	server.FailWith(http.StatusForbidden)
//
//	// Clear all data between tests
//	server.Reset()
package googlecaltest

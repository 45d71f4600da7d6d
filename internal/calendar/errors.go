package calendar

import "errors"

var (
	// ErrEmptyToken is returned when a submitter is built without a bearer token.
	ErrEmptyToken = errors.New("calendar: bearer token is required")

	// ErrTransport wraps any failure of the network exchange itself.
	// A status code returned alongside it is meaningless.
	ErrTransport = errors.New("calendar: request did not complete")
)

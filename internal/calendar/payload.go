package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Event is the set of fields submitted for a new calendar event.
// Start is not required to precede End; the remote API decides.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Payload is the request body of an add-event call. Field order is the
// order keys appear on the wire.
type Payload struct {
	EventID     string `json:"event_id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// BuildPayload pairs the event's text fields with already formatted times.
func BuildPayload(ev Event, start, end string) Payload {
	return Payload{
		EventID:     ev.ID,
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       start,
		End:         end,
	}
}

// Encode returns the compact JSON document. HTML characters are kept literal.
func (p Payload) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("unable to encode event payload: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

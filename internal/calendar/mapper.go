package calendar

import (
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// eventIDProperty is the private extended property holding the caller's event ID.
const eventIDProperty = "event_id"

// MapEventToGoogleDate converts ev to an all-day Google Calendar event.
func MapEventToGoogleDate(ev Event, loc *time.Location) *gcal.Event {
	event := baseGoogleEvent(ev)
	event.Start = &gcal.EventDateTime{Date: FormatDate(ev.Start, loc)}
	event.End = &gcal.EventDateTime{Date: FormatDate(ev.End, loc)}
	return event
}

// MapEventToGoogleInstant converts ev to a timed Google Calendar event.
// Times are written as UTC instants and tagged with tzid.
func MapEventToGoogleInstant(ev Event, tzid string) (*gcal.Event, error) {
	start, err := FormatInstantInZone(ev.Start, tzid)
	if err != nil {
		return nil, err
	}
	end, err := FormatInstantInZone(ev.End, tzid)
	if err != nil {
		return nil, err
	}

	event := baseGoogleEvent(ev)
	event.Start = &gcal.EventDateTime{DateTime: start, TimeZone: tzid}
	event.End = &gcal.EventDateTime{DateTime: end, TimeZone: tzid}
	return event, nil
}

func baseGoogleEvent(ev Event) *gcal.Event {
	event := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
	}
	if ev.ID != "" {
		event.ExtendedProperties = &gcal.EventExtendedProperties{
			Private: map[string]string{eventIDProperty: ev.ID},
		}
	}
	return event
}

package appointments

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

// ToICS serializa una cita como VCALENDAR con un único VEVENT, para que
// el cliente la importe en su calendario.
func ToICS(a Appointment) (string, error) {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, a.ID)
	event.Props.SetText(ical.PropSummary, a.Title)
	if a.Location != "" {
		event.Props.SetText(ical.PropLocation, a.Location)
	}
	if a.Notes != "" {
		event.Props.SetText(ical.PropDescription, a.Notes)
	}
	if a.Status == StatusCancelled {
		event.Props.SetText(ical.PropStatus, "CANCELLED")
	}

	stamp := a.UpdatedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	event.Props.SetDateTime(ical.PropDateTimeStart, a.Start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, a.End)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//appointment-calendar//NONSGML v1.0//EN")
	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encode ics: %w", err)
	}
	return buf.String(), nil
}

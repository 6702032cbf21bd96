package appointments

import (
	"strings"
	"testing"
	"time"
)

func TestToICS(t *testing.T) {
	a := Appointment{
		ID:          "appt-1",
		OwnerUserID: "u1",
		Title:       "Dental cleaning",
		Start:       time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC),
		Location:    "Clinic, Room 2",
		Notes:       "bring previous x-rays",
		Status:      StatusScheduled,
		CreatedAt:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	out, err := ToICS(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:appt-1",
		"SUMMARY:Dental cleaning",
		"DTSTART:20250401T100000Z",
		"DTEND:20250401T110000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestToICSCancelled(t *testing.T) {
	a := Appointment{
		ID:     "appt-2",
		Title:  "Checkup",
		Start:  time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC),
		Status: StatusCancelled,
	}

	out, err := ToICS(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "STATUS:CANCELLED") {
		t.Fatalf("expected cancelled status in output\n%s", out)
	}
}

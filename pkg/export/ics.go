package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/mbrivio/turni/core/model"
)

const calendarZone = "Europe/Rome"

// WriteICS writes the roster as a calendar with one timed event per assigned
// person: the driver at 11:00, crew members at 12:00 plus their slot index.
// Every event lasts one hour.
func WriteICS(w io.Writer, year int, assignments []model.Assignment) error {
	loc, err := time.LoadLocation(calendarZone)
	if err != nil {
		return err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//turni//roster %d//IT", year))

	addEvent := func(day time.Time, hour int, summary string) {
		ev := cal.AddEvent(uuid.NewString())
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(time.Hour))
		ev.SetSummary(summary)
		ev.SetDtStampTime(start)
	}

	for _, a := range assignments {
		if a.Driver != "" {
			addEvent(a.Date, 11, fmt.Sprintf("Driver: %s", a.Driver))
		}
		for i, name := range a.Crew {
			if name == "" {
				continue
			}
			addEvent(a.Date, 12+i, fmt.Sprintf("Crew: %s", name))
		}
	}
	return cal.SerializeTo(w)
}

package roster

import (
	"time"

	"github.com/mbrivio/turni/core/model"
)

// DefaultActiveWeekdays is used when the configuration selects no weekdays.
var DefaultActiveWeekdays = []model.Weekday{model.Friday, model.Saturday, model.Sunday}

// ActiveDates returns every date of the year whose weekday is in weekdays and
// whose month is in months, in ascending order. An empty or invalid weekday
// selection falls back to DefaultActiveWeekdays; an empty or invalid month
// selection means the whole year.
func ActiveDates(year int, weekdays []model.Weekday, months []time.Month) []time.Time {
	active := make(map[model.Weekday]bool, len(weekdays))
	for _, w := range weekdays {
		if w.Valid() {
			active[w] = true
		}
	}
	if len(active) == 0 {
		for _, w := range DefaultActiveWeekdays {
			active[w] = true
		}
	}

	activeMonths := make(map[time.Month]bool, len(months))
	for _, m := range months {
		if m >= time.January && m <= time.December {
			activeMonths[m] = true
		}
	}
	allMonths := len(activeMonths) == 0

	var out []time.Time
	end := model.Date(year, time.December, 31)
	for day := model.Date(year, time.January, 1); !day.After(end); day = day.AddDate(0, 0, 1) {
		if !active[model.WeekdayOf(day)] {
			continue
		}
		if !allMonths && !activeMonths[day.Month()] {
			continue
		}
		out = append(out, day)
	}
	return out
}

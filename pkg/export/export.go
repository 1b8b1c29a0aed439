// Package export renders a finished run into the formats consumed outside
// the engine: CSV/JSON assignment lists, a month-per-sheet spreadsheet, a
// calendar file and the decision log as text or JSONL.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"

	"github.com/mbrivio/turni/core/model"
)

// assignmentRow is the flat JSON shape of one scheduled day.
type assignmentRow struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Driver  string   `json:"driver,omitempty"`
	Crew    []string `json:"crew"`
}

func rowOf(a model.Assignment) assignmentRow {
	return assignmentRow{
		Date:    a.Date.Format("2006-01-02"),
		Weekday: model.WeekdayOf(a.Date).String(),
		Driver:  a.Driver,
		Crew:    a.CrewMembers(),
	}
}

// WriteJSON writes the assignment list to w in JSON format.
func WriteJSON(w io.Writer, assignments []model.Assignment) error {
	rows := make([]assignmentRow, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, rowOf(a))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteCSV writes the assignment list to w with one row per day.
func WriteCSV(w io.Writer, assignments []model.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "weekday", "driver", "crew1", "crew2", "crew3", "crew4"}); err != nil {
		return err
	}
	for _, a := range assignments {
		rec := []string{
			a.Date.Format("2006-01-02"),
			model.WeekdayOf(a.Date).String(),
			a.Driver,
		}
		for _, m := range a.Crew {
			rec = append(rec, m)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// monthsOf returns the months to render, honoring a run restricted to a
// subset of the year.
func monthsOf(selected []time.Month) []time.Month {
	if len(selected) == 0 {
		out := make([]time.Month, 0, 12)
		for m := time.January; m <= time.December; m++ {
			out = append(out, m)
		}
		return out
	}
	seen := make(map[time.Month]bool, len(selected))
	var out []time.Month
	for _, m := range selected {
		if m >= time.January && m <= time.December {
			seen[m] = true
		}
	}
	for m := time.January; m <= time.December; m++ {
		if seen[m] {
			out = append(out, m)
		}
	}
	return out
}

package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mbrivio/turni/core/report"
	"github.com/mbrivio/turni/core/roster"
)

// WriteDecisionText writes the human-readable run report: a summary header
// with workload distributions for both rosters, followed by every decision
// log entry in the order it was recorded.
func WriteDecisionText(w io.Writer, year int, res roster.Result, drivers, firefighters []string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Duty roster %d\n", year)
	fmt.Fprintf(bw, "Days scheduled: %d\n", len(res.Assignments))
	fmt.Fprintf(bw, "Drivers:      %s\n", report.Workload(drivers, res.DriverCounters))
	fmt.Fprintf(bw, "Firefighters: %s\n", report.Workload(firefighters, res.CrewCounters))
	fmt.Fprintf(bw, "\nDecisions (%d):\n", len(res.Decisions))
	for _, e := range res.Decisions {
		fmt.Fprintf(bw, "%s\n", e)
	}
	return bw.Flush()
}

// logRow is the flat JSON shape of one decision log entry.
type logRow struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// WriteDecisionJSONL writes the decision log one JSON object per line, for
// downstream ingestion.
func WriteDecisionJSONL(w io.Writer, entries []roster.Entry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		row := logRow{
			Date:     e.Date.Format("2006-01-02"),
			Category: string(e.Category),
			Message:  e.Message,
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

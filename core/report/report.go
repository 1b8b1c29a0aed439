// Package report derives workload distribution statistics from a finished
// run, used by the text report to show how evenly shifts were spread.
package report

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/mbrivio/turni/core/roster"
)

// Distribution summarizes how annual shift totals spread across one roster.
type Distribution struct {
	People int
	Total  int
	Mean   float64
	StdDev float64
	Min    int
	Max    int
}

// Workload computes the distribution of annual totals for the given names.
func Workload(names []string, c *roster.Counters) Distribution {
	d := Distribution{People: len(names)}
	if len(names) == 0 {
		return d
	}
	totals := make([]float64, len(names))
	d.Min = c.Annual(names[0])
	for i, name := range names {
		n := c.Annual(name)
		totals[i] = float64(n)
		d.Total += n
		if n < d.Min {
			d.Min = n
		}
		if n > d.Max {
			d.Max = n
		}
	}
	d.Mean = stat.Mean(totals, nil)
	if len(totals) > 1 {
		d.StdDev = stat.StdDev(totals, nil)
	}
	return d
}

// Spread is the gap between the most and least loaded person.
func (d Distribution) Spread() int { return d.Max - d.Min }

// String renders the distribution for the text report.
func (d Distribution) String() string {
	return fmt.Sprintf("%d people, %d shifts (mean %.1f, stddev %.2f, min %d, max %d)",
		d.People, d.Total, d.Mean, d.StdDev, d.Min, d.Max)
}

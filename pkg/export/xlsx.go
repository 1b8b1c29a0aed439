package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mbrivio/turni/core/model"
	"github.com/mbrivio/turni/core/roster"
)

// WriteXLSX writes the roster as a spreadsheet: one sheet per rendered month
// with the day-by-day assignments, plus a report sheet with per-person
// workload totals for both rosters.
func WriteXLSX(path string, res roster.Result, drivers, firefighters []string, months []time.Month) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	byMonth := make(map[time.Month][]model.Assignment)
	for _, a := range res.Assignments {
		m := a.Date.Month()
		byMonth[m] = append(byMonth[m], a)
	}

	rendered := monthsOf(months)
	for _, m := range rendered {
		sheet := m.String()
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		header := []any{"Date", "Weekday", "Driver", "Crew 1", "Crew 2", "Crew 3", "Crew 4"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		for i, a := range byMonth[m] {
			row := []any{
				a.Date.Format("2006-01-02"),
				model.WeekdayOf(a.Date).String(),
				a.Driver,
				a.Crew[0], a.Crew[1], a.Crew[2], a.Crew[3],
			}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}
	}

	if err := writeReportSheet(f, res, drivers, firefighters, rendered); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeReportSheet(f *excelize.File, res roster.Result, drivers, firefighters []string, months []time.Month) error {
	const sheet = "Report"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []any{"Name", "Total"}
	for _, m := range months {
		header = append(header, m.String())
	}
	for dow := model.Monday; dow <= model.Sunday; dow++ {
		header = append(header, dow.String())
	}

	writeRoster := func(title string, names []string, c *roster.Counters, startRow int) (int, error) {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", startRow), title); err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", startRow+1), &header); err != nil {
			return 0, err
		}
		row := startRow + 2
		for _, name := range names {
			vals := []any{name, c.Annual(name)}
			for _, m := range months {
				vals = append(vals, c.Month(name, m))
			}
			for dow := model.Monday; dow <= model.Sunday; dow++ {
				vals = append(vals, c.WeekdayOfYear(name, dow))
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &vals); err != nil {
				return 0, err
			}
			row++
		}
		return row + 1, nil
	}

	row, err := writeRoster("Firefighters", firefighters, res.CrewCounters, 1)
	if err != nil {
		return err
	}
	if _, err := writeRoster("Drivers", drivers, res.DriverCounters, row); err != nil {
		return err
	}
	return nil
}

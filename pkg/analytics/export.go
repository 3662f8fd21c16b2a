package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
)

type sheetStyles struct {
	title  int
	header int
	data   int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}
	border := func(color string) []excelize.Border {
		return []excelize.Border{
			{Type: "left", Color: color, Style: 1},
			{Type: "right", Color: color, Style: 1},
			{Type: "top", Color: color, Style: 1},
			{Type: "bottom", Color: color, Style: 1},
		}
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border("000000"),
	})
	if err != nil {
		return s, err
	}
	s.data, err = f.NewStyle(&excelize.Style{Border: border("CCCCCC")})
	return s, err
}

// writeTable writes headers at row and the rows below it.
func writeTable(f *excelize.File, st sheetStyles, sheet string, row int, headers []string, rows [][]interface{}) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.header); err != nil {
			return err
		}
	}
	for r, values := range rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, row+r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, st.data); err != nil {
				return err
			}
		}
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", last, 22)
}

func sortedCounts(m map[string]int) [][]interface{} {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]interface{}, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []interface{}{k, m[k]})
	}
	return rows
}

// ExportXLSX writes the dashboard as a workbook with one sheet per
// breakdown. Costs are written as numbers rounded to two places.
func ExportXLSX(d *Dashboard, generated time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		f.Close()
		return nil, err
	}

	steps := []func() error{
		func() error { return f.SetCellValue(summary, "A1", "RMA Analytics") },
		func() error { return f.SetCellStyle(summary, "A1", "A1", st.title) },
		func() error { return f.SetRowHeight(summary, 1, 30) },
		func() error {
			return f.SetCellValue(summary, "A2", fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04:05")))
		},
		func() error {
			return writeTable(f, st, summary, 4, []string{"Metric", "Value"}, [][]interface{}{
				{"Total RMAs", d.TotalRMAs},
				{"Open RMAs", d.OpenRMAs},
				{"Total Estimated Cost", d.TotalCost.Round(2).InexactFloat64()},
				{"Average Estimated Cost", d.AverageCost.InexactFloat64()},
				{"Open DTRs", d.OpenDTRs},
				{"ASCOMP Reports", d.Reports},
			})
		},
		func() error { return writeTable(f, st, summary, 12, []string{"Status", "Count"}, sortedCounts(d.ByStatus)) },
		func() error { return writeTable(f, st, summary, 14+len(d.ByStatus), []string{"Priority", "Count"}, sortedCounts(d.ByPriority)) },
		func() error {
			return writeTable(f, st, summary, 16+len(d.ByStatus)+len(d.ByPriority), []string{"Warranty", "Count"}, sortedCounts(d.ByWarranty))
		},
		func() error {
			rows := make([][]interface{}, 0, len(d.BySite))
			for _, s := range d.BySite {
				rows = append(rows, []interface{}{s.Site, s.Count, s.Open, s.Cost.Round(2).InexactFloat64()})
			}
			return newSheet(f, st, "By Site", []string{"Site", "RMAs", "Open", "Estimated Cost"}, rows)
		},
		func() error {
			rows := make([][]interface{}, 0, len(d.TopParts))
			for _, p := range d.TopParts {
				rows = append(rows, []interface{}{p.PartNumber, p.PartName, p.Count})
			}
			return newSheet(f, st, "Top Parts", []string{"Part Number", "Part Name", "RMAs"}, rows)
		},
		func() error {
			rows := make([][]interface{}, 0, len(d.Monthly))
			for _, m := range d.Monthly {
				rows = append(rows, []interface{}{m.Month, m.Count, m.Cost.Round(2).InexactFloat64(), m.GrowthRate})
			}
			return newSheet(f, st, "Monthly", []string{"Month", "RMAs", "Estimated Cost", "Growth %"}, rows)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func newSheet(f *excelize.File, st sheetStyles, name string, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeTable(f, st, name, 1, headers, rows)
}

// Package importer loads ASCOMP reports in bulk from CSV or Excel sheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"p9e.in/ascomp/pkg/csvmap"
)

var (
	// ErrUnsupported is returned for files that are neither CSV nor XLSX.
	ErrUnsupported = errors.New("unsupported import file type")
	// ErrEmptyFile means the file has no header row.
	ErrEmptyFile = errors.New("import file is empty")
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Row is one data row. Line is its spreadsheet row number, the header
// being row 1. Cells are keyed by header, and known headers are stored
// under their canonical key whatever case the sheet used. Cell text is
// kept as written; the mapper decides what to trim.
type Row struct {
	Line  int
	Cells map[string]string
}

// record is one raw line of the sheet and the row number it sits on.
type record struct {
	line  int
	cells []string
}

// ReadRows reads every data row from a .csv or .xlsx file. Only the first
// worksheet of a workbook is read.
func ReadRows(name string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", "":
		return readCSV(r)
	case ".xlsx":
		return readXLSX(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(name))
}

func readCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records []record
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, record{line: line, cells: rec})
	}
	return toRows(records)
}

func readXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	// GetRows keeps empty rows between filled ones, so the index is the
	// sheet row.
	records := make([]record, 0, len(rows))
	for i, cells := range rows {
		records = append(records, record{line: i + 1, cells: cells})
	}
	return toRows(records)
}

func toRows(records []record) ([]Row, error) {
	// Leading blank lines are skipped so the header is the first filled one.
	for len(records) > 0 && blank(records[0].cells) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	header := make([]string, len(records[0].cells))
	for i, h := range records[0].cells {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if k, ok := csvmap.CanonicalKey(h); ok {
			h = k
		}
		header[i] = h
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec.cells) {
			continue
		}
		row := Row{Line: rec.line, Cells: make(map[string]string, len(header))}
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec.cells) {
				row.Cells[h] = rec.cells[i]
			} else {
				row.Cells[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

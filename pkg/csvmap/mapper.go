// Package csvmap turns one flat spreadsheet row into a complete ASCOMP
// report. Row keys are the report's JSON paths joined with underscores
// (opticals_reflector_status, screenInfo_scope_height, engineer_name, ...).
package csvmap

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"p9e.in/ascomp/models"
)

// now is swapped in tests.
var now = time.Now

// MapRow builds a report from one row. Every section and field is present
// in the result whatever keys the row carries: text defaults to "",
// numbers to 0 and flags to false. Cells are trimmed except for flags,
// which must be spelled exactly. It never fails.
func MapRow(row map[string]string) models.ASCOMPReport {
	tree := map[string]interface{}{}
	var date time.Time

	for _, c := range columns {
		raw := strings.TrimSpace(row[c.Key])
		var v interface{}
		switch c.Kind {
		case KindResult:
			v = NormalizeResult(raw)
		case KindNumber:
			v = ParseNumber(raw)
		case KindBool:
			v = ParseBool(row[c.Key])
		case KindDate:
			date = ParseDate(raw)
			continue
		default:
			v = raw
		}
		setPath(tree, c.Path, v)
	}

	var report models.ASCOMPReport
	// The tree only holds strings, numbers and bools laid out on the
	// report's own JSON paths, so decoding cannot fail.
	if b, err := json.Marshal(tree); err == nil {
		_ = json.Unmarshal(b, &report)
	}
	report.Date = models.JSONTime(date)
	if report.Status == "" {
		report.Status = models.ReportSubmitted
	}
	return report
}

func setPath(tree map[string]interface{}, path string, v interface{}) {
	parts := strings.Split(path, ".")
	cur := tree
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

// ParseDate reads ISO dates first, then day-first DD/MM/YYYY, and falls
// back to the current time when neither matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		for _, layout := range []string{"02/01/2006", "2/1/2006"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return now()
}

// ParseBool is true only for "true", "Yes" and "1".
func ParseBool(s string) bool {
	switch s {
	case "true", "Yes", "1":
		return true
	}
	return false
}

// ParseNumber returns 0 for anything that is not a number.
func ParseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// NormalizeResult upper-cases a YES/NO/OK cell and accepts "NA" for "N/A".
func NormalizeResult(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "NA" {
		return models.ResultNA
	}
	return s
}

// ValidationResult is the outcome of checking one row.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

var required = []struct {
	key   string
	label string
}{
	{"cinemaName", "Cinema Name"},
	{"engineer_name", "Engineer Name"},
	{"date", "Date"},
}

// ValidateRow checks the three fields a report cannot do without. It
// reports every missing field rather than stopping at the first, so a batch
// import can list all problems at once.
func ValidateRow(row map[string]string, rowNumber int) ValidationResult {
	res := ValidationResult{Errors: []string{}}
	for _, f := range required {
		if strings.TrimSpace(row[f.key]) == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %s is required", rowNumber, f.label))
		}
	}
	res.Valid = len(res.Errors) == 0
	return res
}

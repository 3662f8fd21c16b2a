package csvmap

import (
	"strings"

	"p9e.in/ascomp/pkg/catalog"
)

// Kind is how a column's text is converted.
type Kind int

const (
	KindText Kind = iota
	KindResult
	KindNumber
	KindBool
	KindDate
)

// Column is one CSV header and where its value lands on the report.
type Column struct {
	Key  string // underscore-joined header, e.g. opticals_reflector_status
	Path string // dot path into the report JSON
	Kind Kind
}

var numberPaths = map[string]bool{
	"lampInfo.totalRunningHours":   true,
	"lampInfo.currentRunningHours": true,
}

// extraPaths are report fields that have no template token but are still
// importable.
var extraPaths = []string{"status", "clientSignature", "engineerSignature"}

var columns = buildColumns()

func buildColumns() []Column {
	var out []Column
	for _, s := range catalog.Sections() {
		for _, it := range s.Items {
			out = append(out,
				Column{Key: keyFor(s.StatusPath(it)), Path: s.StatusPath(it), Kind: KindText},
				Column{Key: keyFor(s.ResultPath(it)), Path: s.ResultPath(it), Kind: KindResult},
			)
		}
	}
	for _, f := range catalog.Fields() {
		c := Column{Key: keyFor(f.Path), Path: f.Path, Kind: KindText}
		switch {
		case f.Format == catalog.FormatDate:
			c.Kind = KindDate
		case f.Format == catalog.FormatBool:
			c.Kind = KindBool
		case numberPaths[f.Path]:
			c.Kind = KindNumber
		}
		out = append(out, c)
	}
	for _, p := range extraPaths {
		out = append(out, Column{Key: keyFor(p), Path: p, Kind: KindText})
	}
	return out
}

func keyFor(path string) string {
	return strings.ReplaceAll(path, ".", "_")
}

// Columns returns every importable header in template order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// Header returns just the header names, for writing an import template.
func Header() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Key
	}
	return out
}

var canonical = func() map[string]string {
	m := make(map[string]string, len(columns))
	for _, c := range columns {
		m[strings.ToLower(c.Key)] = c.Key
	}
	return m
}()

// CanonicalKey maps a header typed with any letter case onto its canonical
// key. ok is false for headers the mapper does not know.
func CanonicalKey(header string) (string, bool) {
	k, ok := canonical[strings.ToLower(strings.TrimSpace(header))]
	return k, ok
}

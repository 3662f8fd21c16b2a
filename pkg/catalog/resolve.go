package catalog

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"p9e.in/ascomp/models"
)

// DateLayout is how dates are printed on the form (day first).
const DateLayout = "02/01/2006"

// ToMap flattens any JSON-serialisable value into generic maps so that dot
// paths can be walked without reflection.
func ToMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// lookup walks a dot-separated path. ok is false if any step is missing or
// not an object.
func lookup(data map[string]interface{}, path string) (interface{}, bool) {
	if data == nil || path == "" {
		return nil, false
	}
	var cur interface{} = data
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Resolve returns the value at path as text, or def when the path is
// missing, null, empty or not a scalar. It never fails.
func Resolve(data map[string]interface{}, path, def string) string {
	v, ok := lookup(data, path)
	if !ok {
		return def
	}
	s, ok := scalarText(v)
	if !ok || s == "" {
		return def
	}
	return s
}

// ResolveAs is Resolve followed by the field's print format.
func ResolveAs(data map[string]interface{}, path, def string, f Format) string {
	v, ok := lookup(data, path)
	if !ok {
		return def
	}
	switch f {
	case FormatDate:
		s, _ := v.(string)
		return formatDate(s, def)
	case FormatBool:
		b, ok := v.(bool)
		if !ok {
			return def
		}
		if b {
			return "Yes"
		}
		return "No"
	}
	return Resolve(data, path, def)
}

// ResolveReport resolves one path against a report. Callers resolving many
// paths should convert with ToMap once and use Resolve.
func ResolveReport(report *models.ASCOMPReport, path, def string) string {
	if report == nil {
		return def
	}
	data, err := ToMap(report)
	if err != nil {
		return def
	}
	return Resolve(data, path, def)
}

func scalarText(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

func formatDate(s, def string) string {
	if s == "" {
		return def
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	if t.IsZero() {
		return def
	}
	return t.Format(DateLayout)
}

// Values computes every catalog token for one report.
func Values(report *models.ASCOMPReport) map[string]string {
	data, err := ToMap(report)
	if err != nil {
		data = nil
	}
	out := make(map[string]string)
	for _, t := range Tokens() {
		out[t.Name] = ResolveAs(data, t.DataPath, t.Default, t.Format)
	}
	return out
}

var tokenPattern = regexp.MustCompile(`\[([A-Z0-9_]+)\]`)

// Substitute replaces [TOKEN] placeholders found in values. Tokens without
// a value are left as they are so a template author can spot them.
func Substitute(text string, values map[string]string) string {
	return SubstituteFunc(text, values, func(s string) string { return s })
}

// SubstituteFunc is Substitute with every inserted value passed through
// escape first.
func SubstituteFunc(text string, values map[string]string, escape func(string) string) string {
	return tokenPattern.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := values[name]
		if !ok {
			return m
		}
		return escape(v)
	})
}

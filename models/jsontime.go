package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// JSONTime wraps time.Time so we can control both
// JSON un/marshaling and SQL driver encoding.
type JSONTime time.Time

// jsonTimeLayouts are tried in order. Form submissions send either a full
// timestamp or the bare date picked in the UI; day-first dates come from
// spreadsheets typed by hand.
var jsonTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
}

// UnmarshalJSON accepts any of jsonTimeLayouts. Empty strings and null
// leave the zero time.
func (jt *JSONTime) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*jt = JSONTime(time.Time{})
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		*jt = JSONTime(time.Time{})
		return nil
	}

	for _, layout := range jsonTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*jt = JSONTime(t)
			return nil
		}
	}
	return fmt.Errorf("JSONTime.UnmarshalJSON: cannot parse %q", s)
}

// MarshalJSON always emits full RFC3339 (“…Z”).
func (jt JSONTime) MarshalJSON() ([]byte, error) {
	t := time.Time(jt)
	return json.Marshal(t.Format(time.RFC3339))
}

// Time returns the wrapped value.
func (jt JSONTime) Time() time.Time {
	return time.Time(jt)
}

// IsZero reports whether no date was captured.
func (jt JSONTime) IsZero() bool {
	return time.Time(jt).IsZero()
}

// Value implements driver.Valuer so GORM/pgx can
// turn JSONTime into a SQL TIMESTAMPTZ parameter.
func (jt JSONTime) Value() (driver.Value, error) {
	return time.Time(jt), nil
}

// Scan implements sql.Scanner so GORM can read
// TIMESTAMPTZ back into JSONTime when querying.
func (jt *JSONTime) Scan(src interface{}) error {
	if src == nil {
		*jt = JSONTime(time.Time{})
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*jt = JSONTime(v)
		return nil
	case []byte:
		return jt.scanString(string(v))
	case string:
		return jt.scanString(v)
	default:
		return fmt.Errorf("JSONTime.Scan: unsupported type %T", src)
	}
}

func (jt *JSONTime) scanString(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("JSONTime.Scan: parse %q: %w", s, err)
	}
	*jt = JSONTime(t)
	return nil
}

// Package formstate converts the report-entry form's state into the
// canonical named-object report shape.
//
// Older clients send checklist sections as arrays of {status, result}
// rows in print order, sometimes nested under "inspectionSections". Newer
// clients send the named shape already. Normalize accepts both and always
// returns the named shape, so the conversion happens once when a report is
// stored and never again at render time.
package formstate

import (
	"encoding/json"
	"fmt"

	"p9e.in/ascomp/models"
	"p9e.in/ascomp/pkg/catalog"
)

const nestedKey = "inspectionSections"

// slot maps one array position onto an item key. fallback is a second index
// tried when the primary one is absent; -1 means none.
type slot struct {
	index    int
	fallback int
	item     string
}

// positions is the array layout the legacy form used for each section.
// Electronics had two spare rows in it, so two boards read from the next
// index when their own row is missing.
var positions = map[string][]slot{
	"opticals": {
		{0, -1, "reflector"},
		{1, -1, "uvFilter"},
		{2, -1, "integratorRod"},
		{3, -1, "coldMirror"},
		{4, -1, "foldMirror"},
	},
	"electronics": {
		{0, -1, "touchPanel"},
		{1, 2, "evbImcbBoard"},
		{3, 4, "pibIcpBoard"},
		{5, -1, "imb2Board"},
	},
	"serialNumberVerified": {
		{0, -1, "chassisLabelVsTouchPanel"},
	},
	"disposableConsumables": {
		{0, -1, "airIntakeLadAndRad"},
	},
	"coolant": {
		{0, -1, "levelAndColor"},
		{1, -1, "white"},
		{2, -1, "red"},
	},
	"lightEngineTestPattern": {
		{0, -1, "white"},
		{1, -1, "red"},
		{2, -1, "green"},
		{3, -1, "blue"},
		{4, -1, "black"},
	},
	"mechanical": {
		{0, -1, "acBlowerAndVaneSwitch"},
		{1, -1, "extractorVane"},
		{2, -1, "exhaustCfm"},
		{3, -1, "lightEngineFansWithLadFan"},
		{4, -1, "cardCageTopAndBottomFans"},
		{5, -1, "radiatorFanAndPump"},
		{6, -1, "connectorAndHoseForPump"},
		{7, -1, "securityAndLampHouseLockSwitch"},
	},
}

// The lamp LOC row was printed as the ninth mechanical line.
const (
	lampLocIndex   = 8
	lampLocSection = "lampLocMechanism"
	lampLocItem    = "xAndZMovement"
)

// Normalize returns a copy of form with every checklist section in the
// named shape at the top level. Non-checklist keys are copied as is and the
// "inspectionSections" wrapper is dropped once its sections are lifted.
func Normalize(form map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(form))
	for k, v := range form {
		if k == nestedKey {
			continue
		}
		out[k] = v
	}
	nested, _ := form[nestedKey].(map[string]interface{})

	source := func(key string) interface{} {
		if v, ok := form[key]; ok && v != nil {
			return v
		}
		if nested != nil {
			return nested[key]
		}
		return nil
	}

	for _, s := range catalog.Sections() {
		src := source(s.Key)
		var section map[string]interface{}
		switch v := src.(type) {
		case map[string]interface{}:
			section = v
		case []interface{}:
			if s.Key == lampLocSection {
				section = fromArray(v, []slot{{0, -1, lampLocItem}})
			} else {
				section = fromArray(v, positions[s.Key])
			}
		}
		if section == nil && s.Key == lampLocSection {
			if mech, ok := source("mechanical").([]interface{}); ok && len(mech) > lampLocIndex {
				section = fromArray(mech, []slot{{lampLocIndex, -1, lampLocItem}})
			}
		}
		if section == nil {
			section = emptySection(s)
		}
		out[s.Key] = section
	}
	return out
}

func fromArray(rows []interface{}, layout []slot) map[string]interface{} {
	section := make(map[string]interface{}, len(layout))
	for _, sl := range layout {
		row, ok := at(rows, sl.index)
		if !ok && sl.fallback >= 0 {
			row, ok = at(rows, sl.fallback)
		}
		if !ok {
			section[sl.item] = item("", "")
			continue
		}
		status, _ := row["status"].(string)
		result, _ := row["yesNoOk"].(string)
		if result == "" {
			result, _ = row["result"].(string)
		}
		section[sl.item] = item(status, result)
	}
	return section
}

func at(rows []interface{}, i int) (map[string]interface{}, bool) {
	if i < 0 || i >= len(rows) {
		return nil, false
	}
	row, ok := rows[i].(map[string]interface{})
	return row, ok && row != nil
}

func item(status, result string) map[string]interface{} {
	return map[string]interface{}{"status": status, "yesNoOk": result}
}

func emptySection(s catalog.Section) map[string]interface{} {
	section := make(map[string]interface{}, len(s.Items))
	for _, it := range s.Items {
		section[it.Key] = item("", "")
	}
	return section
}

// Decode normalizes form and decodes it into a report.
func Decode(form map[string]interface{}) (models.ASCOMPReport, error) {
	var report models.ASCOMPReport
	b, err := json.Marshal(Normalize(form))
	if err != nil {
		return report, fmt.Errorf("encode form state: %w", err)
	}
	if err := json.Unmarshal(b, &report); err != nil {
		return report, fmt.Errorf("decode form state: %w", err)
	}
	return report, nil
}

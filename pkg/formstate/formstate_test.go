package formstate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/ascomp/models"
	"p9e.in/ascomp/pkg/catalog"
)

func row(status, result string) map[string]interface{} {
	return map[string]interface{}{"status": status, "result": result}
}

func TestNormalizeNamedShapePassesThrough(t *testing.T) {
	r := models.ASCOMPReport{ReportNumber: "ASC-7", CinemaName: "Cinepolis"}
	r.Opticals.Reflector = models.ChecklistItem{Status: "Clean", YesNoOk: models.ResultOK}
	r.LampLocMechanism.XAndZMovement = models.ChecklistItem{Status: "Free", YesNoOk: models.ResultYes}

	form, err := catalog.ToMap(r)
	require.NoError(t, err)

	if diff := cmp.Diff(form, Normalize(form)); diff != "" {
		t.Errorf("named form changed (-want +got):\n%s", diff)
	}
}

func TestNormalizeArrays(t *testing.T) {
	mech := make([]interface{}, 9)
	for i := range mech {
		mech[i] = row("m", models.ResultOK)
	}
	mech[8] = row("Smooth", models.ResultYes)

	form := map[string]interface{}{
		"cinemaName": "PVR Select",
		"inspectionSections": map[string]interface{}{
			"opticals": []interface{}{
				row("Clean", "OK"), row("Replaced", "YES"), row("", ""), row("Dusty", "NO"), row("Good", "OK"),
			},
			"electronics": []interface{}{
				row("TP ok", "OK"),
				nil,
				row("EVB from spare row", "YES"),
				row("PIB", "OK"),
				row("PIB spare", "NO"),
				map[string]interface{}{"status": "IMB", "yesNoOk": "N/A"},
			},
			"mechanical": mech,
		},
	}

	r, err := Decode(form)
	require.NoError(t, err)

	assert.Equal(t, "PVR Select", r.CinemaName)
	assert.Equal(t, models.ChecklistItem{Status: "Clean", YesNoOk: "OK"}, r.Opticals.Reflector)
	assert.Equal(t, models.ChecklistItem{Status: "Dusty", YesNoOk: "NO"}, r.Opticals.ColdMirror)
	assert.Equal(t, models.ChecklistItem{Status: "TP ok", YesNoOk: "OK"}, r.Electronics.TouchPanel)
	assert.Equal(t, models.ChecklistItem{Status: "EVB from spare row", YesNoOk: "YES"}, r.Electronics.EVBIMCBBoard)
	assert.Equal(t, models.ChecklistItem{Status: "PIB", YesNoOk: "OK"}, r.Electronics.PIBICPBoard)
	assert.Equal(t, models.ChecklistItem{Status: "IMB", YesNoOk: "N/A"}, r.Electronics.IMB2Board)
	assert.Equal(t, "m", r.Mechanical.SecurityAndLampHouseLockSwitch.Status)
	assert.Equal(t, models.ChecklistItem{Status: "Smooth", YesNoOk: "YES"}, r.LampLocMechanism.XAndZMovement)
}

func TestNormalizeFillsMissingSections(t *testing.T) {
	out := Normalize(map[string]interface{}{
		"coolant": []interface{}{row("Level fine", "OK")},
	})

	assert.NotContains(t, out, nestedKey)
	for _, s := range catalog.Sections() {
		section, ok := out[s.Key].(map[string]interface{})
		require.True(t, ok, "section %s missing", s.Key)
		for _, it := range s.Items {
			assert.Contains(t, section, it.Key, "%s.%s", s.Key, it.Key)
		}
	}
	coolant := out["coolant"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"status": "Level fine", "yesNoOk": "OK"}, coolant["levelAndColor"])
	assert.Equal(t, map[string]interface{}{"status": "", "yesNoOk": ""}, coolant["red"])
}

func TestNormalizeTopLevelWinsOverNested(t *testing.T) {
	out := Normalize(map[string]interface{}{
		"opticals": map[string]interface{}{"reflector": map[string]interface{}{"status": "top"}},
		"inspectionSections": map[string]interface{}{
			"opticals": []interface{}{row("nested", "OK")},
		},
	})
	opticals := out["opticals"].(map[string]interface{})
	assert.Equal(t, "top", opticals["reflector"].(map[string]interface{})["status"])
}

func TestShortMechanicalLeavesLampLocEmpty(t *testing.T) {
	r, err := Decode(map[string]interface{}{
		"mechanical": []interface{}{row("a", "OK")},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ChecklistItem{}, r.LampLocMechanism.XAndZMovement)
	assert.Equal(t, models.ChecklistItem{Status: "a", YesNoOk: "OK"}, r.Mechanical.ACBlowerAndVaneSwitch)
}

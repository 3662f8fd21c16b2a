// Package catalog holds the single definition of the ASCOMP checklist: which
// sections exist, which items each section carries, the labels printed on
// the paper form, and the bracketed template tokens that point into a report.
//
// Both PDF renderers and the Word-template filler read this table, so a
// schema change is made here once.
package catalog

import "strings"

// Defaults substituted when a checklist cell was never filled in.
const (
	DefaultStatus  = "-"
	DefaultYesNoOk = "OK"
)

// Item is one inspected line inside a section.
type Item struct {
	Key   string // JSON key inside the section object
	Label string // text printed in the Description column
	Token string // token stem, e.g. "OPT_REFLECTOR"
}

// Section is a titled group of checklist items.
type Section struct {
	Key   string // JSON key on the report
	Label string
	Items []Item
}

// StatusPath returns the dot path of the item's status inside a report.
func (s Section) StatusPath(it Item) string {
	return s.Key + "." + it.Key + ".status"
}

// ResultPath returns the dot path of the item's YES/NO/OK cell.
func (s Section) ResultPath(it Item) string {
	return s.Key + "." + it.Key + ".yesNoOk"
}

var sections = []Section{
	{Key: "opticals", Label: "OPTICALS", Items: []Item{
		{Key: "reflector", Label: "Reflector", Token: "OPT_REFLECTOR"},
		{Key: "uvFilter", Label: "UV filter", Token: "OPT_UV_FILTER"},
		{Key: "integratorRod", Label: "Integrator Rod", Token: "OPT_INTEGRATOR_ROD"},
		{Key: "coldMirror", Label: "Cold Mirror", Token: "OPT_COLD_MIRROR"},
		{Key: "foldMirror", Label: "Fold Mirror", Token: "OPT_FOLD_MIRROR"},
	}},
	{Key: "electronics", Label: "ELECTRONICS", Items: []Item{
		{Key: "touchPanel", Label: "Touch Panel", Token: "ELEC_TOUCH_PANEL"},
		{Key: "evbImcbBoard", Label: "EVB and IMCB Board", Token: "ELEC_EVB_IMCB_BOARD"},
		{Key: "pibIcpBoard", Label: "PIB and ICP Board", Token: "ELEC_PIB_ICP_BOARD"},
		{Key: "imb2Board", Label: "IMB-2 Board", Token: "ELEC_IMB2_BOARD"},
	}},
	{Key: "serialNumberVerified", Label: "Serial Number verified", Items: []Item{
		{Key: "chassisLabelVsTouchPanel", Label: "Chassis label vs Touch Panel", Token: "SNV_CHASSIS_LABEL"},
	}},
	{Key: "disposableConsumables", Label: "Disposable Consumables", Items: []Item{
		{Key: "airIntakeLadAndRad", Label: "Air Intake, LAD and RAD", Token: "DC_AIR_INTAKE"},
	}},
	{Key: "coolant", Label: "Coolant", Items: []Item{
		{Key: "levelAndColor", Label: "Level and Color", Token: "COOL_LEVEL_COLOR"},
		{Key: "white", Label: "White", Token: "COOL_WHITE"},
		{Key: "red", Label: "Red", Token: "COOL_RED"},
	}},
	{Key: "lightEngineTestPattern", Label: "Light Engine Test Pattern", Items: []Item{
		{Key: "white", Label: "White", Token: "LETP_WHITE"},
		{Key: "red", Label: "Red", Token: "LETP_RED"},
		{Key: "green", Label: "Green", Token: "LETP_GREEN"},
		{Key: "blue", Label: "Blue", Token: "LETP_BLUE"},
		{Key: "black", Label: "Black", Token: "LETP_BLACK"},
	}},
	{Key: "mechanical", Label: "MECHANICAL", Items: []Item{
		{Key: "acBlowerAndVaneSwitch", Label: "AC blower and Vane Switch", Token: "MECH_AC_BLOWER"},
		{Key: "extractorVane", Label: "Extractor Vane", Token: "MECH_EXTRACTOR_VANE"},
		{Key: "exhaustCfm", Label: "Exhaust CFM", Token: "MECH_EXHAUST_CFM"},
		{Key: "lightEngineFansWithLadFan", Label: "Light Engine 4 fans with LAD fan", Token: "MECH_LE_FANS"},
		{Key: "cardCageTopAndBottomFans", Label: "Card Cage Top and Bottom fans", Token: "MECH_CARD_CAGE_FANS"},
		{Key: "radiatorFanAndPump", Label: "Radiator fan and Pump", Token: "MECH_RADIATOR_FAN_PUMP"},
		{Key: "connectorAndHoseForPump", Label: "Connector and hose for the Pump", Token: "MECH_PUMP_HOSE"},
		{Key: "securityAndLampHouseLockSwitch", Label: "Security and lamp house lock switch", Token: "MECH_SECURITY_LOCK"},
	}},
	{Key: "lampLocMechanism", Label: "Lamp LOC Mechanism", Items: []Item{
		{Key: "xAndZMovement", Label: "X and Z movement", Token: "LLM_X_Z_MOVEMENT"},
	}},
}

// Sections returns the checklist in the order it is printed.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// ItemCount is the number of checklist lines across all sections.
func ItemCount() int {
	n := 0
	for _, s := range sections {
		n += len(s.Items)
	}
	return n
}

// Token is one template placeholder, e.g. [OPT_REFLECTOR_STATUS].
type Token struct {
	Name     string `json:"token"`
	DataPath string `json:"dataPath"`
	Default  string `json:"default"`
	Format   Format `json:"format"`
}

// Bracketed returns the token as it appears in a template.
func (t Token) Bracketed() string {
	return "[" + t.Name + "]"
}

// Tokens returns every template token: checklist tokens first in print
// order, then the header and page-two fields.
func Tokens() []Token {
	out := make([]Token, 0, ItemCount()*2+len(fields))
	for _, s := range sections {
		for _, it := range s.Items {
			out = append(out,
				Token{Name: it.Token + "_STATUS", DataPath: s.StatusPath(it), Default: DefaultStatus},
				Token{Name: it.Token + "_YESNOOK", DataPath: s.ResultPath(it), Default: DefaultYesNoOk},
			)
		}
	}
	for _, f := range fields {
		out = append(out, Token{Name: f.Token, DataPath: f.Path, Format: f.Format})
	}
	return out
}

// Lookup finds a token by name, with or without brackets.
func Lookup(name string) (Token, bool) {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	for _, t := range Tokens() {
		if t.Name == name {
			return t, true
		}
	}
	return Token{}, false
}

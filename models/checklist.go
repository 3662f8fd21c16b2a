package models

// Result values accepted in a checklist item's YesNoOk column.
const (
	ResultNone = ""
	ResultYes  = "YES"
	ResultNo   = "NO"
	ResultOK   = "OK"
	ResultNA   = "N/A"
)

// ChecklistItem is one inspected line of the ASCOMP form.
type ChecklistItem struct {
	Status  string `json:"status"`
	YesNoOk string `json:"yesNoOk"`
}

// ValidResult reports whether v is one of the accepted YesNoOk values.
func ValidResult(v string) bool {
	switch v {
	case ResultNone, ResultYes, ResultNo, ResultOK, ResultNA:
		return true
	}
	return false
}

type Opticals struct {
	Reflector     ChecklistItem `json:"reflector"`
	UVFilter      ChecklistItem `json:"uvFilter"`
	IntegratorRod ChecklistItem `json:"integratorRod"`
	ColdMirror    ChecklistItem `json:"coldMirror"`
	FoldMirror    ChecklistItem `json:"foldMirror"`
}

type Electronics struct {
	TouchPanel   ChecklistItem `json:"touchPanel"`
	EVBIMCBBoard ChecklistItem `json:"evbImcbBoard"`
	PIBICPBoard  ChecklistItem `json:"pibIcpBoard"`
	IMB2Board    ChecklistItem `json:"imb2Board"`
}

type SerialNumberVerified struct {
	ChassisLabelVsTouchPanel ChecklistItem `json:"chassisLabelVsTouchPanel"`
}

type DisposableConsumables struct {
	AirIntakeLadAndRad ChecklistItem `json:"airIntakeLadAndRad"`
}

type Coolant struct {
	LevelAndColor ChecklistItem `json:"levelAndColor"`
	White         ChecklistItem `json:"white"`
	Red           ChecklistItem `json:"red"`
}

type LightEngineTestPattern struct {
	White ChecklistItem `json:"white"`
	Red   ChecklistItem `json:"red"`
	Green ChecklistItem `json:"green"`
	Blue  ChecklistItem `json:"blue"`
	Black ChecklistItem `json:"black"`
}

type Mechanical struct {
	ACBlowerAndVaneSwitch          ChecklistItem `json:"acBlowerAndVaneSwitch"`
	ExtractorVane                  ChecklistItem `json:"extractorVane"`
	ExhaustCFM                     ChecklistItem `json:"exhaustCfm"`
	LightEngineFansWithLadFan      ChecklistItem `json:"lightEngineFansWithLadFan"`
	CardCageTopAndBottomFans       ChecklistItem `json:"cardCageTopAndBottomFans"`
	RadiatorFanAndPump             ChecklistItem `json:"radiatorFanAndPump"`
	ConnectorAndHoseForPump        ChecklistItem `json:"connectorAndHoseForPump"`
	SecurityAndLampHouseLockSwitch ChecklistItem `json:"securityAndLampHouseLockSwitch"`
}

type LampLocMechanism struct {
	XAndZMovement ChecklistItem `json:"xAndZMovement"`
}

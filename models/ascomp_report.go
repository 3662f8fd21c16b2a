package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report lifecycle states.
const (
	ReportDraft     = "Draft"
	ReportSubmitted = "Submitted"
)

// ErrImmutable is returned when something tries to rewrite a stored report.
var ErrImmutable = errors.New("ascomp report is immutable once submitted")

type LampInfo struct {
	MakeModel           string  `json:"makeModel"`
	TotalRunningHours   float64 `json:"totalRunningHours"`
	CurrentRunningHours float64 `json:"currentRunningHours"`
}

type VoltageParameters struct {
	PVsN string `json:"pVsN"`
	PVsE string `json:"pVsE"`
	NVsE string `json:"nVsE"`
}

type FLMeasurements struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// ColorReading is one row of the software-version matrix.
type ColorReading struct {
	MCGD string `json:"mcgd"`
	FL   string `json:"fl"`
	X    string `json:"x"`
	Y    string `json:"y"`
}

type SoftwareVersions struct {
	W2K4K ColorReading `json:"w2k4k"`
	R2K4K ColorReading `json:"r2k4k"`
	G2K4K ColorReading `json:"g2k4k"`
}

type ScreenDimensions struct {
	Height string `json:"height"`
	Width  string `json:"width"`
	Gain   string `json:"gain"`
}

type ScreenInfo struct {
	Scope         ScreenDimensions `json:"scope"`
	Flat          ScreenDimensions `json:"flat"`
	ScreenMake    string           `json:"screenMake"`
	ThrowDistance string           `json:"throwDistance"`
}

// ImageEvaluation holds Yes/No answers for the picture checks.
type ImageEvaluation struct {
	FocusBoresite      string `json:"focusBoresite"`
	IntegratorPosition string `json:"integratorPosition"`
	SpotOnScreen       string `json:"spotOnScreen"`
	ScreenCropping     string `json:"screenCropping"`
	ConvergenceChecked string `json:"convergenceChecked"`
	ChannelsChecked    string `json:"channelsChecked"`
	PixelDefects       string `json:"pixelDefects"`
	ImageVibration     string `json:"imageVibration"`
	LiteLoc            string `json:"liteLoc"`
}

// CIETriple is a measured chromaticity (x, y) with luminance in fL.
type CIETriple struct {
	X  string `json:"x"`
	Y  string `json:"y"`
	FL string `json:"fl"`
}

type CIEColorAccuracy struct {
	White CIETriple `json:"white"`
	Red   CIETriple `json:"red"`
	Green CIETriple `json:"green"`
	Blue  CIETriple `json:"blue"`
}

type AirPollutionLevel struct {
	HCHO        string `json:"hcho"`
	TVOC        string `json:"tvoc"`
	PM1         string `json:"pm1"`
	PM25        string `json:"pm25"`
	PM10        string `json:"pm10"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
}

type EngineerContact struct {
	Name  string `gorm:"size:120" json:"name"`
	Phone string `gorm:"size:40" json:"phone"`
	Email string `gorm:"size:120" json:"email"`
}

// ASCOMPReport is one preventive-maintenance visit captured on the two-page
// ASCOMP checklist. The JSON shape is the canonical named-object shape that
// both PDF renderers and the token catalog read from.
type ASCOMPReport struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReportNumber string    `gorm:"size:60;uniqueIndex;not null" json:"reportNumber"`
	Date         JSONTime  `gorm:"column:date;not null" json:"date"`
	Status       string    `gorm:"size:20;default:Submitted" json:"status"`

	CinemaName     string     `gorm:"size:200;index" json:"cinemaName"`
	Address        string     `gorm:"size:500" json:"address"`
	Location       string     `gorm:"size:200" json:"location"`
	ContactDetails string     `gorm:"size:200" json:"contactDetails"`
	ScreenNumber   string     `gorm:"size:40" json:"screenNumber"`
	SiteID         *uuid.UUID `gorm:"type:uuid;index" json:"siteId,omitempty"`
	ProjectorID    *uuid.UUID `gorm:"type:uuid;index" json:"projectorId,omitempty"`

	ProjectorModel        string `gorm:"size:120" json:"projectorModel"`
	SerialNumber          string `gorm:"size:120;index" json:"serialNumber"`
	ProjectorRunningHours string `gorm:"size:60" json:"projectorRunningHours"`
	SoftwareVersion       string `gorm:"size:60" json:"softwareVersion"`
	ContentPlayingServer  string `gorm:"size:120" json:"contentPlayingServer"`

	Opticals               Opticals               `gorm:"type:jsonb;serializer:json" json:"opticals"`
	Electronics            Electronics            `gorm:"type:jsonb;serializer:json" json:"electronics"`
	SerialNumberVerified   SerialNumberVerified   `gorm:"type:jsonb;serializer:json" json:"serialNumberVerified"`
	DisposableConsumables  DisposableConsumables  `gorm:"type:jsonb;serializer:json" json:"disposableConsumables"`
	Coolant                Coolant                `gorm:"type:jsonb;serializer:json" json:"coolant"`
	LightEngineTestPattern LightEngineTestPattern `gorm:"type:jsonb;serializer:json" json:"lightEngineTestPattern"`
	Mechanical             Mechanical             `gorm:"type:jsonb;serializer:json" json:"mechanical"`
	LampLocMechanism       LampLocMechanism       `gorm:"type:jsonb;serializer:json" json:"lampLocMechanism"`

	LampInfo          LampInfo          `gorm:"type:jsonb;serializer:json" json:"lampInfo"`
	VoltageParameters VoltageParameters `gorm:"type:jsonb;serializer:json" json:"voltageParameters"`
	FLMeasurements    FLMeasurements    `gorm:"column:fl_measurements;type:jsonb;serializer:json" json:"flMeasurements"`
	SoftwareVersions  SoftwareVersions  `gorm:"type:jsonb;serializer:json" json:"softwareVersions"`
	ScreenInfo        ScreenInfo        `gorm:"type:jsonb;serializer:json" json:"screenInfo"`
	ImageEvaluation   ImageEvaluation   `gorm:"type:jsonb;serializer:json" json:"imageEvaluation"`
	CIEColorAccuracy  CIEColorAccuracy  `gorm:"column:cie_color_accuracy;type:jsonb;serializer:json" json:"cieColorAccuracy"`
	AirPollutionLevel AirPollutionLevel `gorm:"type:jsonb;serializer:json" json:"airPollutionLevel"`

	Engineer            EngineerContact `gorm:"embedded;embeddedPrefix:engineer_" json:"engineer"`
	Remarks             string          `gorm:"type:text" json:"remarks"`
	ReplacementRequired bool            `json:"replacementRequired"`
	FollowUpRequired    bool            `json:"followUpRequired"`

	ClientSignature   string `gorm:"type:text" json:"clientSignature"`
	EngineerSignature string `gorm:"type:text" json:"engineerSignature"`
	ClientSignedBy    string `gorm:"size:120" json:"clientSignedBy"`

	ImportFingerprint *string           `gorm:"size:32;uniqueIndex" json:"importFingerprint,omitempty"`
	RawImport         datatypes.JSONMap `gorm:"type:jsonb" json:"rawImport,omitempty"`

	CreatedBy string         `gorm:"size:64" json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ASCOMPReport) TableName() string {
	return "ascomp_reports"
}

// BeforeCreate hook for ASCOMPReport
func (r *ASCOMPReport) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReportSubmitted
	}
	return
}

// BeforeUpdate rejects in-place edits of submitted reports.
func (r *ASCOMPReport) BeforeUpdate(tx *gorm.DB) (err error) {
	if r.Status == ReportSubmitted {
		return ErrImmutable
	}
	return
}

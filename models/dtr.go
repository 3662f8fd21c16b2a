package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DTROpen         = "Open"
	DTRInProgress   = "In Progress"
	DTRClosed       = "Closed"
	DTRShiftedToRMA = "Shifted to RMA"
)

var DTRStatuses = []string{DTROpen, DTRInProgress, DTRClosed, DTRShiftedToRMA}

// DTR is a daily trouble report logged against a projector.
type DTR struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID       string     `gorm:"size:60;uniqueIndex;not null" json:"caseId"`
	ErrorDate    JSONTime   `gorm:"not null" json:"errorDate"`
	SiteID       *uuid.UUID `gorm:"type:uuid;index" json:"siteId,omitempty"`
	SiteName     string     `gorm:"size:200;index" json:"siteName"`
	SerialNumber string     `gorm:"size:120;index" json:"serialNumber"`
	ProblemName  string     `gorm:"size:255" json:"problemName"`
	ActionTaken  string     `gorm:"type:text" json:"actionTaken"`
	Remarks      string     `gorm:"type:text" json:"remarks"`
	CallStatus   string     `gorm:"size:30;index;default:Open" json:"callStatus"`
	CaseSeverity string     `gorm:"size:20;default:Medium" json:"caseSeverity"`
	OpenedBy     string     `gorm:"size:120" json:"openedBy"`
	ClosedBy     string     `gorm:"size:120" json:"closedBy,omitempty"`
	ClosedReason string     `gorm:"size:255" json:"closedReason,omitempty"`
	RMAID        *uuid.UUID `gorm:"column:rma_id;type:uuid" json:"rmaId,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DTR) TableName() string {
	return "dtrs"
}

// BeforeCreate hook for DTR
func (d *DTR) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CallStatus == "" {
		d.CallStatus = DTROpen
	}
	if d.CaseSeverity == "" {
		d.CaseSeverity = PriorityMedium
	}
	return
}

// ToRMA seeds a new RMA from the trouble report. The caller assigns the RMA
// number and persists both records.
func (d DTR) ToRMA(rmaNumber string, raised time.Time) RMA {
	id := d.ID
	errDate := d.ErrorDate
	return RMA{
		RMANumber:         rmaNumber,
		CallLogNumber:     d.CaseID,
		RMARaisedDate:     JSONTime(raised),
		CustomerErrorDate: &errDate,
		SiteID:            d.SiteID,
		SiteName:          d.SiteName,
		SerialNumber:      d.SerialNumber,
		Symptoms:          d.ProblemName,
		Status:            RMAUnderReview,
		Priority:          d.CaseSeverity,
		Notes:             d.ActionTaken,
		DTRID:             &id,
	}
}

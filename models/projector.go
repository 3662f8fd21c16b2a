package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectorActive       = "Active"
	ProjectorUnderService = "Under Service"
	ProjectorInactive     = "Inactive"
)

var ProjectorStatuses = []string{ProjectorActive, ProjectorUnderService, ProjectorInactive}

// Projector is one installed asset, identified by its chassis serial number.
type Projector struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SerialNumber  string         `gorm:"size:120;uniqueIndex;not null" json:"serialNumber"`
	Model         string         `gorm:"size:120" json:"model"`
	Brand         string         `gorm:"size:80" json:"brand"`
	SiteID        *uuid.UUID     `gorm:"type:uuid;index" json:"siteId,omitempty"`
	Site          *Site          `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	Auditorium    string         `gorm:"size:40" json:"auditorium"`
	InstallDate   *JSONTime      `json:"installDate,omitempty"`
	WarrantyStart *JSONTime      `json:"warrantyStart,omitempty"`
	WarrantyEnd   *JSONTime      `json:"warrantyEnd,omitempty"`
	Status        string         `gorm:"size:20;default:Active" json:"status"`
	HoursUsed     float64        `json:"hoursUsed"`
	ExpectedLife  float64        `json:"expectedLife"`
	LastServiceAt *JSONTime      `json:"lastServiceAt,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook for Projector
func (p *Projector) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectorActive
	}
	return
}

// UnderWarranty reports whether at is inside the warranty window.
func (p Projector) UnderWarranty(at time.Time) bool {
	if p.WarrantyEnd == nil || p.WarrantyEnd.IsZero() {
		return false
	}
	if p.WarrantyStart != nil && at.Before(p.WarrantyStart.Time()) {
		return false
	}
	return !at.After(p.WarrantyEnd.Time())
}

// ProjectorHistory is everything logged against one serial number.
type ProjectorHistory struct {
	Projector     Projector      `json:"projector"`
	UnderWarranty bool           `json:"underWarranty"`
	OpenRMAs      int            `json:"openRmas"`
	RMAs          []RMA          `json:"rmas"`
	DTRs          []DTR          `json:"dtrs"`
	Reports       []ASCOMPReport `json:"reports"`
}

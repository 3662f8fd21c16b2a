package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

// Site represents a cinema complex where projectors are installed.
// For example: "PVR Forum Mall" with 6 auditoriums
type Site struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"size:200;not null" json:"name"`
	Code          string         `gorm:"size:50;uniqueIndex;not null" json:"code"` // e.g., "PVR_FORUM_BLR"
	Address       string         `gorm:"size:500" json:"address"`
	City          string         `gorm:"size:100;index" json:"city"`
	State         string         `gorm:"size:100" json:"state"`
	Region        string         `gorm:"size:50;index" json:"region"` // North, South, East, West
	ContactPerson string         `gorm:"size:120" json:"contactPerson"`
	ContactPhone  string         `gorm:"size:40" json:"contactPhone"`
	ContactEmail  string         `gorm:"size:120" json:"contactEmail"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Projectors []Projector `gorm:"foreignKey:SiteID" json:"projectors,omitempty"`
}

// BeforeCreate hook for Site
func (s *Site) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Point returns the site's coordinates in orb order (lng, lat).
// ok is false when the site has no location on record.
func (s Site) Point() (orb.Point, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return orb.Point{}, false
	}
	return orb.Point{*s.Longitude, *s.Latitude}, true
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RMA status values, in the order a case normally moves through them.
const (
	RMAUnderReview        = "Under Review"
	RMARaisedYetToDeliver = "RMA Raised - Yet to Deliver"
	RMASentToCDS          = "Sent to CDS"
	RMAFaultyTransitToCDS = "Faulty Transit to CDS"
	RMAReplacementShipped = "Replacement Shipped"
	RMAReplacementRecvd   = "Replacement Received"
	RMACompleted          = "Completed"
	RMARejected           = "Rejected"
)

// RMAStatuses lists every accepted status.
var RMAStatuses = []string{
	RMAUnderReview, RMARaisedYetToDeliver, RMASentToCDS, RMAFaultyTransitToCDS,
	RMAReplacementShipped, RMAReplacementRecvd, RMACompleted, RMARejected,
}

// Priority levels shared by RMAs and DTR severities.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

const (
	WarrantyIn       = "In Warranty"
	WarrantyExtended = "Extended Warranty"
	WarrantyOut      = "Out of Warranty"
)

var WarrantyStatuses = []string{WarrantyIn, WarrantyExtended, WarrantyOut}

// Shipment tracks one leg of a part's journey.
type Shipment struct {
	TrackingNumber string    `json:"trackingNumber"`
	Carrier        string    `json:"carrier"`
	ShippedDate    *JSONTime `json:"shippedDate,omitempty"`
	DeliveredDate  *JSONTime `json:"deliveredDate,omitempty"`
	Status         string    `json:"status"`
}

type RMAShipping struct {
	Outbound Shipment `json:"outbound"`
	Return   Shipment `json:"return"`
}

// RMA is a return-merchandise case raised for a defective projector part.
type RMA struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RMANumber         string     `gorm:"column:rma_number;size:60;uniqueIndex;not null" json:"rmaNumber"`
	CallLogNumber     string     `gorm:"size:60;index" json:"callLogNumber"`
	RMAOrderNumber    string     `gorm:"column:rma_order_number;size:60" json:"rmaOrderNumber"`
	RMARaisedDate     JSONTime   `gorm:"column:rma_raised_date;not null" json:"rmaRaisedDate"`
	CustomerErrorDate *JSONTime  `json:"customerErrorDate,omitempty"`
	SiteID            *uuid.UUID `gorm:"type:uuid;index" json:"siteId,omitempty"`
	SiteName          string     `gorm:"size:200;index" json:"siteName"`

	ProductName              string `gorm:"size:120" json:"productName"`
	ProductPartNumber        string `gorm:"size:80" json:"productPartNumber"`
	SerialNumber             string `gorm:"size:120;index" json:"serialNumber"`
	DefectivePartNumber      string `gorm:"size:80;index" json:"defectivePartNumber"`
	DefectivePartName        string `gorm:"size:200" json:"defectivePartName"`
	DefectiveSerialNumber    string `gorm:"size:120" json:"defectiveSerialNumber"`
	ReplacedPartNumber       string `gorm:"size:80" json:"replacedPartNumber"`
	ReplacedPartSerialNumber string `gorm:"size:120" json:"replacedPartSerialNumber"`
	Symptoms                 string `gorm:"type:text" json:"symptoms"`

	Status         string          `gorm:"size:40;index;not null" json:"status"`
	Priority       string          `gorm:"size:20;default:Medium" json:"priority"`
	WarrantyStatus string          `gorm:"size:30" json:"warrantyStatus"`
	EstimatedCost  decimal.Decimal `gorm:"type:numeric(12,2)" json:"estimatedCost"`

	Shipping       RMAShipping    `gorm:"type:jsonb;serializer:json" json:"shipping"`
	AttachmentURLs pq.StringArray `gorm:"column:attachment_urls;type:text[]" json:"attachmentUrls"`
	Notes          string         `gorm:"type:text" json:"notes"`
	DTRID          *uuid.UUID     `gorm:"column:dtr_id;type:uuid;index" json:"dtrId,omitempty"`

	CreatedBy string         `gorm:"size:64" json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook for RMA
func (r *RMA) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = RMAUnderReview
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	return
}

// IsOpen reports whether the case still needs work.
func (r RMA) IsOpen() bool {
	return r.Status != RMACompleted && r.Status != RMARejected
}

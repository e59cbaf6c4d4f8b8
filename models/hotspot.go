package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	HotspotStatusPending  = "pending"
	HotspotStatusVerified = "verified"
	HotspotStatusRejected = "rejected"
	HotspotStatusCleaned  = "cleaned"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Hotspot is a citizen-reported pollution sighting backed by a photo.
// Status moves pending -> verified|rejected through the verification
// workflow exactly once; cleaned is written by the clean-up crews after
// verification and is terminal here.
type Hotspot struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CreatedAt       time.Time `json:"created_at"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Address         string    `json:"address"`
	State           string    `json:"state"`
	District        string    `json:"district"`
	City            string    `json:"city" gorm:"index"`
	Taluka          string    `json:"taluka"`
	Village         string    `json:"village"`
	ImageURL        string    `json:"image_url"`
	ImageHash       string    `json:"image_hash"`
	IsDuplicate     bool      `json:"is_duplicate" gorm:"default:false"`
	Status          string    `json:"status" gorm:"default:pending;index"`
	PollutantType   string    `json:"pollutant_type,omitempty"`
	Confidence      float64   `json:"confidence,omitempty"`
	Severity        string    `json:"severity,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	RewardAwarded   bool      `json:"reward_awarded" gorm:"default:false"`
}

// DetectionResult is the classification derived from the first detection
// returned by the gateway.
type DetectionResult struct {
	PollutantType string  `json:"pollutant_type"`
	Confidence    float64 `json:"confidence"`
	Severity      string  `json:"severity"`
}

// Detection is one labeled, confidence-scored classification from the
// external image model. Confidence is in [0,1].
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// DetectionResponse is the detection service's wire response. An empty
// Detections list is a valid zero-match answer, not an error.
type DetectionResponse struct {
	Detections []Detection `json:"detections"`
}

// HotspotFilter narrows list queries. Zero values mean "any".
type HotspotFilter struct {
	Status string
	City   string
	Limit  int
}

// VerificationOutcome is what the verify endpoint reports back.
type VerificationOutcome struct {
	Hotspot    *Hotspot    `json:"hotspot"`
	Detections []Detection `json:"detections"`
	Message    string      `json:"message"`
}

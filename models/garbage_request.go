package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	GarbageRequestStatusPending   = "pending"
	GarbageRequestStatusApproved  = "approved"
	GarbageRequestStatusCompleted = "completed"
)

// GarbageRequest is an event-based collection request. Unlike hotspots it
// is not a pollution claim, so the submission bonus is credited up front
// with no verification step.
type GarbageRequest struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CreatedAt     time.Time `json:"created_at"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	EventType     string    `json:"event_type" gorm:"not null"`
	Description   string    `json:"description" gorm:"type:varchar(1000)"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Address       string    `json:"address"`
	City          string    `json:"city" gorm:"index"`
	State         string    `json:"state"`
	District      string    `json:"district"`
	Status        string    `json:"status" gorm:"default:pending"`
	RewardAwarded bool      `json:"reward_awarded" gorm:"default:false"`
}

// GarbageRequestFilter narrows list queries. Zero values mean "any".
type GarbageRequestFilter struct {
	Status string
	City   string
	Limit  int
}

package models

import (
	"time"

	"github.com/google/uuid"

	"commons-backend/internal/geo"
)

type CheckInStatus string

const (
	CheckInStatusActive    CheckInStatus = "active"
	CheckInStatusCancelled CheckInStatus = "cancelled"
	CheckInStatusExpired   CheckInStatus = "expired"
)

type VisibilityScope string

const (
	VisibilityCommunity VisibilityScope = "community"
	VisibilityPrivate   VisibilityScope = "private"
)

// CheckIn is a resident's time-boxed presence announcement. Status is a stored
// flag and may lag behind the computed window; see package checkin.
type CheckIn struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	CreatorID       uuid.UUID       `json:"creator_id"`
	Title           string          `json:"title"`
	LocationName    string          `json:"location_name,omitempty"`
	Latitude        *float64        `json:"latitude,omitempty"`
	Longitude       *float64        `json:"longitude,omitempty"`
	StartTime       time.Time       `json:"start_time"`
	DurationMinutes int             `json:"duration_minutes"`
	Status          CheckInStatus   `json:"status"`
	VisibilityScope VisibilityScope `json:"visibility_scope"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreateCheckInRequest struct {
	Title           string          `json:"title"`
	LocationName    string          `json:"location_name"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
	StartTime       *time.Time      `json:"start_time"`
	DurationMinutes int             `json:"duration_minutes"`
	VisibilityScope VisibilityScope `json:"visibility_scope"`
}

// CheckInDetail is the single-record response: the stored check-in plus its
// window computed at request time.
type CheckInDetail struct {
	CheckIn          *CheckIn  `json:"check_in"`
	ExpiresAt        time.Time `json:"expires_at"`
	MinutesRemaining int       `json:"minutes_remaining"`
	Remaining        string    `json:"remaining"`
	State            string    `json:"state"`
}

type CheckInMap struct {
	Center   *geo.Point `json:"center"`
	CheckIns []*CheckIn `json:"check_ins"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is the single-row premium entitlement state.
//
// Trial state machine: no trial (TrialStartedAt nil) → trial active
// (now - TrialStartedAt < trial window) → trial expired. Subscribed is
// orthogonal and always overrides the trial state for gating.
type Subscription struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TrialStartedAt *time.Time
	Subscribed     bool `gorm:"not null;default:false"`
	PlanID         *string
	// LastVerifiedAt is when the billing provider last confirmed the
	// entitlement. Gating trusts the local flag between verifications.
	LastVerifiedAt *time.Time
	UpdatedAt      time.Time
}

// TableName pins the table name to singular — there is only ever one row.
func (Subscription) TableName() string { return "subscription_state" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilitySlot is a single bookable instant published by a professional.
// Slots are compared by exact instant at millisecond resolution; there is
// deliberately no unique constraint on (user_id, starts_at) because cancelling
// an appointment re-appends its date unconditionally, which may reintroduce a
// value that was added independently in the meantime.
type AvailabilitySlot struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	StartsAt  time.Time `json:"starts_at" gorm:"type:datetime(3);not null"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *AvailabilitySlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// NormalizeInstant clamps a timestamp to the comparison resolution used for
// slots and appointment dates: UTC, millisecond precision.
func NormalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

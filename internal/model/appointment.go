package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	// StatusBooked is the initial state of every appointment.
	StatusBooked AppointmentStatus = "booked"
	// StatusCancelled marks an appointment the patient withdrew from.
	StatusCancelled AppointmentStatus = "cancelled"
	// StatusCompleted marks an appointment that took place.
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment links a patient to a professional at a booked instant.
type Appointment struct {
	ID             uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	PatientID      uuid.UUID         `json:"patient_id" gorm:"type:char(36);not null;index"`
	ProfessionalID uuid.UUID         `json:"professional_id" gorm:"type:char(36);not null;index"`
	Date           time.Time         `json:"date" gorm:"type:datetime(3);not null"`
	Status         AppointmentStatus `json:"status" gorm:"size:20;not null;default:'booked'"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relations, loaded for the enriched listing
	Patient      *User `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Professional *User `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

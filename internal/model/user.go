package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles carried on User.Role. "user" is a patient, "pro" a professional;
// the short forms are the wire values the API accepts and returns.
const (
	RolePatient      = "user"
	RoleProfessional = "pro"
)

// User represents a patient or professional account.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:20;not null;index"`
	// Score is the reputation value used to rank professionals, 0-100.
	// Left at zero for patients.
	Score     int       `json:"score" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Availability []AvailabilitySlot `json:"availability,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsProfessional reports whether the account may publish availability.
func (u *User) IsProfessional() bool {
	return u.Role == RoleProfessional
}

// PublicProfile is the password-free view of an account returned on login.
type PublicProfile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
	Score int       `json:"score"`
}

// Public returns the public view of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.Name, Role: u.Role, Score: u.Score}
}

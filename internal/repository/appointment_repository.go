package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minidocto/internal/model"
)

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	Update(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByPatient and ListByProfessional return appointments ascending by
	// date with both counterpart accounts preloaded for enrichment.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Appointment, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]model.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository builds a GORM-backed repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	appt.Date = model.NormalizeInstant(appt.Date)
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Appointment{}).Error
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Appointment, error) {
	return r.list(ctx, "patient_id = ?", patientID)
}

func (r *appointmentRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]model.Appointment, error) {
	return r.list(ctx, "professional_id = ?", professionalID)
}

func (r *appointmentRepository) list(ctx context.Context, cond string, id uuid.UUID) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Professional").
		Where(cond, id).
		Order("date ASC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

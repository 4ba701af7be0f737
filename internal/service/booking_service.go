package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "minidocto/internal/errors"
	"minidocto/internal/model"
	"minidocto/internal/repository"
)

// PatientRef is the patient view embedded in an appointment listing.
type PatientRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ProfessionalRef is the professional view embedded in an appointment listing.
type ProfessionalRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Score int       `json:"score"`
}

// AppointmentView is an appointment enriched with both counterparts.
type AppointmentView struct {
	ID           uuid.UUID               `json:"id"`
	Date         time.Time               `json:"date"`
	Status       model.AppointmentStatus `json:"status"`
	Patient      PatientRef              `json:"patient"`
	Professional ProfessionalRef         `json:"professional"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// BookingService creates and cancels appointments, keeping the professional's
// availability in step with them.
type BookingService interface {
	// Book reserves the slot: the appointment is created, then the matching
	// slot rows are removed. The two steps are not wrapped in a transaction;
	// two concurrent bookings of the same instant can both pass the
	// availability check. Known race, kept from the original design.
	Book(ctx context.Context, patientID, professionalID uuid.UUID, date time.Time) (*model.Appointment, error)
	// ListForUser returns appointments ascending by date, filtered by the
	// professional side when role is "pro" and the patient side otherwise.
	ListForUser(ctx context.Context, userID uuid.UUID, role string) ([]AppointmentView, error)
	// Cancel deletes the appointment and re-appends its date to the
	// professional's availability. The append is unconditional, so a slot
	// independently re-added at the same instant ends up duplicated.
	Cancel(ctx context.Context, appointmentID uuid.UUID) error
	// Complete transitions a booked appointment to completed.
	Complete(ctx context.Context, appointmentID uuid.UUID) (*model.Appointment, error)
}

type bookingService struct {
	userRepo repository.UserRepository
	slotRepo repository.AvailabilityRepository
	apptRepo repository.AppointmentRepository
	cache    Cache
}

// NewBookingService creates a new booking service.
func NewBookingService(
	userRepo repository.UserRepository,
	slotRepo repository.AvailabilityRepository,
	apptRepo repository.AppointmentRepository,
	cache Cache,
) BookingService {
	return &bookingService{
		userRepo: userRepo,
		slotRepo: slotRepo,
		apptRepo: apptRepo,
		cache:    cache,
	}
}

func (s *bookingService) Book(ctx context.Context, patientID, professionalID uuid.UUID, date time.Time) (*model.Appointment, error) {
	pro, err := s.userRepo.FindByID(ctx, professionalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("find professional: %w", err)
	}
	if !pro.IsProfessional() {
		return nil, apperrors.ErrProfessionalNotFound
	}

	date = model.NormalizeInstant(date)
	available, err := s.slotRepo.Exists(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if !available {
		return nil, apperrors.ErrSlotUnavailable
	}

	appt := &model.Appointment{
		PatientID:      patientID,
		ProfessionalID: professionalID,
		Date:           date,
		Status:         model.StatusBooked,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	if _, err := s.slotRepo.Remove(ctx, professionalID, date); err != nil {
		// The appointment exists but the slot is still open; surface the
		// storage failure rather than pretend the booking is consistent.
		return nil, fmt.Errorf("remove slot: %w", err)
	}

	// the cached directory embeds availability
	_ = s.cache.Delete(ctx, professionalsCacheKey)

	return appt, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID uuid.UUID, role string) ([]AppointmentView, error) {
	var (
		appts []model.Appointment
		err   error
	)
	if role == model.RoleProfessional {
		appts, err = s.apptRepo.ListByProfessional(ctx, userID)
	} else {
		appts, err = s.apptRepo.ListByPatient(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	views := make([]AppointmentView, 0, len(appts))
	for _, a := range appts {
		v := AppointmentView{
			ID:        a.ID,
			Date:      a.Date,
			Status:    a.Status,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		}
		if a.Patient != nil {
			v.Patient = PatientRef{ID: a.Patient.ID, Name: a.Patient.Name, Email: a.Patient.Email}
		}
		if a.Professional != nil {
			v.Professional = ProfessionalRef{ID: a.Professional.ID, Name: a.Professional.Name, Score: a.Professional.Score}
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *bookingService) Cancel(ctx context.Context, appointmentID uuid.UUID) error {
	appt, err := s.apptRepo.FindByID(ctx, appointmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAppointmentNotFound
		}
		return fmt.Errorf("find appointment: %w", err)
	}

	if err := s.apptRepo.Delete(ctx, appointmentID); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	slot := &model.AvailabilitySlot{UserID: appt.ProfessionalID, StartsAt: appt.Date}
	if err := s.slotRepo.Add(ctx, slot); err != nil {
		return fmt.Errorf("restore slot: %w", err)
	}
	_ = s.cache.Delete(ctx, professionalsCacheKey)

	return nil
}

func (s *bookingService) Complete(ctx context.Context, appointmentID uuid.UUID) (*model.Appointment, error) {
	appt, err := s.apptRepo.FindByID(ctx, appointmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}

	appt.Status = model.StatusCompleted
	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return appt, nil
}

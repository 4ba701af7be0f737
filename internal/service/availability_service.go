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

// AvailabilityService manages the open slots of a professional.
type AvailabilityService interface {
	// AddSlot publishes an instant unless an equal one is already open
	// (idempotent by value) and returns the full ordered slot list.
	AddSlot(ctx context.Context, professionalID uuid.UUID, at time.Time) ([]time.Time, error)
	// RemoveSlot withdraws every open slot matching the instant exactly and
	// returns the remaining list.
	RemoveSlot(ctx context.Context, professionalID uuid.UUID, at time.Time) ([]time.Time, error)
}

type availabilityService struct {
	userRepo repository.UserRepository
	slotRepo repository.AvailabilityRepository
	cache    Cache
}

// NewAvailabilityService creates a new availability service.
func NewAvailabilityService(userRepo repository.UserRepository, slotRepo repository.AvailabilityRepository, cache Cache) AvailabilityService {
	return &availabilityService{
		userRepo: userRepo,
		slotRepo: slotRepo,
		cache:    cache,
	}
}

// requireProfessional rejects missing accounts and non-professionals alike.
func (s *availabilityService) requireProfessional(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotProfessional
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	if !user.IsProfessional() {
		return nil, apperrors.ErrNotProfessional
	}
	return user, nil
}

func (s *availabilityService) AddSlot(ctx context.Context, professionalID uuid.UUID, at time.Time) ([]time.Time, error) {
	if _, err := s.requireProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	at = model.NormalizeInstant(at)
	exists, err := s.slotRepo.Exists(ctx, professionalID, at)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if !exists {
		slot := &model.AvailabilitySlot{UserID: professionalID, StartsAt: at}
		if err := s.slotRepo.Add(ctx, slot); err != nil {
			return nil, fmt.Errorf("add slot: %w", err)
		}
		// the cached directory embeds availability
		_ = s.cache.Delete(ctx, professionalsCacheKey)
	}

	return s.listSlots(ctx, professionalID)
}

func (s *availabilityService) RemoveSlot(ctx context.Context, professionalID uuid.UUID, at time.Time) ([]time.Time, error) {
	if _, err := s.requireProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	removed, err := s.slotRepo.Remove(ctx, professionalID, at)
	if err != nil {
		return nil, fmt.Errorf("remove slot: %w", err)
	}
	if removed > 0 {
		_ = s.cache.Delete(ctx, professionalsCacheKey)
	}

	return s.listSlots(ctx, professionalID)
}

func (s *availabilityService) listSlots(ctx context.Context, professionalID uuid.UUID) ([]time.Time, error) {
	slots, err := s.slotRepo.ListByUser(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	out := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.StartsAt)
	}
	return out, nil
}

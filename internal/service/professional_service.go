package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "minidocto/internal/errors"
	"minidocto/internal/model"
	"minidocto/internal/repository"
)

const (
	professionalsCacheKey = "professionals:listing"
	professionalsCacheTTL = 30 * time.Second
)

// Cache is the slice of the redis client the services need. The cached
// professionals listing embeds availability, so every write that changes a
// slot list must drop the key, not just professional registration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ProfessionalService answers the public professional directory queries.
type ProfessionalService interface {
	// ListProfessionals returns every professional sorted by score
	// descending, password excluded.
	ListProfessionals(ctx context.Context) ([]model.User, error)
	// GetProfessional returns the account or ErrProfessionalNotFound when the
	// id is absent or belongs to a patient.
	GetProfessional(ctx context.Context, id uuid.UUID) (*model.User, error)
	// InvalidateListing drops the cached directory after a write that changes
	// it, such as a new professional registering.
	InvalidateListing(ctx context.Context)
}

type professionalService struct {
	userRepo repository.UserRepository
	slotRepo repository.AvailabilityRepository
	cache    Cache
}

// NewProfessionalService builds a ProfessionalService with repository and cache.
func NewProfessionalService(userRepo repository.UserRepository, slotRepo repository.AvailabilityRepository, cache Cache) ProfessionalService {
	return &professionalService{userRepo: userRepo, slotRepo: slotRepo, cache: cache}
}

func (s *professionalService) ListProfessionals(ctx context.Context) ([]model.User, error) {
	if data, _ := s.cache.Get(ctx, professionalsCacheKey); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	pros, err := s.userRepo.ListProfessionals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}

	if payload, err := json.Marshal(pros); err == nil {
		_ = s.cache.Set(ctx, professionalsCacheKey, payload, professionalsCacheTTL)
	}
	return pros, nil
}

func (s *professionalService) GetProfessional(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("find professional: %w", err)
	}
	if !user.IsProfessional() {
		return nil, apperrors.ErrProfessionalNotFound
	}

	slots, err := s.slotRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	user.Availability = slots

	return user, nil
}

func (s *professionalService) InvalidateListing(ctx context.Context) {
	_ = s.cache.Delete(ctx, professionalsCacheKey)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "minidocto/internal/errors"
	"minidocto/internal/model"
)

func proAccount() *model.User {
	return &model.User{ID: uuid.New(), Name: "Dr. A", Role: model.RoleProfessional, Score: 80}
}

func TestAvailabilityService_AddSlot(t *testing.T) {
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("appends new slot and returns list", func(t *testing.T) {
		pro := proAccount()
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Exists", mock.Anything, pro.ID, at).Return(false, nil)
		slotRepo.On("Add", mock.Anything, mock.AnythingOfType("*model.AvailabilitySlot")).Return(nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).
			Return([]model.AvailabilitySlot{{UserID: pro.ID, StartsAt: at}}, nil)

		svc := NewAvailabilityService(userRepo, slotRepo, nilCache)
		slots, err := svc.AddSlot(context.Background(), pro.ID, at)
		assert.NoError(t, err)
		assert.Equal(t, []time.Time{at}, slots)
		slotRepo.AssertExpectations(t)
	})

	t.Run("idempotent on existing instant", func(t *testing.T) {
		pro := proAccount()
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Exists", mock.Anything, pro.ID, at).Return(true, nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).
			Return([]model.AvailabilitySlot{{UserID: pro.ID, StartsAt: at}}, nil)

		svc := NewAvailabilityService(userRepo, slotRepo, nilCache)
		slots, err := svc.AddSlot(context.Background(), pro.ID, at)
		assert.NoError(t, err)
		assert.Len(t, slots, 1)
		slotRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("normalizes to millisecond utc", func(t *testing.T) {
		pro := proAccount()
		loc := time.FixedZone("CET", 3600)
		ragged := time.Date(2025, 1, 1, 11, 0, 0, 123_456_789, loc)
		want := time.Date(2025, 1, 1, 10, 0, 0, 123_000_000, time.UTC)

		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Exists", mock.Anything, pro.ID, want).Return(true, nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).Return([]model.AvailabilitySlot{}, nil)

		svc := NewAvailabilityService(userRepo, slotRepo, nilCache)
		_, err := svc.AddSlot(context.Background(), pro.ID, ragged)
		assert.NoError(t, err)
		slotRepo.AssertExpectations(t)
	})

	t.Run("drops cached listing on append", func(t *testing.T) {
		pro := proAccount()
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		cache := new(MockCache)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Exists", mock.Anything, pro.ID, at).Return(false, nil)
		slotRepo.On("Add", mock.Anything, mock.AnythingOfType("*model.AvailabilitySlot")).Return(nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).
			Return([]model.AvailabilitySlot{{UserID: pro.ID, StartsAt: at}}, nil)
		cache.On("Delete", mock.Anything, professionalsCacheKey).Return(nil)

		svc := NewAvailabilityService(userRepo, slotRepo, cache)
		_, err := svc.AddSlot(context.Background(), pro.ID, at)
		assert.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("keeps cached listing on idempotent append", func(t *testing.T) {
		pro := proAccount()
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		cache := new(MockCache)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Exists", mock.Anything, pro.ID, at).Return(true, nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).
			Return([]model.AvailabilitySlot{{UserID: pro.ID, StartsAt: at}}, nil)

		svc := NewAvailabilityService(userRepo, slotRepo, cache)
		_, err := svc.AddSlot(context.Background(), pro.ID, at)
		assert.NoError(t, err)
		cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("forbidden for patient", func(t *testing.T) {
		patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("FindByID", mock.Anything, patient.ID).Return(patient, nil)

		svc := NewAvailabilityService(userRepo, slotRepo, nilCache)
		_, err := svc.AddSlot(context.Background(), patient.ID, at)
		assert.ErrorIs(t, err, apperrors.ErrNotProfessional)
	})

	t.Run("forbidden for missing account", func(t *testing.T) {
		id := uuid.New()
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAvailabilityService(userRepo, slotRepo, nilCache)
		_, err := svc.AddSlot(context.Background(), id, at)
		assert.ErrorIs(t, err, apperrors.ErrNotProfessional)
	})
}

func TestAvailabilityService_RemoveSlot(t *testing.T) {
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("round trip leaves list empty", func(t *testing.T) {
		pro := proAccount()
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Remove", mock.Anything, pro.ID, at).Return(int64(1), nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).Return([]model.AvailabilitySlot{}, nil)

		svc := NewAvailabilityService(userRepo, slotRepo, nilCache)
		slots, err := svc.RemoveSlot(context.Background(), pro.ID, at)
		assert.NoError(t, err)
		assert.NotContains(t, slots, at)
		assert.Empty(t, slots)
	})

	t.Run("drops cached listing when a slot came off", func(t *testing.T) {
		pro := proAccount()
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		cache := new(MockCache)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Remove", mock.Anything, pro.ID, at).Return(int64(2), nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).Return([]model.AvailabilitySlot{}, nil)
		cache.On("Delete", mock.Anything, professionalsCacheKey).Return(nil)

		svc := NewAvailabilityService(userRepo, slotRepo, cache)
		_, err := svc.RemoveSlot(context.Background(), pro.ID, at)
		assert.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("keeps cached listing when nothing matched", func(t *testing.T) {
		pro := proAccount()
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		cache := new(MockCache)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Remove", mock.Anything, pro.ID, at).Return(int64(0), nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).Return([]model.AvailabilitySlot{}, nil)

		svc := NewAvailabilityService(userRepo, slotRepo, cache)
		_, err := svc.RemoveSlot(context.Background(), pro.ID, at)
		assert.NoError(t, err)
		cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("forbidden for patient", func(t *testing.T) {
		patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("FindByID", mock.Anything, patient.ID).Return(patient, nil)

		svc := NewAvailabilityService(userRepo, slotRepo, nilCache)
		_, err := svc.RemoveSlot(context.Background(), patient.ID, at)
		assert.ErrorIs(t, err, apperrors.ErrNotProfessional)
	})
}

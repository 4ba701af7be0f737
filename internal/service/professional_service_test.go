package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"minidocto/internal/cache"
	apperrors "minidocto/internal/errors"
	"minidocto/internal/model"
)

// nilCache is a disconnected cache client; every read is a miss, every write
// a no-op, matching the fail-safe contract.
var nilCache *cache.Client

// memoryCache is an in-process Cache so tests can observe what a booking or
// availability write leaves behind for the next directory read.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key], nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func TestProfessionalService_ListProfessionals(t *testing.T) {
	// repository contract: score descending
	pros := []model.User{
		{ID: uuid.New(), Name: "Dr. High", Role: model.RoleProfessional, Score: 90},
		{ID: uuid.New(), Name: "Dr. Mid", Role: model.RoleProfessional, Score: 50},
		{ID: uuid.New(), Name: "Dr. Low", Role: model.RoleProfessional, Score: 10},
	}

	userRepo := new(MockUserRepository)
	userRepo.On("ListProfessionals", mock.Anything).Return(pros, nil)

	svc := NewProfessionalService(userRepo, new(MockAvailabilityRepository), nilCache)
	got, err := svc.ListProfessionals(context.Background())
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestProfessionalService_ListingCache(t *testing.T) {
	t.Run("serves the cached listing within the ttl", func(t *testing.T) {
		pros := []model.User{{ID: uuid.New(), Name: "Dr. A", Role: model.RoleProfessional, Score: 80}}
		userRepo := new(MockUserRepository)
		userRepo.On("ListProfessionals", mock.Anything).Return(pros, nil).Once()

		svc := NewProfessionalService(userRepo, new(MockAvailabilityRepository), newMemoryCache())
		for i := 0; i < 3; i++ {
			got, err := svc.ListProfessionals(context.Background())
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}
		userRepo.AssertNumberOfCalls(t, "ListProfessionals", 1)
	})

	t.Run("slot writes make the next listing fresh", func(t *testing.T) {
		pro := proAccount()
		at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
		withoutSlot := []model.User{*pro}
		withSlot := []model.User{{
			ID: pro.ID, Name: pro.Name, Role: pro.Role, Score: pro.Score,
			Availability: []model.AvailabilitySlot{{UserID: pro.ID, StartsAt: at}},
		}}

		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("ListProfessionals", mock.Anything).Return(withoutSlot, nil).Once()
		userRepo.On("ListProfessionals", mock.Anything).Return(withSlot, nil).Once()
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("Exists", mock.Anything, pro.ID, at).Return(false, nil)
		slotRepo.On("Add", mock.Anything, mock.AnythingOfType("*model.AvailabilitySlot")).Return(nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).
			Return([]model.AvailabilitySlot{{UserID: pro.ID, StartsAt: at}}, nil)

		shared := newMemoryCache()
		directory := NewProfessionalService(userRepo, slotRepo, shared)
		availability := NewAvailabilityService(userRepo, slotRepo, shared)

		got, err := directory.ListProfessionals(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, got[0].Availability)

		_, err = availability.AddSlot(context.Background(), pro.ID, at)
		assert.NoError(t, err)

		got, err = directory.ListProfessionals(context.Background())
		assert.NoError(t, err)
		assert.Len(t, got[0].Availability, 1)
		userRepo.AssertNumberOfCalls(t, "ListProfessionals", 2)
	})
}

func TestProfessionalService_GetProfessional(t *testing.T) {
	t.Run("found with availability", func(t *testing.T) {
		pro := proAccount()
		slots := []model.AvailabilitySlot{{UserID: pro.ID}}

		userRepo := new(MockUserRepository)
		slotRepo := new(MockAvailabilityRepository)
		userRepo.On("FindByID", mock.Anything, pro.ID).Return(pro, nil)
		slotRepo.On("ListByUser", mock.Anything, pro.ID).Return(slots, nil)

		svc := NewProfessionalService(userRepo, slotRepo, nilCache)
		got, err := svc.GetProfessional(context.Background(), pro.ID)
		assert.NoError(t, err)
		assert.Equal(t, pro.Name, got.Name)
		assert.Len(t, got.Availability, 1)
	})

	t.Run("absent id", func(t *testing.T) {
		id := uuid.New()
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewProfessionalService(userRepo, new(MockAvailabilityRepository), nilCache)
		_, err := svc.GetProfessional(context.Background(), id)
		assert.ErrorIs(t, err, apperrors.ErrProfessionalNotFound)
	})

	t.Run("patient id is not a professional", func(t *testing.T) {
		patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, patient.ID).Return(patient, nil)

		svc := NewProfessionalService(userRepo, new(MockAvailabilityRepository), nilCache)
		_, err := svc.GetProfessional(context.Background(), patient.ID)
		assert.ErrorIs(t, err, apperrors.ErrProfessionalNotFound)
	})
}

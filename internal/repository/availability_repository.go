package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minidocto/internal/model"
)

// AvailabilityRepository defines slot persistence operations. Instants are
// stored at millisecond resolution and matched by exact equality.
type AvailabilityRepository interface {
	Add(ctx context.Context, slot *model.AvailabilitySlot) error
	// Remove deletes every slot of the user matching the instant exactly and
	// reports how many rows went away.
	Remove(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	Exists(ctx context.Context, userID uuid.UUID, at time.Time) (bool, error)
	// ListByUser returns the user's open slots ordered by instant ascending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AvailabilitySlot, error)
}

type availabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository builds a GORM-backed repository.
func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Add(ctx context.Context, slot *model.AvailabilitySlot) error {
	slot.StartsAt = model.NormalizeInstant(slot.StartsAt)
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *availabilityRepository) Remove(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND starts_at = ?", userID, model.NormalizeInstant(at)).
		Delete(&model.AvailabilitySlot{})
	return res.RowsAffected, res.Error
}

func (r *availabilityRepository) Exists(ctx context.Context, userID uuid.UUID, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AvailabilitySlot{}).
		Where("user_id = ? AND starts_at = ?", userID, model.NormalizeInstant(at)).
		Count(&count).Error
	return count > 0, err
}

func (r *availabilityRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AvailabilitySlot, error) {
	var slots []model.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("starts_at ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
)

type conflictRepository struct {
	db *gorm.DB
}

// NewConflictRepository creates a new conflict repository
func NewConflictRepository(db *gorm.DB) repositories.ConflictRepository {
	return &conflictRepository{db: db}
}

func (r *conflictRepository) Create(ctx context.Context, conflict *entities.Conflict) error {
	if conflict == nil {
		return errors.New("conflict cannot be nil")
	}
	return r.db.WithContext(ctx).Create(conflict).Error
}

func (r *conflictRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Conflict, error) {
	var conflict entities.Conflict
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&conflict).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conflict, nil
}

func (r *conflictRepository) Update(ctx context.Context, conflict *entities.Conflict) error {
	return r.db.WithContext(ctx).Save(conflict).Error
}

func (r *conflictRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Conflict{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List returns conflicts newest first.
func (r *conflictRepository) List(ctx context.Context, filters repositories.ConflictFilters) ([]*entities.Conflict, error) {
	var conflicts []*entities.Conflict

	query := r.db.WithContext(ctx).Model(&entities.Conflict{})
	if filters.MeetingID != nil {
		query = query.Where("meeting_id = ?", *filters.MeetingID)
	}
	if filters.Severity != nil {
		query = query.Where("severity = ?", *filters.Severity)
	}

	err := query.Order("created_at DESC").Find(&conflicts).Error
	return conflicts, err
}

func (r *conflictRepository) DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Delete(&entities.Conflict{}).Error
}

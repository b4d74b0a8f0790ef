package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
)

// ConflictRepository defines the interface for conflict data access
type ConflictRepository interface {
	Create(ctx context.Context, conflict *entities.Conflict) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Conflict, error)
	Update(ctx context.Context, conflict *entities.Conflict) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filters ConflictFilters) ([]*entities.Conflict, error)
	DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error
}

type ConflictFilters struct {
	MeetingID *uuid.UUID
	Severity  *entities.ConflictSeverity
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access.
// Find methods return (nil, nil) when nothing matches.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	Search string // title, host, agenda
	Limit  int
	Offset int
}

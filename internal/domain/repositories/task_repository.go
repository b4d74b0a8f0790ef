package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filters TaskFilters) ([]*entities.Task, error)
	DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error
}

type TaskFilters struct {
	MeetingID *uuid.UUID
	Status    *entities.TaskStatus
	Person    string
}

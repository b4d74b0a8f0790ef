package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
)

// Service defines the interface for the task use case
type Service interface {
	Create(ctx context.Context, input CreateInput) (*entities.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	List(ctx context.Context, filters repositories.TaskFilters) ([]*entities.Task, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.Task, error)
	// Advance moves a task one step through Pending -> In Progress -> Done -> Pending.
	Advance(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error

	submission.TaskSink
}

var _ Service = (*TaskService)(nil)

// CreateInput represents input for creating a task
type CreateInput struct {
	MeetingID *uuid.UUID
	Person    string
	Task      string
	Deadline  string
	Status    string
	Notes     string
	Source    entities.RecordSource
}

// UpdateInput carries the fields to change; nil fields are left alone.
type UpdateInput struct {
	Status   *string
	Person   *string
	Task     *string
	Deadline *string
	Notes    *string
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repositories.TaskRepository
	meetingRepo repositories.MeetingRepository
	logger      *zap.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repositories.TaskRepository, meetingRepo repositories.MeetingRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

func (s *TaskService) Create(ctx context.Context, input CreateInput) (*entities.Task, error) {
	person := strings.TrimSpace(input.Person)
	text := strings.TrimSpace(input.Task)
	if person == "" || text == "" {
		return nil, usecaseErrors.ErrTaskFieldsMissing
	}

	if input.MeetingID != nil {
		meeting, err := s.meetingRepo.FindByID(ctx, *input.MeetingID)
		if err != nil {
			return nil, fmt.Errorf("failed to get meeting: %w", err)
		}
		if meeting == nil {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
	}

	task := entities.NewTask(input.MeetingID, person, text, strings.TrimSpace(input.Deadline))
	if input.Status != "" {
		status := entities.TaskStatus(input.Status)
		if !status.Valid() {
			return nil, usecaseErrors.ErrInvalidTaskStatus
		}
		task.Status = status
	}
	task.Notes = input.Notes
	if input.Source != "" {
		task.Source = input.Source
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Task created",
			zap.String("task_id", task.ID.String()),
			zap.String("person", task.Person),
			zap.String("source", string(task.Source)),
		)
	}
	return task, nil
}

// CreateTask implements submission.TaskSink.
func (s *TaskService) CreateTask(ctx context.Context, draft submission.TaskDraft) (string, error) {
	input := CreateInput{
		Person:   draft.Person,
		Task:     draft.Task,
		Deadline: draft.Deadline,
		Status:   draft.Status,
		Notes:    draft.Notes,
		Source:   entities.RecordSource(draft.Source),
	}
	if draft.MeetingID != "" {
		id, err := uuid.Parse(draft.MeetingID)
		if err != nil {
			return "", fmt.Errorf("invalid meeting id %q: %w", draft.MeetingID, err)
		}
		input.MeetingID = &id
	}

	task, err := s.Create(ctx, input)
	if err != nil {
		return "", err
	}
	return task.ID.String(), nil
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, usecaseErrors.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, filters repositories.TaskFilters) ([]*entities.Task, error) {
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, usecaseErrors.ErrInvalidTaskStatus
	}
	tasks, err := s.taskRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		status := entities.TaskStatus(*input.Status)
		if !status.Valid() {
			return nil, usecaseErrors.ErrInvalidTaskStatus
		}
		task.Status = status
	}
	if input.Person != nil {
		if strings.TrimSpace(*input.Person) == "" {
			return nil, usecaseErrors.ErrTaskFieldsMissing
		}
		task.Person = strings.TrimSpace(*input.Person)
	}
	if input.Task != nil {
		if strings.TrimSpace(*input.Task) == "" {
			return nil, usecaseErrors.ErrTaskFieldsMissing
		}
		task.Task = strings.TrimSpace(*input.Task)
	}
	if input.Deadline != nil {
		task.Deadline = strings.TrimSpace(*input.Deadline)
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Advance(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Advance()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return usecaseErrors.ErrTaskNotFound
	}
	return nil
}

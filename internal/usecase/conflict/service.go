package conflict

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

// Service defines the interface for the conflict use case
type Service interface {
	Create(ctx context.Context, input CreateInput) (*entities.Conflict, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Conflict, error)
	List(ctx context.Context, filters repositories.ConflictFilters) ([]*entities.Conflict, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.Conflict, error)
	Delete(ctx context.Context, id uuid.UUID) error

	submission.ConflictSink
}

var _ Service = (*ConflictService)(nil)

type CreateInput struct {
	MeetingID  *uuid.UUID
	Issue      string
	RaisedBy   string
	Resolution string
	Severity   string
	Source     entities.RecordSource
}

// UpdateInput carries the fields to change; nil fields are left alone.
type UpdateInput struct {
	Issue      *string
	RaisedBy   *string
	Resolution *string
	Severity   *string
}

// ConflictService handles conflict business logic
type ConflictService struct {
	conflictRepo repositories.ConflictRepository
	meetingRepo  repositories.MeetingRepository
	logger       *zap.Logger
}

func NewConflictService(conflictRepo repositories.ConflictRepository, meetingRepo repositories.MeetingRepository, logger *zap.Logger) *ConflictService {
	return &ConflictService{
		conflictRepo: conflictRepo,
		meetingRepo:  meetingRepo,
		logger:       logger,
	}
}

func (s *ConflictService) Create(ctx context.Context, input CreateInput) (*entities.Conflict, error) {
	issue := strings.TrimSpace(input.Issue)
	raisedBy := strings.TrimSpace(input.RaisedBy)
	if issue == "" || raisedBy == "" {
		return nil, usecaseErrors.ErrConflictFieldsMissing
	}

	severity := entities.ConflictSeverity(input.Severity)
	if severity != "" && !severity.Valid() {
		return nil, usecaseErrors.ErrInvalidSeverity
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

	conflict := entities.NewConflict(input.MeetingID, issue, raisedBy, severity)
	conflict.Resolution = input.Resolution
	if input.Source != "" {
		conflict.Source = input.Source
	}

	if err := s.conflictRepo.Create(ctx, conflict); err != nil {
		return nil, fmt.Errorf("failed to create conflict: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Conflict created",
			zap.String("conflict_id", conflict.ID.String()),
			zap.String("severity", string(conflict.Severity)),
			zap.String("source", string(conflict.Source)),
		)
	}
	return conflict, nil
}

// CreateConflict implements submission.ConflictSink.
func (s *ConflictService) CreateConflict(ctx context.Context, draft submission.ConflictDraft) (string, error) {
	input := CreateInput{
		Issue:      draft.Issue,
		RaisedBy:   draft.RaisedBy,
		Resolution: draft.Resolution,
		Severity:   draft.Severity,
		Source:     entities.RecordSource(draft.Source),
	}
	if draft.MeetingID != "" {
		id, err := uuid.Parse(draft.MeetingID)
		if err != nil {
			return "", fmt.Errorf("invalid meeting id %q: %w", draft.MeetingID, err)
		}
		input.MeetingID = &id
	}

	conflict, err := s.Create(ctx, input)
	if err != nil {
		return "", err
	}
	return conflict.ID.String(), nil
}

func (s *ConflictService) Get(ctx context.Context, id uuid.UUID) (*entities.Conflict, error) {
	conflict, err := s.conflictRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get conflict: %w", err)
	}
	if conflict == nil {
		return nil, usecaseErrors.ErrConflictNotFound
	}
	return conflict, nil
}

func (s *ConflictService) List(ctx context.Context, filters repositories.ConflictFilters) ([]*entities.Conflict, error) {
	if filters.Severity != nil && !filters.Severity.Valid() {
		return nil, usecaseErrors.ErrInvalidSeverity
	}
	conflicts, err := s.conflictRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}
	return conflicts, nil
}

func (s *ConflictService) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.Conflict, error) {
	conflict, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Severity != nil {
		severity := entities.ConflictSeverity(*input.Severity)
		if !severity.Valid() {
			return nil, usecaseErrors.ErrInvalidSeverity
		}
		conflict.Severity = severity
	}
	if input.Issue != nil {
		if strings.TrimSpace(*input.Issue) == "" {
			return nil, usecaseErrors.ErrConflictFieldsMissing
		}
		conflict.Issue = strings.TrimSpace(*input.Issue)
	}
	if input.RaisedBy != nil {
		if strings.TrimSpace(*input.RaisedBy) == "" {
			return nil, usecaseErrors.ErrConflictFieldsMissing
		}
		conflict.RaisedBy = strings.TrimSpace(*input.RaisedBy)
	}
	if input.Resolution != nil {
		conflict.Resolution = *input.Resolution
	}

	if err := s.conflictRepo.Update(ctx, conflict); err != nil {
		return nil, fmt.Errorf("failed to update conflict: %w", err)
	}
	return conflict, nil
}

func (s *ConflictService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.conflictRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete conflict: %w", err)
	}
	if !deleted {
		return usecaseErrors.ErrConflictNotFound
	}
	return nil
}

package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// MeetingService handles meeting business logic
type MeetingService struct {
	meetingRepo  repositories.MeetingRepository
	taskRepo     repositories.TaskRepository
	conflictRepo repositories.ConflictRepository
	submitter    *submission.Submitter
	guard        submission.Guard
	store        ObjectStore
	logger       *zap.Logger
}

// NewMeetingService creates a new meeting service. guard and store may be nil.
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	taskRepo repositories.TaskRepository,
	conflictRepo repositories.ConflictRepository,
	submitter *submission.Submitter,
	guard submission.Guard,
	store ObjectStore,
	logger *zap.Logger,
) *MeetingService {
	return &MeetingService{
		meetingRepo:  meetingRepo,
		taskRepo:     taskRepo,
		conflictRepo: conflictRepo,
		submitter:    submitter,
		guard:        guard,
		store:        store,
		logger:       logger,
	}
}

func (s *MeetingService) Create(ctx context.Context, input CreateInput) (*entities.Meeting, error) {
	meeting := entities.NewMeeting(strings.TrimSpace(input.Title), strings.TrimSpace(input.Date))
	meeting.Summary = input.Summary
	meeting.Location = input.Location
	meeting.Host = input.Host
	meeting.Presentees = input.Presentees
	meeting.Absentees = input.Absentees
	meeting.Agenda = input.Agenda
	meeting.AdjournmentTime = input.AdjournmentTime

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("📝 Meeting created",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("title", meeting.Title),
		)
	}
	return meeting, nil
}

func (s *MeetingService) Get(ctx context.Context, id uuid.UUID) (*entities.MeetingDetail, error) {
	meeting, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, repositories.TaskFilters{MeetingID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list meeting tasks: %w", err)
	}
	conflicts, err := s.conflictRepo.List(ctx, repositories.ConflictFilters{MeetingID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list meeting conflicts: %w", err)
	}

	return &entities.MeetingDetail{
		Meeting:   *meeting,
		Tasks:     tasks,
		Conflicts: conflicts,
	}, nil
}

func (s *MeetingService) List(ctx context.Context, input ListInput) ([]*entities.Meeting, int64, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	meetings, total, err := s.meetingRepo.List(ctx, repositories.MeetingFilters{
		Search: strings.TrimSpace(input.Search),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

func (s *MeetingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	return nil
}

func (s *MeetingService) Preview(text string) extraction.Result {
	return extraction.Extract(text)
}

func (s *MeetingService) IngestAnalysis(ctx context.Context, id uuid.UUID, text string) (*IngestResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, usecaseErrors.ErrEmptyAnalysis
	}

	meeting, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	meeting.Analysis = text
	if object := s.snapshot(ctx, meeting.ID, text); object != "" {
		meeting.AnalysisObject = &object
	}
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	result := extraction.Extract(text)
	session := submission.NewSession(submission.SessionKey(meeting.ID.String(), text), s.guard)

	summary, err := s.submitter.Submit(ctx, session, meeting.ID.String(), result)
	if err != nil {
		return nil, errors.Join(usecaseErrors.ErrSubmissionBlocked, err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Analysis ingested",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Int("tasks_extracted", len(result.Tasks)),
			zap.Int("conflicts_extracted", len(result.Conflicts)),
			zap.String("task_source", string(result.TaskSource)),
			zap.String("conflict_source", string(result.ConflictSource)),
		)
	}

	return &IngestResult{
		MeetingID:      meeting.ID,
		Session:        session.Key(),
		TaskSource:     result.TaskSource,
		ConflictSource: result.ConflictSource,
		Submission:     summary,
	}, nil
}

// snapshot uploads the analysis and returns the object name, or "" when
// storage is unavailable. A failed upload never blocks ingestion.
func (s *MeetingService) snapshot(ctx context.Context, meetingID uuid.UUID, text string) string {
	if s.store == nil {
		return ""
	}
	objectName := fmt.Sprintf("analyses/%s/%d.md", meetingID, time.Now().Unix())
	if _, err := s.store.UploadText(ctx, objectName, text); err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to snapshot analysis",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
		return ""
	}
	return objectName
}

func (s *MeetingService) find(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	return meeting, nil
}

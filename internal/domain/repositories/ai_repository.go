package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
)

// AIJobRepository persists transcription and analysis jobs.
type AIJobRepository interface {
	CreateAIJob(ctx context.Context, job *entities.AIJob) error
	GetAIJobByID(ctx context.Context, jobID uuid.UUID) (*entities.AIJob, error)
	GetAIJobByExternalID(ctx context.Context, externalID string) (*entities.AIJob, error)
	GetAIJobByMeetingID(ctx context.Context, meetingID uuid.UUID, jobType entities.AIJobType) (*entities.AIJob, error)
	GetJobsForProcessing(ctx context.Context, limit int) ([]entities.AIJob, error)
	// ClaimJob atomically moves a pending or retryable job to processing.
	// It returns false when another worker got there first.
	ClaimJob(ctx context.Context, jobID uuid.UUID) (bool, error)
	// TransitionJob moves a job from one status to another and reports
	// whether this caller made the move.
	TransitionJob(ctx context.Context, jobID uuid.UUID, from, to entities.AIJobStatus) (bool, error)
	// GetStaleSubmittedJobs returns submitted jobs last touched before the cutoff.
	GetStaleSubmittedJobs(ctx context.Context, before time.Time, limit int) ([]entities.AIJob, error)
	MarkJobAsSubmitted(ctx context.Context, jobID uuid.UUID, externalID string) error
	MarkJobAsCompleted(ctx context.Context, jobID uuid.UUID, metadata entities.AIJobMetadata) error
	MarkJobAsFailed(ctx context.Context, jobID uuid.UUID, errMsg string) error
}

// TranscriptRepository persists transcripts.
type TranscriptRepository interface {
	SaveTranscript(ctx context.Context, transcript *entities.Transcript) error
	GetTranscriptByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error)
}

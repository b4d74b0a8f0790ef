package meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
)

// Service defines the interface for the meeting use case
type Service interface {
	Create(ctx context.Context, input CreateInput) (*entities.Meeting, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.MeetingDetail, error)
	List(ctx context.Context, input ListInput) ([]*entities.Meeting, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Preview extracts records from an analysis without persisting anything.
	Preview(text string) extraction.Result
	// IngestAnalysis stores the analysis on the meeting, then extracts and
	// submits its tasks and conflicts. Ingesting the same text twice for a
	// meeting creates nothing the second time.
	IngestAnalysis(ctx context.Context, id uuid.UUID, text string) (*IngestResult, error)
}

var _ Service = (*MeetingService)(nil)

// ObjectStore keeps analysis snapshots.
type ObjectStore interface {
	UploadText(ctx context.Context, objectName, content string) (string, error)
}

// CreateInput represents input for creating a meeting
type CreateInput struct {
	Title           string
	Summary         string
	Date            string
	Location        string
	Host            string
	Presentees      string
	Absentees       string
	Agenda          string
	AdjournmentTime string
}

type ListInput struct {
	Search string
	Limit  int
	Offset int
}

// IngestResult is the outcome of IngestAnalysis.
type IngestResult struct {
	MeetingID      uuid.UUID          `json:"meeting_id"`
	Session        string             `json:"session"`
	TaskSource     extraction.Source  `json:"task_source"`
	ConflictSource extraction.Source  `json:"conflict_source"`
	Submission     submission.Summary `json:"submission"`
}

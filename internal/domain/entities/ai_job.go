package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AIJobStatus represents the status of an AI processing job
type AIJobStatus string

const (
	AIJobStatusPending    AIJobStatus = "pending"    // waiting for a worker
	AIJobStatusSubmitted  AIJobStatus = "submitted"  // waiting for the transcript webhook
	AIJobStatusProcessing AIJobStatus = "processing" // claimed by a worker
	AIJobStatusCompleted  AIJobStatus = "completed"
	AIJobStatusFailed     AIJobStatus = "failed"
)

type AIJobType string

const (
	AIJobTypeTranscription AIJobType = "transcription"
	AIJobTypeAnalysis      AIJobType = "analysis"
)

// AIJob tracks one recording through transcription and analysis.
type AIJob struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID       uuid.UUID   `json:"meeting_id" gorm:"type:uuid;not null;index"`
	JobType         AIJobType   `json:"job_type" gorm:"type:varchar(50);not null;index"`
	Status          AIJobStatus `json:"status" gorm:"type:varchar(50);not null;index;default:'pending'"`
	ExternalJobID   *string     `json:"external_job_id,omitempty" gorm:"type:varchar(255);index"`
	RecordingObject string      `json:"recording_object" gorm:"type:varchar(500);not null"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	RetryCount  int        `json:"retry_count" gorm:"default:0"`
	MaxRetries  int        `json:"max_retries" gorm:"default:3"`
	LastError   *string    `json:"last_error,omitempty" gorm:"type:text"`

	Metadata AIJobMetadata `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// AIJobMetadata stores additional metadata for AI jobs
type AIJobMetadata struct {
	DurationSeconds  int    `json:"duration_seconds,omitempty"`
	Language         string `json:"language,omitempty"`
	SpeakerCount     int    `json:"speaker_count,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms,omitempty"`
	TasksCreated     int    `json:"tasks_created,omitempty"`
	ConflictsCreated int    `json:"conflicts_created,omitempty"`
	WebhookAttempts  int    `json:"webhook_attempts,omitempty"`
}

// Scan implements sql.Scanner.
func (m *AIJobMetadata) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported metadata type %T", value)
	}
}

// Value implements driver.Valuer.
func (m AIJobMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// NewAIJob creates a pending job for a stored recording.
func NewAIJob(meetingID uuid.UUID, jobType AIJobType, recordingObject string) *AIJob {
	now := time.Now()
	return &AIJob{
		ID:              uuid.New(),
		MeetingID:       meetingID,
		JobType:         jobType,
		Status:          AIJobStatusPending,
		RecordingObject: recordingObject,
		MaxRetries:      3,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (j *AIJob) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries && j.Status == AIJobStatusFailed
}

func (j *AIJob) MarkAsSubmitted(externalJobID string) {
	j.Status = AIJobStatusSubmitted
	j.ExternalJobID = &externalJobID
	now := time.Now()
	j.StartedAt = &now
	j.UpdatedAt = now
}

func (j *AIJob) MarkAsProcessing() {
	j.Status = AIJobStatusProcessing
	j.UpdatedAt = time.Now()
}

func (j *AIJob) MarkAsCompleted() {
	j.Status = AIJobStatusCompleted
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

func (j *AIJob) MarkAsFailed(errMsg string) {
	j.Status = AIJobStatusFailed
	j.RetryCount++
	j.LastError = &errMsg
	j.UpdatedAt = time.Now()
}

func (AIJob) TableName() string {
	return "ai_jobs"
}

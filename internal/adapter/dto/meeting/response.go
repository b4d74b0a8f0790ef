package meeting

import (
	"time"

	"github.com/johnquangdev/minutemind/internal/adapter/dto/common"
	"github.com/johnquangdev/minutemind/internal/adapter/dto/conflict"
	"github.com/johnquangdev/minutemind/internal/adapter/dto/task"
	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
)

// MeetingResponse represents meeting information in responses
type MeetingResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	Date            string    `json:"date"`
	Location        string    `json:"location"`
	Host            string    `json:"host"`
	Presentees      string    `json:"presentees"`
	Absentees       string    `json:"absentees"`
	Agenda          string    `json:"agenda"`
	AdjournmentTime string    `json:"adjournment_time"`
	HasAnalysis     bool      `json:"has_analysis"`
	HasRecording    bool      `json:"has_recording"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MeetingDetailResponse is a meeting with its analysis, transcript and records.
type MeetingDetailResponse struct {
	MeetingResponse
	Analysis       string                       `json:"analysis,omitempty"`
	TranscriptText string                       `json:"transcript_text,omitempty"`
	Speakers       []string                     `json:"speakers"`
	Tasks          []*task.TaskResponse         `json:"tasks"`
	Conflicts      []*conflict.ConflictResponse `json:"conflicts"`
}

// ListMeetingsResponse represents a paginated list of meetings
type ListMeetingsResponse struct {
	Meetings   []*MeetingResponse         `json:"meetings"`
	Pagination *common.PaginationResponse `json:"pagination"`
}

// ExtractResponse is the preview of what an analysis would create.
type ExtractResponse struct {
	Tasks          []extraction.TaskRecord     `json:"tasks"`
	Conflicts      []extraction.ConflictRecord `json:"conflicts"`
	TaskSource     extraction.Source           `json:"task_source"`
	ConflictSource extraction.Source           `json:"conflict_source"`
}

// IngestResponse reports what an analysis submission created.
type IngestResponse struct {
	MeetingID        string              `json:"meeting_id"`
	TaskSource       extraction.Source   `json:"task_source"`
	ConflictSource   extraction.Source   `json:"conflict_source"`
	TasksSkipped     bool                `json:"tasks_skipped"`
	ConflictsSkipped bool                `json:"conflicts_skipped"`
	TasksCreated     int                 `json:"tasks_created"`
	ConflictsCreated int                 `json:"conflicts_created"`
	Outcomes         []RecordOutcomeItem `json:"outcomes"`
}

// RecordOutcomeItem is the result of submitting one extracted record.
type RecordOutcomeItem struct {
	Kind     string `json:"kind"`
	Index    int    `json:"index"`
	Label    string `json:"label"`
	ID       string `json:"id,omitempty"`
	Error    string `json:"error,omitempty"`
	Attempts int    `json:"attempts"`
}

// RecordingResponse is the queued transcription job for an upload.
type RecordingResponse struct {
	JobID     string    `json:"job_id"`
	MeetingID string    `json:"meeting_id"`
	Status    string    `json:"status"`
	Object    string    `json:"object"`
	CreatedAt time.Time `json:"created_at"`
}

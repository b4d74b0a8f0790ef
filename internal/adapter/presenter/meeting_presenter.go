package presenter

import (
	"encoding/json"

	meetingDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/meeting"
	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
	"github.com/johnquangdev/minutemind/internal/usecase/meeting"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}
	return &meetingDTO.MeetingResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		Summary:         m.Summary,
		Date:            m.Date,
		Location:        m.Location,
		Host:            m.Host,
		Presentees:      m.Presentees,
		Absentees:       m.Absentees,
		Agenda:          m.Agenda,
		AdjournmentTime: m.AdjournmentTime,
		HasAnalysis:     m.Analysis != "",
		HasRecording:    m.RecordingObject != nil,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToMeetingListResponse converts a slice of meetings to responses
func ToMeetingListResponse(meetings []*entities.Meeting) []*meetingDTO.MeetingResponse {
	responses := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		responses = append(responses, ToMeetingResponse(m))
	}
	return responses
}

// ToMeetingDetailResponse converts a meeting with its records.
func ToMeetingDetailResponse(d *entities.MeetingDetail) *meetingDTO.MeetingDetailResponse {
	if d == nil {
		return nil
	}

	speakers := []string{}
	if len(d.Speakers) > 0 {
		_ = json.Unmarshal(d.Speakers, &speakers)
	}

	return &meetingDTO.MeetingDetailResponse{
		MeetingResponse: *ToMeetingResponse(&d.Meeting),
		Analysis:        d.Analysis,
		TranscriptText:  d.TranscriptText,
		Speakers:        speakers,
		Tasks:           ToTaskListResponse(d.Tasks),
		Conflicts:       ToConflictListResponse(d.Conflicts),
	}
}

// ToExtractResponse converts an extraction preview.
func ToExtractResponse(r extraction.Result) *meetingDTO.ExtractResponse {
	tasks := r.Tasks
	if tasks == nil {
		tasks = []extraction.TaskRecord{}
	}
	conflicts := r.Conflicts
	if conflicts == nil {
		conflicts = []extraction.ConflictRecord{}
	}
	return &meetingDTO.ExtractResponse{
		Tasks:          tasks,
		Conflicts:      conflicts,
		TaskSource:     r.TaskSource,
		ConflictSource: r.ConflictSource,
	}
}

// ToIngestResponse flattens the submission summary into per-record outcomes.
func ToIngestResponse(r *meeting.IngestResult) *meetingDTO.IngestResponse {
	if r == nil {
		return nil
	}

	outcomes := make([]meetingDTO.RecordOutcomeItem, 0,
		len(r.Submission.Tasks.Outcomes)+len(r.Submission.Conflicts.Outcomes))
	for _, o := range r.Submission.Tasks.Outcomes {
		outcomes = append(outcomes, meetingDTO.RecordOutcomeItem{
			Kind:     "task",
			Index:    o.Index,
			Label:    o.Record.Task,
			ID:       o.ID,
			Error:    o.Error,
			Attempts: o.Attempts,
		})
	}
	for _, o := range r.Submission.Conflicts.Outcomes {
		outcomes = append(outcomes, meetingDTO.RecordOutcomeItem{
			Kind:     "conflict",
			Index:    o.Index,
			Label:    o.Record.Issue,
			ID:       o.ID,
			Error:    o.Error,
			Attempts: o.Attempts,
		})
	}

	return &meetingDTO.IngestResponse{
		MeetingID:        r.MeetingID.String(),
		TaskSource:       r.TaskSource,
		ConflictSource:   r.ConflictSource,
		TasksSkipped:     r.Submission.TasksSkipped,
		ConflictsSkipped: r.Submission.ConflictsSkipped,
		TasksCreated:     r.Submission.Tasks.Succeeded(),
		ConflictsCreated: r.Submission.Conflicts.Succeeded(),
		Outcomes:         outcomes,
	}
}

// ToRecordingResponse converts the transcription job queued for an upload.
func ToRecordingResponse(job *entities.AIJob) *meetingDTO.RecordingResponse {
	if job == nil {
		return nil
	}
	return &meetingDTO.RecordingResponse{
		JobID:     job.ID.String(),
		MeetingID: job.MeetingID.String(),
		Status:    string(job.Status),
		Object:    job.RecordingObject,
		CreatedAt: job.CreatedAt,
	}
}

package presenter

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
	"github.com/johnquangdev/minutemind/internal/usecase/meeting"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
)

func TestToMeetingDetailResponse(t *testing.T) {
	m := entities.NewMeeting("Retro", "2024-05-01")
	m.Analysis = "## Summary"
	m.Speakers = datatypes.JSON(`["Speaker A","Speaker B"]`)
	task := entities.NewTask(&m.ID, "Alice", "Write notes", "Friday")

	resp := ToMeetingDetailResponse(&entities.MeetingDetail{Meeting: *m, Tasks: []*entities.Task{task}})
	require.NotNil(t, resp)

	assert.True(t, resp.HasAnalysis)
	assert.False(t, resp.HasRecording)
	assert.Equal(t, []string{"Speaker A", "Speaker B"}, resp.Speakers)
	require.Len(t, resp.Tasks, 1)
	require.NotNil(t, resp.Tasks[0].MeetingID)
	assert.Equal(t, m.ID.String(), *resp.Tasks[0].MeetingID)
	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
}

func TestToExtractResponse_NeverNil(t *testing.T) {
	resp := ToExtractResponse(extraction.Result{TaskSource: extraction.SourceNone, ConflictSource: extraction.SourceNone})
	assert.NotNil(t, resp.Tasks)
	assert.NotNil(t, resp.Conflicts)
}

func TestToIngestResponse(t *testing.T) {
	result := &meeting.IngestResult{
		MeetingID:  uuid.New(),
		TaskSource: extraction.SourceTable,
		Submission: submission.Summary{
			Tasks: submission.Report[submission.TaskDraft]{Outcomes: []submission.Outcome[submission.TaskDraft]{
				{Index: 0, Record: submission.TaskDraft{Task: "A"}, ID: "t1", Attempts: 1},
				{Index: 1, Record: submission.TaskDraft{Task: "B"}, Err: errors.New("boom"), Error: "boom", Attempts: 3},
			}},
			ConflictsSkipped: true,
		},
	}

	resp := ToIngestResponse(result)

	assert.Equal(t, 1, resp.TasksCreated)
	assert.Equal(t, 0, resp.ConflictsCreated)
	assert.True(t, resp.ConflictsSkipped)
	require.Len(t, resp.Outcomes, 2)
	assert.Equal(t, "task", resp.Outcomes[1].Kind)
	assert.Equal(t, "B", resp.Outcomes[1].Label)
	assert.Equal(t, "boom", resp.Outcomes[1].Error)
}

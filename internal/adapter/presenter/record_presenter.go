package presenter

import (
	"github.com/google/uuid"

	conflictDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/conflict"
	taskDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/task"
	"github.com/johnquangdev/minutemind/internal/domain/entities"
)

func ToTaskResponse(t *entities.Task) *taskDTO.TaskResponse {
	if t == nil {
		return nil
	}
	return &taskDTO.TaskResponse{
		ID:        t.ID.String(),
		MeetingID: uuidString(t.MeetingID),
		Person:    t.Person,
		Task:      t.Task,
		Deadline:  t.Deadline,
		Status:    string(t.Status),
		Notes:     t.Notes,
		Source:    string(t.Source),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func ToTaskListResponse(tasks []*entities.Task) []*taskDTO.TaskResponse {
	responses := make([]*taskDTO.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, ToTaskResponse(t))
	}
	return responses
}

func ToConflictResponse(c *entities.Conflict) *conflictDTO.ConflictResponse {
	if c == nil {
		return nil
	}
	return &conflictDTO.ConflictResponse{
		ID:         c.ID.String(),
		MeetingID:  uuidString(c.MeetingID),
		Issue:      c.Issue,
		RaisedBy:   c.RaisedBy,
		Resolution: c.Resolution,
		Severity:   string(c.Severity),
		Source:     string(c.Source),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func ToConflictListResponse(conflicts []*entities.Conflict) []*conflictDTO.ConflictResponse {
	responses := make([]*conflictDTO.ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		responses = append(responses, ToConflictResponse(c))
	}
	return responses
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

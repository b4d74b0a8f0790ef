package entities

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the progress of an action item.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// RecordSource tells whether a record was typed in or extracted from analysis.
type RecordSource string

const (
	RecordSourceManual    RecordSource = "manual"
	RecordSourceExtracted RecordSource = "extracted"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Next returns the status that follows s in the Pending -> In Progress ->
// Done -> Pending cycle. Unknown statuses restart at Pending.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskStatusPending:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusDone
	default:
		return TaskStatusPending
	}
}

// Task is an action item owned by a person.
type Task struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID *uuid.UUID   `gorm:"type:uuid;index" json:"meeting_id,omitempty"`
	Person    string       `gorm:"type:varchar(255);not null" json:"person"`
	Task      string       `gorm:"type:text;not null" json:"task"`
	Deadline  string       `gorm:"type:varchar(100)" json:"deadline"`
	Status    TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Notes     string       `gorm:"type:text" json:"notes"`
	Source    RecordSource `gorm:"type:varchar(20);not null;default:'manual'" json:"source"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a pending task.
func NewTask(meetingID *uuid.UUID, person, task, deadline string) *Task {
	now := time.Now()
	return &Task{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Person:    person,
		Task:      task,
		Deadline:  deadline,
		Status:    TaskStatusPending,
		Source:    RecordSourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves the task to its next status.
func (t *Task) Advance() {
	t.Status = t.Status.Next()
	t.UpdatedAt = time.Now()
}

package task

import "time"

// TaskResponse represents a task in responses
type TaskResponse struct {
	ID        string    `json:"id"`
	MeetingID *string   `json:"meeting_id,omitempty"`
	Person    string    `json:"person"`
	Task      string    `json:"task"`
	Deadline  string    `json:"deadline"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

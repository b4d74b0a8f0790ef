package conflict

import "time"

// ConflictResponse represents a conflict in responses
type ConflictResponse struct {
	ID         string    `json:"id"`
	MeetingID  *string   `json:"meeting_id,omitempty"`
	Issue      string    `json:"issue"`
	RaisedBy   string    `json:"raised_by"`
	Resolution string    `json:"resolution"`
	Severity   string    `json:"severity"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

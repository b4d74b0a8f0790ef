package conflict

// CreateConflictRequest represents the request to create a conflict
type CreateConflictRequest struct {
	MeetingID  *string `json:"meeting_id,omitempty" validate:"omitempty,uuid"`
	Issue      string  `json:"issue" validate:"required"`
	RaisedBy   string  `json:"raised_by" validate:"required,max=255"`
	Resolution string  `json:"resolution"`
	Severity   string  `json:"severity" validate:"omitempty,oneof=Low Medium High"`
	Source     string  `json:"source,omitempty" validate:"omitempty,oneof=manual extracted"`
}

// UpdateConflictRequest represents a partial conflict update
type UpdateConflictRequest struct {
	Issue      *string `json:"issue,omitempty" validate:"omitempty,min=1"`
	RaisedBy   *string `json:"raised_by,omitempty" validate:"omitempty,min=1,max=255"`
	Resolution *string `json:"resolution,omitempty"`
	Severity   *string `json:"severity,omitempty" validate:"omitempty,oneof=Low Medium High"`
}

// ListConflictsRequest represents query parameters for listing conflicts
type ListConflictsRequest struct {
	MeetingID string `query:"meeting_id" validate:"omitempty,uuid"`
	Severity  string `query:"severity" validate:"omitempty,oneof=Low Medium High"`
}

package task

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	MeetingID *string `json:"meeting_id,omitempty" validate:"omitempty,uuid"`
	Person    string  `json:"person" validate:"required,max=255"`
	Task      string  `json:"task" validate:"required"`
	Deadline  string  `json:"deadline" validate:"omitempty,max=100"`
	Status    string  `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Done"`
	Notes     string  `json:"notes"`
	Source    string  `json:"source,omitempty" validate:"omitempty,oneof=manual extracted"`
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=Pending 'In Progress' Done"`
	Person   *string `json:"person,omitempty" validate:"omitempty,min=1,max=255"`
	Task     *string `json:"task,omitempty" validate:"omitempty,min=1"`
	Deadline *string `json:"deadline,omitempty" validate:"omitempty,max=100"`
	Notes    *string `json:"notes,omitempty"`
}

// ListTasksRequest represents query parameters for listing tasks
type ListTasksRequest struct {
	MeetingID string `query:"meeting_id" validate:"omitempty,uuid"`
	Status    string `query:"status" validate:"omitempty,oneof=Pending 'In Progress' Done"`
	Person    string `query:"person"`
}

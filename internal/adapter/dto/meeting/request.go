package meeting

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title           string `json:"title" validate:"omitempty,max=255"`
	Summary         string `json:"summary"`
	Date            string `json:"date" validate:"omitempty,max=50"`
	Location        string `json:"location" validate:"omitempty,max=255"`
	Host            string `json:"host" validate:"omitempty,max=255"`
	Presentees      string `json:"presentees"`
	Absentees       string `json:"absentees"`
	Agenda          string `json:"agenda"`
	AdjournmentTime string `json:"adjournment_time" validate:"omitempty,max=50"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Search   string `query:"search"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=200"`
}

// AnalysisRequest carries analysis text, either for a preview or for
// ingestion into a meeting.
type AnalysisRequest struct {
	Analysis string `json:"analysis" validate:"required"`
}

// TranscriptRequest carries a typed transcript to analyze.
type TranscriptRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrAuthDisabled       = errors.New("authentication is disabled")
)

// Meeting errors
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrEmptyAnalysis   = errors.New("analysis text is empty")
	ErrEmptyTranscript = errors.New("transcript text is empty")

	ErrSubmissionBlocked = errors.New("submission guard unavailable")
)

// Task errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskFieldsMissing = errors.New("person and task are required")
	ErrInvalidTaskStatus = errors.New("status must be one of Pending, In Progress, Done")
)

// Conflict errors
var (
	ErrConflictNotFound      = errors.New("conflict not found")
	ErrConflictFieldsMissing = errors.New("issue and raised_by are required")
	ErrInvalidSeverity       = errors.New("severity must be one of Low, Medium, High")
)

// AI pipeline errors
var (
	ErrAIJobNotFound       = errors.New("ai job not found")
	ErrAIDisabled          = errors.New("ai pipeline is not configured")
	ErrAnalysisFailed      = errors.New("transcript analysis failed")
	ErrStorageDisabled     = errors.New("object storage is not configured")
	ErrInvalidWebhookToken = errors.New("invalid webhook token")
	ErrInvalidWebhook      = errors.New("invalid webhook payload")
)

package errors

// ErrorCode is the machine-readable code carried in every error response.
type ErrorCode int32

const (
	ErrorCode_OK                ErrorCode = 0
	ErrorCode_INTERNAL          ErrorCode = 1
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 2
	ErrorCode_NOT_FOUND         ErrorCode = 3
	ErrorCode_ALREADY_EXISTS    ErrorCode = 4
	ErrorCode_PERMISSION_DENIED ErrorCode = 5
	ErrorCode_UNAUTHENTICATED   ErrorCode = 6
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 7

	ErrorCode_AUTH_INVALID_TOKEN       ErrorCode = 100
	ErrorCode_AUTH_TOKEN_EXPIRED       ErrorCode = 101
	ErrorCode_AUTH_INVALID_CREDENTIALS ErrorCode = 102
	ErrorCode_AUTH_DISABLED            ErrorCode = 103

	ErrorCode_MEETING_NOT_FOUND  ErrorCode = 200
	ErrorCode_EMPTY_ANALYSIS     ErrorCode = 201
	ErrorCode_EMPTY_TRANSCRIPT   ErrorCode = 202
	ErrorCode_SUBMISSION_BLOCKED ErrorCode = 203

	ErrorCode_TASK_NOT_FOUND      ErrorCode = 300
	ErrorCode_INVALID_TASK_STATUS ErrorCode = 301

	ErrorCode_CONFLICT_NOT_FOUND ErrorCode = 400
	ErrorCode_INVALID_SEVERITY   ErrorCode = 401

	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 500
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 501
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 502
	ErrorCode_AI_QUOTA_EXCEEDED       ErrorCode = 503

	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 600
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 601
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 602

	ErrorCode_DB_QUERY_FAILED ErrorCode = 700
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_OK:                              "OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:        "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_DISABLED:                   "AUTH_DISABLED",
	ErrorCode_MEETING_NOT_FOUND:               "MEETING_NOT_FOUND",
	ErrorCode_EMPTY_ANALYSIS:                  "EMPTY_ANALYSIS",
	ErrorCode_EMPTY_TRANSCRIPT:                "EMPTY_TRANSCRIPT",
	ErrorCode_SUBMISSION_BLOCKED:              "SUBMISSION_BLOCKED",
	ErrorCode_TASK_NOT_FOUND:                  "TASK_NOT_FOUND",
	ErrorCode_INVALID_TASK_STATUS:             "INVALID_TASK_STATUS",
	ErrorCode_CONFLICT_NOT_FOUND:              "CONFLICT_NOT_FOUND",
	ErrorCode_INVALID_SEVERITY:                "INVALID_SEVERITY",
	ErrorCode_AI_ANALYSIS_FAILED:              "AI_ANALYSIS_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:         "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:          "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:               "AI_QUOTA_EXCEEDED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

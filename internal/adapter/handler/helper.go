package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/errors"
	"github.com/johnquangdev/minutemind/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/pkg/validator"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request or the response
// header set by the RequestID middleware.
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated is HandleSuccess with 201 Created.
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    errors.ErrorCode_OK,
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(c, err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("app_code", appErr.Code.String()),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// ErrorHandler renders errors returned by middleware and unknown routes in
// the same envelope as handler errors.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if herr := HandleError(logger, c, err); herr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(herr))
		}
	}
}

// toAppError maps use case errors onto client-facing AppErrors.
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	id := c.Param("id")
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrEmptyAnalysis):
		return errors.ErrEmptyAnalysis()
	case stdErrors.Is(err, usecaseErrors.ErrEmptyTranscript):
		return errors.ErrEmptyTranscript()
	case stdErrors.Is(err, usecaseErrors.ErrSubmissionBlocked):
		return errors.ErrSubmissionBlocked(err)

	case stdErrors.Is(err, usecaseErrors.ErrTaskNotFound):
		return errors.ErrTaskNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidTaskStatus):
		return errors.ErrInvalidTaskStatus("")
	case stdErrors.Is(err, usecaseErrors.ErrConflictNotFound):
		return errors.ErrConflictNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidSeverity):
		return errors.ErrInvalidSeverity("")
	case stdErrors.Is(err, usecaseErrors.ErrTaskFieldsMissing),
		stdErrors.Is(err, usecaseErrors.ErrConflictFieldsMissing),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())

	case stdErrors.Is(err, usecaseErrors.ErrInvalidCredentials):
		return errors.ErrInvalidCredentials()
	case stdErrors.Is(err, usecaseErrors.ErrAuthDisabled):
		return errors.ErrAuthDisabled()
	case stdErrors.Is(err, usecaseErrors.ErrTokenExpired):
		return errors.ErrTokenExpired()
	case stdErrors.Is(err, usecaseErrors.ErrTokenInvalid),
		stdErrors.Is(err, usecaseErrors.ErrInvalidWebhookToken):
		return errors.ErrInvalidToken()

	case stdErrors.Is(err, usecaseErrors.ErrInvalidWebhook):
		return errors.ErrInvalidPayload()
	case stdErrors.Is(err, usecaseErrors.ErrAIJobNotFound):
		return errors.ErrNotFound("AI job")
	case stdErrors.Is(err, usecaseErrors.ErrAIDisabled):
		return errors.ErrAIServiceUnavailable("ai")
	case stdErrors.Is(err, usecaseErrors.ErrStorageDisabled):
		return errors.ErrAIServiceUnavailable("storage")
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisFailed):
		return errors.ErrAIAnalysisFailed(err)
	}

	return errors.ErrInternal(err)
}

func fromHTTPError(httpErr *echo.HTTPError) errors.AppError {
	message := http.StatusText(httpErr.Code)
	if m, ok := httpErr.Message.(string); ok && m != "" {
		message = m
	}

	code := errors.ErrorCode_INTERNAL
	switch httpErr.Code {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		code = errors.ErrorCode_INVALID_ARGUMENT
	case http.StatusUnauthorized:
		code = errors.ErrorCode_UNAUTHENTICATED
	case http.StatusForbidden:
		code = errors.ErrorCode_PERMISSION_DENIED
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		code = errors.ErrorCode_NOT_FOUND
	}

	return errors.AppError{
		Raw:      httpErr.Internal,
		HTTPCode: httpErr.Code,
		Code:     code,
		Message:  message,
	}
}

// bindAndValidate binds the request into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrInvalidArgument("Validation failed")
		for field, rule := range validator.FieldErrors(err) {
			appErr = appErr.WithDetail(field, rule)
		}
		return appErr
	}
	return nil
}

// parseUUIDParam parses a path parameter as a UUID.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(name + " must be a valid UUID")
	}
	return id, nil
}

// parseOptionalUUID parses a UUID held in an optional string field.
func parseOptionalUUID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, errors.ErrInvalidArgument(field + " must be a valid UUID")
	}
	return &id, nil
}

// recordSource defaults an empty source to manual.
func recordSource(raw string) entities.RecordSource {
	if raw == "" {
		return entities.RecordSourceManual
	}
	return entities.RecordSource(raw)
}

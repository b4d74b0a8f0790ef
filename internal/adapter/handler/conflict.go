package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	conflictDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/conflict"
	"github.com/johnquangdev/minutemind/internal/adapter/presenter"
	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
	conflictUsecase "github.com/johnquangdev/minutemind/internal/usecase/conflict"
)

// Conflict handles conflict HTTP requests
type Conflict struct {
	conflictService conflictUsecase.Service
	logger          *zap.Logger
}

// NewConflictHandler creates a new conflict handler
func NewConflictHandler(conflictService conflictUsecase.Service, logger *zap.Logger) *Conflict {
	return &Conflict{
		conflictService: conflictService,
		logger:          logger,
	}
}

// ListConflicts handles GET /conflicts
// @Summary      List conflicts
// @Tags         Conflicts
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  query     string  false  "Meeting ID (UUID)"
// @Param        severity    query     string  false  "Low, Medium or High"
// @Success      200  {array}   conflict.ConflictResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /conflicts [get]
func (h *Conflict) ListConflicts(c echo.Context) error {
	var req conflictDTO.ListConflictsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var filters repositories.ConflictFilters
	if req.MeetingID != "" {
		id := uuid.MustParse(req.MeetingID)
		filters.MeetingID = &id
	}
	if req.Severity != "" {
		severity := entities.ConflictSeverity(req.Severity)
		filters.Severity = &severity
	}

	conflicts, err := h.conflictService.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToConflictListResponse(conflicts))
}

// CreateConflict handles POST /conflicts
// @Summary      Record a conflict
// @Description  Severity defaults to Medium
// @Tags         Conflicts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      conflict.CreateConflictRequest  true  "Conflict"
// @Success      201      {object}  conflict.ConflictResponse
// @Failure      400      {object}  map[string]interface{}
// @Router       /conflicts [post]
func (h *Conflict) CreateConflict(c echo.Context) error {
	var req conflictDTO.CreateConflictRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meetingID, err := parseOptionalUUID("meeting_id", req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	conflict, err := h.conflictService.Create(c.Request().Context(), conflictUsecase.CreateInput{
		MeetingID:  meetingID,
		Issue:      req.Issue,
		RaisedBy:   req.RaisedBy,
		Resolution: req.Resolution,
		Severity:   req.Severity,
		Source:     recordSource(req.Source),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToConflictResponse(conflict))
}

// UpdateConflict handles PATCH /conflicts/:id
// @Summary      Update a conflict
// @Tags         Conflicts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Conflict ID (UUID)"
// @Param        request  body      conflict.UpdateConflictRequest  true  "Fields to change"
// @Success      200      {object}  conflict.ConflictResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /conflicts/{id} [patch]
func (h *Conflict) UpdateConflict(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req conflictDTO.UpdateConflictRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	conflict, err := h.conflictService.Update(c.Request().Context(), id, conflictUsecase.UpdateInput{
		Issue:      req.Issue,
		RaisedBy:   req.RaisedBy,
		Resolution: req.Resolution,
		Severity:   req.Severity,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToConflictResponse(conflict))
}

// DeleteConflict handles DELETE /conflicts/:id
// @Summary      Delete a conflict
// @Tags         Conflicts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Conflict ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /conflicts/{id} [delete]
func (h *Conflict) DeleteConflict(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.conflictService.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	taskDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/task"
	"github.com/johnquangdev/minutemind/internal/adapter/presenter"
	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
	taskUsecase "github.com/johnquangdev/minutemind/internal/usecase/task"
)

// Task handles task HTTP requests
type Task struct {
	taskService taskUsecase.Service
	logger      *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService taskUsecase.Service, logger *zap.Logger) *Task {
	return &Task{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks handles GET /tasks
// @Summary      List tasks
// @Description  Lists tasks, newest first
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  query     string  false  "Meeting ID (UUID)"
// @Param        status      query     string  false  "Pending, In Progress or Done"
// @Param        person      query     string  false  "Owner"
// @Success      200  {array}   task.TaskResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /tasks [get]
func (h *Task) ListTasks(c echo.Context) error {
	var req taskDTO.ListTasksRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	filters := repositories.TaskFilters{Person: req.Person}
	if req.MeetingID != "" {
		id := uuid.MustParse(req.MeetingID)
		filters.MeetingID = &id
	}
	if req.Status != "" {
		status := entities.TaskStatus(req.Status)
		filters.Status = &status
	}

	tasks, err := h.taskService.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTaskListResponse(tasks))
}

// CreateTask handles POST /tasks
// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      task.CreateTaskRequest  true  "Task"
// @Success      201      {object}  task.TaskResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /tasks [post]
func (h *Task) CreateTask(c echo.Context) error {
	var req taskDTO.CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meetingID, err := parseOptionalUUID("meeting_id", req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.taskService.Create(c.Request().Context(), taskUsecase.CreateInput{
		MeetingID: meetingID,
		Person:    req.Person,
		Task:      req.Task,
		Deadline:  req.Deadline,
		Status:    req.Status,
		Notes:     req.Notes,
		Source:    recordSource(req.Source),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToTaskResponse(t))
}

// UpdateTask handles PATCH /tasks/:id
// @Summary      Update a task
// @Description  Updates the given fields of a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Task ID (UUID)"
// @Param        request  body      task.UpdateTaskRequest  true  "Fields to change"
// @Success      200      {object}  task.TaskResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /tasks/{id} [patch]
func (h *Task) UpdateTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req taskDTO.UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.taskService.Update(c.Request().Context(), id, taskUsecase.UpdateInput{
		Status:   req.Status,
		Person:   req.Person,
		Task:     req.Task,
		Deadline: req.Deadline,
		Notes:    req.Notes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(t))
}

// AdvanceTask handles POST /tasks/:id/advance
// @Summary      Advance task status
// @Description  Moves the task Pending -> In Progress -> Done -> Pending
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID (UUID)"
// @Success      200  {object}  task.TaskResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /tasks/{id}/advance [post]
func (h *Task) AdvanceTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.taskService.Advance(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(t))
}

// DeleteTask handles DELETE /tasks/:id
// @Summary      Delete a task
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /tasks/{id} [delete]
func (h *Task) DeleteTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.taskService.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

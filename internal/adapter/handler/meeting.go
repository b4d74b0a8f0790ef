package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/errors"
	"github.com/johnquangdev/minutemind/internal/adapter/dto/common"
	meetingDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/meeting"
	"github.com/johnquangdev/minutemind/internal/adapter/presenter"
	aiUsecase "github.com/johnquangdev/minutemind/internal/usecase/ai"
	meetingUsecase "github.com/johnquangdev/minutemind/internal/usecase/meeting"
)

const (
	defaultPageSize = 50
	recordingField  = "audio"
)

// Meeting handles meeting and analysis HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	aiService      aiUsecase.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, aiService aiUsecase.Service, maxUploadMB int64, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		aiService:      aiService,
		maxUploadBytes: maxUploadMB << 20,
		logger:         logger,
	}
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Lists meetings, newest first
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Search in title, host and agenda"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        page_size  query     int     false  "Page size (default 50, max 200)"
// @Success      200  {object}  meeting.ListMeetingsResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req meetingDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = defaultPageSize
	}

	meetings, total, err := h.meetingService.List(c.Request().Context(), meetingUsecase.ListInput{
		Search: req.Search,
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &meetingDTO.ListMeetingsResponse{
		Meetings:   presenter.ToMeetingListResponse(meetings),
		Pagination: common.NewPagination(req.Page, req.PageSize, total),
	})
}

// CreateMeeting handles POST /meetings
// @Summary      Create a meeting
// @Description  Creates a meeting; the title defaults to "Untitled Meeting" and the date to today
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting"
// @Success      201      {object}  meeting.MeetingResponse
// @Failure      400      {object}  map[string]interface{}
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meetingDTO.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.Create(c.Request().Context(), meetingUsecase.CreateInput{
		Title:           req.Title,
		Summary:         req.Summary,
		Date:            req.Date,
		Location:        req.Location,
		Host:            req.Host,
		Presentees:      req.Presentees,
		Absentees:       req.Absentees,
		Agenda:          req.Agenda,
		AdjournmentTime: req.AdjournmentTime,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting details
// @Description  Gets a meeting with its analysis, transcript, tasks and conflicts
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingDetailResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	detail, err := h.meetingService.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingDetailResponse(detail))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// IngestAnalysis handles POST /meetings/:id/analysis
// @Summary      Submit meeting analysis
// @Description  Stores the analysis on the meeting, extracts tasks and conflicts and creates them.
// @Description  Posting the same analysis again creates nothing.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Meeting ID (UUID)"
// @Param        request  body      meeting.AnalysisRequest   true  "Analysis text"
// @Success      200      {object}  meeting.IngestResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Failure      503      {object}  map[string]interface{}
// @Router       /meetings/{id}/analysis [post]
func (h *Meeting) IngestAnalysis(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.AnalysisRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.meetingService.IngestAnalysis(c.Request().Context(), id, req.Analysis)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToIngestResponse(result))
}

// AnalyzeTranscript handles POST /meetings/:id/transcript
// @Summary      Analyze a typed transcript
// @Description  Runs the LLM analysis on the transcript and ingests the result like a submitted analysis
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Meeting ID (UUID)"
// @Param        request  body      meeting.TranscriptRequest  true  "Transcript text"
// @Success      200      {object}  meeting.IngestResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      502      {object}  map[string]interface{}
// @Failure      503      {object}  map[string]interface{}
// @Router       /meetings/{id}/transcript [post]
func (h *Meeting) AnalyzeTranscript(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.TranscriptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.aiService.AnalyzeTranscript(c.Request().Context(), id, req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToIngestResponse(result))
}

// UploadRecording handles POST /meetings/:id/recording
// @Summary      Upload a meeting recording
// @Description  Stores the audio and queues it for transcription and analysis
// @Tags         Analysis
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Meeting ID (UUID)"
// @Param        audio  formData  file    true  "Audio file"
// @Success      201    {object}  meeting.RecordingResponse
// @Failure      400    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}
// @Failure      503    {object}  map[string]interface{}
// @Router       /meetings/{id}/recording [post]
func (h *Meeting) UploadRecording(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	file, err := c.FormFile(recordingField)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("multipart field \"audio\" is required"))
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(
			fmt.Sprintf("recording exceeds the %d MB limit", h.maxUploadBytes>>20)))
	}

	src, err := file.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer src.Close()

	job, err := h.aiService.UploadRecording(c.Request().Context(), id, aiUsecase.RecordingInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Size:        file.Size,
		Body:        src,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToRecordingResponse(job))
}

// ExtractAnalysis handles POST /analysis/extract
// @Summary      Preview extraction
// @Description  Extracts tasks and conflicts from analysis text without saving anything
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.AnalysisRequest  true  "Analysis text"
// @Success      200      {object}  meeting.ExtractResponse
// @Failure      400      {object}  map[string]interface{}
// @Router       /analysis/extract [post]
func (h *Meeting) ExtractAnalysis(c echo.Context) error {
	var req meetingDTO.AnalysisRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToExtractResponse(h.meetingService.Preview(req.Analysis)))
}

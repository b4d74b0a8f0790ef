package momclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	authDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/auth"
	conflictDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/conflict"
	meetingDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/meeting"
	taskDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/task"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
)

var (
	_ submission.TaskSink     = (*Client)(nil)
	_ submission.ConflictSink = (*Client)(nil)
)

// Login exchanges operator credentials for an access token and keeps it on
// the client.
func (c *Client) Login(ctx context.Context, username, password string) (*authDTO.LoginResponse, error) {
	var resp authDTO.LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", authDTO.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// CreateMeeting creates a meeting.
func (c *Client) CreateMeeting(ctx context.Context, req meetingDTO.CreateMeetingRequest) (*meetingDTO.MeetingResponse, error) {
	var resp meetingDTO.MeetingResponse
	if err := c.do(ctx, http.MethodPost, "/v1/meetings", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMeeting fetches a meeting with its tasks and conflicts.
func (c *Client) GetMeeting(ctx context.Context, id string) (*meetingDTO.MeetingDetailResponse, error) {
	var resp meetingDTO.MeetingDetailResponse
	if err := c.do(ctx, http.MethodGet, "/v1/meetings/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IngestAnalysis posts analysis text to a meeting; the server extracts and
// creates the records.
func (c *Client) IngestAnalysis(ctx context.Context, meetingID, analysis string) (*meetingDTO.IngestResponse, error) {
	var resp meetingDTO.IngestResponse
	path := fmt.Sprintf("/v1/meetings/%s/analysis", url.PathEscape(meetingID))
	if err := c.do(ctx, http.MethodPost, path, meetingDTO.AnalysisRequest{Analysis: analysis}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Extract previews what the server would extract from analysis.
func (c *Client) Extract(ctx context.Context, analysis string) (*meetingDTO.ExtractResponse, error) {
	var resp meetingDTO.ExtractResponse
	if err := c.do(ctx, http.MethodPost, "/v1/analysis/extract", meetingDTO.AnalysisRequest{Analysis: analysis}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks lists tasks, optionally for one meeting.
func (c *Client) ListTasks(ctx context.Context, meetingID string) ([]*taskDTO.TaskResponse, error) {
	path := "/v1/tasks"
	if meetingID != "" {
		path += "?meeting_id=" + url.QueryEscape(meetingID)
	}
	var resp []*taskDTO.TaskResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateTask implements submission.TaskSink.
func (c *Client) CreateTask(ctx context.Context, draft submission.TaskDraft) (string, error) {
	req := taskDTO.CreateTaskRequest{
		Person:   draft.Person,
		Task:     draft.Task,
		Deadline: draft.Deadline,
		Status:   draft.Status,
		Notes:    draft.Notes,
		Source:   draft.Source,
	}
	if draft.MeetingID != "" {
		req.MeetingID = &draft.MeetingID
	}

	var resp taskDTO.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/v1/tasks", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ListConflicts lists conflicts, optionally for one meeting.
func (c *Client) ListConflicts(ctx context.Context, meetingID string) ([]*conflictDTO.ConflictResponse, error) {
	path := "/v1/conflicts"
	if meetingID != "" {
		path += "?meeting_id=" + url.QueryEscape(meetingID)
	}
	var resp []*conflictDTO.ConflictResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateConflict implements submission.ConflictSink.
func (c *Client) CreateConflict(ctx context.Context, draft submission.ConflictDraft) (string, error) {
	req := conflictDTO.CreateConflictRequest{
		Issue:      draft.Issue,
		RaisedBy:   draft.RaisedBy,
		Resolution: draft.Resolution,
		Severity:   draft.Severity,
		Source:     draft.Source,
	}
	if draft.MeetingID != "" {
		req.MeetingID = &draft.MeetingID
	}

	var resp conflictDTO.ConflictResponse
	if err := c.do(ctx, http.MethodPost, "/v1/conflicts", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

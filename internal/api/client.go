package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"tasklane/internal/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "TASKLANE_HTTP_TIMEOUT"
	tokenEnvKey        = "TASKLANE_TOKEN"
)

// Client is a simple HTTP client for the tasklane API.
type Client struct {
	baseURL   string
	http      *http.Client
	authToken string
}

// NewClient creates a new API client. The session token is read from
// TASKLANE_TOKEN and can be replaced with SetToken.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: httpTimeoutFromEnv()},
		authToken: strings.TrimSpace(os.Getenv(tokenEnvKey)),
	}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.authToken = strings.TrimSpace(token)
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) Login(ctx context.Context, userID, password string) (AuthLoginResponse, error) {
	var resp AuthLoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", nil, AuthLoginRequest{UserID: userID, Password: password}, &resp)
	return resp, err
}

func (c *Client) CreateProject(ctx context.Context, req ProjectCreateRequest) (models.Project, error) {
	var resp models.Project
	err := c.do(ctx, http.MethodPost, "/v1/projects", nil, req, &resp)
	return resp, err
}

func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	var resp models.Project
	err := c.do(ctx, http.MethodGet, projectPath(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) ListMembers(ctx context.Context, projectID string) ([]models.Membership, error) {
	var resp []models.Membership
	err := c.do(ctx, http.MethodGet, projectPath(projectID)+"/members", nil, nil, &resp)
	return resp, err
}

func (c *Client) InviteMember(ctx context.Context, projectID string, req MemberInviteRequest) (MembershipResponse, error) {
	var resp MembershipResponse
	err := c.do(ctx, http.MethodPost, projectPath(projectID)+"/members", nil, req, &resp)
	return resp, err
}

func (c *Client) UpdateMemberRoles(ctx context.Context, projectID, userID string, req MemberRolesRequest) (MembershipResponse, error) {
	var resp MembershipResponse
	err := c.do(ctx, http.MethodPatch, memberPath(projectID, userID), nil, req, &resp)
	return resp, err
}

func (c *Client) RemoveMember(ctx context.Context, projectID, userID string) (MembershipResponse, error) {
	var resp MembershipResponse
	err := c.do(ctx, http.MethodDelete, memberPath(projectID, userID), nil, nil, &resp)
	return resp, err
}

func (c *Client) ListProjectTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	var resp []models.Task
	err := c.do(ctx, http.MethodGet, projectPath(projectID)+"/tasks", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateTask(ctx context.Context, projectID string, req TaskCreateRequest) (TaskActivityResponse, error) {
	var resp TaskActivityResponse
	err := c.do(ctx, http.MethodPost, projectPath(projectID)+"/tasks", nil, req, &resp)
	return resp, err
}

func (c *Client) GetTask(ctx context.Context, id string) (models.Task, error) {
	var resp models.Task
	err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) AdvanceTask(ctx context.Context, id string, req AdvanceRequest) (TaskActivityResponse, error) {
	var resp TaskActivityResponse
	err := c.do(ctx, http.MethodPost, taskPath(id)+"/advance", nil, req, &resp)
	return resp, err
}

func (c *Client) UpdateProgress(ctx context.Context, id string, percentDone int) (TaskActivityResponse, error) {
	var resp TaskActivityResponse
	err := c.do(ctx, http.MethodPut, taskPath(id)+"/progress", nil, ProgressRequest{PercentDone: &percentDone}, &resp)
	return resp, err
}

func (c *Client) CreateSubtask(ctx context.Context, parentID string, req TaskCreateRequest) (TaskActivityResponse, error) {
	var resp TaskActivityResponse
	err := c.do(ctx, http.MethodPost, taskPath(parentID)+"/subtasks", nil, req, &resp)
	return resp, err
}

// ListSubtasks lists one page of subtasks. query accepts status, type,
// priority, and assignee (repeatable or comma separated) plus page and page_size.
func (c *Client) ListSubtasks(ctx context.Context, parentID string, query url.Values) (SubtaskListResponse, error) {
	var resp SubtaskListResponse
	err := c.do(ctx, http.MethodGet, taskPath(parentID)+"/subtasks", query, nil, &resp)
	return resp, err
}

func (c *Client) AddComment(ctx context.Context, taskID, body string) (TaskActivityResponse, error) {
	var resp TaskActivityResponse
	err := c.do(ctx, http.MethodPost, taskPath(taskID)+"/comments", nil, CommentRequest{Body: body}, &resp)
	return resp, err
}

func (c *Client) ListComments(ctx context.Context, taskID string) ([]models.Comment, error) {
	var resp []models.Comment
	err := c.do(ctx, http.MethodGet, taskPath(taskID)+"/comments", nil, nil, &resp)
	return resp, err
}

func (c *Client) ListHistory(ctx context.Context, taskID string) ([]models.HistoryEntry, error) {
	var resp []models.HistoryEntry
	err := c.do(ctx, http.MethodGet, taskPath(taskID)+"/history", nil, nil, &resp)
	return resp, err
}

func (c *Client) ListNotifications(ctx context.Context, query url.Values) (NotificationListResponse, error) {
	var resp NotificationListResponse
	err := c.do(ctx, http.MethodGet, "/v1/notifications", query, nil, &resp)
	return resp, err
}

func projectPath(id string) string {
	return "/v1/projects/" + url.PathEscape(id)
}

func memberPath(projectID, userID string) string {
	return projectPath(projectID) + "/members/" + url.PathEscape(userID)
}

func taskPath(id string) string {
	return "/v1/tasks/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Code
		apiErr.ErrorCode = errResp.ErrorCode
		apiErr.Message = errResp.Error
		return apiErr
	}
	apiErr.Message = "api error: " + resp.Status
	return apiErr
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.authToken == "" || req == nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}

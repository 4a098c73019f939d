package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklane/internal/api"
	"tasklane/internal/config"
	"tasklane/internal/models"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   []byte
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{routes: map[string]func(http.ResponseWriter, *http.Request){}}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
			return
		}
		var body bytes.Buffer
		_, _ = body.ReadFrom(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   body.Bytes(),
		})
		handler, ok := f.routes[r.Method+" "+r.URL.Path]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found","code":"not_found","error_code":2001}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(ts.Close)
	return f, ts
}

func (f *fakeAPI) handle(route string, status int, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func (f *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no API requests recorded")
	return f.requests[len(f.requests)-1]
}

// runCLI executes the root command and returns captured stdout and stderr.
func runCLI(t *testing.T, apiURL string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("TASKLANE_TOKEN", "test-token")
	t.Setenv(logLevelEnvKey, "")

	var outBuf, errBuf bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &outBuf, &errBuf
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })

	cfg := config.Default()
	cfg.APIURL = apiURL
	cfg.DBPath = "/definitely/not/used.db"

	cmd := newRootCmd(&cfg)
	cmd.SetArgs(args)
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	err := cmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func sampleTask() models.Task {
	return models.Task{
		ID:          "tk-abc123",
		ProjectID:   "pj-000001",
		Title:       "Ship login",
		Type:        models.TypeFeature,
		Status:      models.StatusResolved,
		Priority:    models.PriorityHigh,
		AssignedTo:  []string{"bob"},
		PercentDone: 40,
		GitCommitID: "abc1234",
	}
}

func TestTaskAdvanceSendsCommitAndReportsWarnings(t *testing.T) {
	fake, ts := newFakeAPI(t)
	fake.handle("POST /v1/tasks/tk-abc123/advance", http.StatusOK, api.TaskActivityResponse{
		Task:          sampleTask(),
		Notifications: []models.Notification{{UserID: "bob"}},
		Warnings:      []api.Warning{{Step: "audit", Error: "disk full"}},
	})

	out, errOut, err := runCLI(t, ts.URL, "task", "advance", "tk-abc123", "--commit", "https://git.example.com/r/commit/abc1234")
	require.NoError(t, err)

	req := fake.last(t)
	assert.Equal(t, "Bearer test-token", req.auth)
	var sent api.AdvanceRequest
	require.NoError(t, json.Unmarshal(req.body, &sent))
	assert.Equal(t, "https://git.example.com/r/commit/abc1234", sent.Commit)

	assert.Contains(t, out, "tk-abc123 [resolved] [feature/high]  40% - Ship login @bob")
	assert.Contains(t, out, "notified: bob")
	assert.Contains(t, errOut, "warning: audit step failed: disk full")
}

func TestTaskCreateBuildsRequestFromFlags(t *testing.T) {
	fake, ts := newFakeAPI(t)
	fake.handle("POST /v1/projects/pj-000001/tasks", http.StatusCreated, api.TaskActivityResponse{Task: sampleTask()})

	_, _, err := runCLI(t, ts.URL, "task", "create", "pj-000001", "Ship", "login",
		"--type", "bug", "--priority", "high", "--assign", "bob,carol", "--due", "2026-12-01",
		"--estimate", "2.5", "--tag", "auth", "--media", "https://cdn.example.com/shot.PNG|image")
	require.NoError(t, err)

	var sent api.TaskCreateRequest
	require.NoError(t, json.Unmarshal(fake.last(t).body, &sent))
	assert.Equal(t, "Ship login", sent.Title)
	assert.Equal(t, "bug", sent.Type)
	assert.Equal(t, "high", sent.Priority)
	assert.Equal(t, []string{"bob", "carol"}, sent.AssignedTo)
	assert.Equal(t, "2026-12-01", sent.DueDate)
	require.NotNil(t, sent.EstimatedTime)
	assert.InDelta(t, 2.5, *sent.EstimatedTime, 0.0001)
	require.Len(t, sent.MediaAttachments, 1)
	assert.Equal(t, "png", sent.MediaAttachments[0].Format)
}

func TestTaskCreateOmitsUnsetEstimate(t *testing.T) {
	fake, ts := newFakeAPI(t)
	fake.handle("POST /v1/projects/pj-000001/tasks", http.StatusCreated, api.TaskActivityResponse{Task: sampleTask()})

	_, _, err := runCLI(t, ts.URL, "task", "create", "pj-000001", "Ship")
	require.NoError(t, err)
	assert.NotContains(t, string(fake.last(t).body), "estimated_time")
}

func TestSubtaskListEncodesFacets(t *testing.T) {
	fake, ts := newFakeAPI(t)
	fake.handle("GET /v1/tasks/tk-abc123/subtasks", http.StatusOK, api.SubtaskListResponse{
		Items: []models.Task{sampleTask()}, Page: 2, PageSize: 1, TotalItems: 2, TotalPages: 2,
	})

	out, _, err := runCLI(t, ts.URL, "subtask", "list", "tk-abc123", "--status", "todo,in_progress", "--assignee", "me", "--page", "2", "--page-size", "1")
	require.NoError(t, err)

	query := fake.last(t).query
	for _, part := range []string{"status=todo", "status=in_progress", "assignee=me", "page=2", "page_size=1"} {
		assert.Contains(t, query, part)
	}
	assert.Contains(t, out, "page 2/2 (2 subtasks)")
}

func TestStructuredOutputFormats(t *testing.T) {
	fake, ts := newFakeAPI(t)
	fake.handle("GET /v1/tasks/tk-abc123", http.StatusOK, sampleTask())

	out, _, err := runCLI(t, ts.URL, "task", "show", "tk-abc123", "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id: tk-abc123")
	assert.Contains(t, out, "git_commit_id: abc1234")

	out, _, err = runCLI(t, ts.URL, "task", "show", "tk-abc123", "-o", "json")
	require.NoError(t, err)
	var decoded models.Task
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "tk-abc123", decoded.ID)

	_, _, err = runCLI(t, ts.URL, "task", "show", "tk-abc123", "-o", "xml")
	require.Error(t, err)
}

func TestProjectInviteSendsRoles(t *testing.T) {
	fake, ts := newFakeAPI(t)
	fake.handle("POST /v1/projects/pj-000001/members", http.StatusCreated, api.MembershipResponse{
		Membership: models.Membership{ProjectID: "pj-000001", UserID: "bob", Roles: []models.Role{models.RoleDev, models.RoleTester}},
	})

	out, _, err := runCLI(t, ts.URL, "project", "invite", "pj-000001", "bob", "--role", "dev", "--role", "tester")
	require.NoError(t, err)

	var sent api.MemberInviteRequest
	require.NoError(t, json.Unmarshal(fake.last(t).body, &sent))
	assert.Equal(t, "bob", sent.UserID)
	assert.Equal(t, []string{"dev", "tester"}, sent.Roles)
	assert.Equal(t, "invited bob in pj-000001 (dev,tester)\n", out)
}

func TestAPIErrorsSurfaceWithGuidance(t *testing.T) {
	fake, ts := newFakeAPI(t)
	fake.handle("POST /v1/tasks/tk-abc123/advance", http.StatusForbidden, api.ErrorResponse{
		Error: "bob may not advance task tk-abc123", Code: "forbidden", ErrorCode: 3002,
	})

	_, _, err := runCLI(t, ts.URL, "task", "advance", "tk-abc123")
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusForbidden))
	lines := formatCLIError(err)
	assert.Contains(t, lines, "hint: your project roles do not allow this; ask a project admin.")
}

func TestTaskProgressValidatesLocally(t *testing.T) {
	_, ts := newFakeAPI(t)
	_, _, err := runCLI(t, ts.URL, "task", "progress", "tk-abc123", "150")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "between 0 and 100"))
}

func TestParseMediaFlag(t *testing.T) {
	got, err := parseMediaFlag("https://cdn.example.com/a/clip.mp4|video")
	require.NoError(t, err)
	assert.Equal(t, models.MediaAttachment{URL: "https://cdn.example.com/a/clip.mp4", ResourceType: "video", Format: "mp4"}, got)

	got, err = parseMediaFlag("https://cdn.example.com/raw")
	require.NoError(t, err)
	assert.Equal(t, "image", got.ResourceType)
	assert.Empty(t, got.Format)

	_, err = parseMediaFlag(" |image")
	require.Error(t, err)
}

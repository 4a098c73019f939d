package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tasklane/internal/api"
	internalauth "tasklane/internal/auth"
	"tasklane/internal/models"
	"tasklane/internal/store"
)

const testPassword = "correct-horse"

type testEnv struct {
	t       *testing.T
	srv     *Server
	store   *store.Store
	handler http.Handler
}

func newTestEnv(t *testing.T, users ...string) *testEnv {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	hash, err := internalauth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	for _, id := range users {
		if _, err := st.CreateUser(context.Background(), id, strings.ToUpper(id[:1])+id[1:], hash, now); err != nil {
			t.Fatalf("create user %s: %v", id, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New("127.0.0.1:0", st, logger, Options{})
	return &testEnv{t: t, srv: srv, store: st, handler: srv.Handler()}
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		switch v := body.(type) {
		case string:
			reader = strings.NewReader(v)
		default:
			data, err := json.Marshal(v)
			if err != nil {
				e.t.Fatalf("marshal body: %v", err)
			}
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(userID string) string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/v1/auth/login", "", api.AuthLoginRequest{UserID: userID, Password: testPassword})
	if w.Code != http.StatusOK {
		e.t.Fatalf("login %s: expected 200, got %d: %s", userID, w.Code, w.Body.String())
	}
	var resp api.AuthLoginResponse
	decodeBody(e.t, w, &resp)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status, code int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	var resp api.ErrorResponse
	decodeBody(t, w, &resp)
	if resp.ErrorCode != code {
		t.Fatalf("expected error_code %d, got %d (%s)", code, resp.ErrorCode, resp.Error)
	}
}

func TestListenAddrRemoteGuard(t *testing.T) {
	t.Run("allows loopback", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("http://127.0.0.1:7433")
		if err != nil {
			t.Fatalf("expected loopback to be allowed, got error: %v", err)
		}
		if addr != "127.0.0.1:7433" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("blocks non-loopback by default", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		if _, err := ListenAddr("http://0.0.0.0:7433"); err == nil {
			t.Fatal("expected error for non-loopback listen host")
		}
	})

	t.Run("allows non-loopback when explicitly enabled", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "true")
		addr, err := ListenAddr("http://0.0.0.0:7433")
		if err != nil {
			t.Fatalf("expected allow-remote to permit host, got error: %v", err)
		}
		if addr != "0.0.0.0:7433" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var health api.HealthResponse
	decodeBody(t, w, &health)
	if health.Status != "ok" {
		t.Fatalf("unexpected health status %q", health.Status)
	}

	// Drive one request through the logging middleware so it shows up.
	env.do(http.MethodGet, "/v1/notifications", "", nil)

	w = env.do(http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tasklane_http_requests_total") {
		t.Fatalf("metrics output missing request counter:\n%s", w.Body.String())
	}
}

func TestAuthedRoutesRejectMissingOrBadToken(t *testing.T) {
	env := newTestEnv(t, "alice")

	expectError(t, env.do(http.MethodGet, "/v1/notifications", "", nil), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectError(t, env.do(http.MethodGet, "/v1/notifications", "not-a-session", nil), http.StatusUnauthorized, ErrCodeUnauthorized)

	token := env.login("alice")
	w := env.do(http.MethodGet, "/v1/notifications", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, "alice", "dave")

	t.Run("wrong password", func(t *testing.T) {
		w := env.do(http.MethodPost, "/v1/auth/login", "", api.AuthLoginRequest{UserID: "alice", Password: "nope-nope"})
		expectError(t, w, http.StatusUnauthorized, ErrCodeUnauthorized)
	})

	t.Run("missing password", func(t *testing.T) {
		w := env.do(http.MethodPost, "/v1/auth/login", "", api.AuthLoginRequest{UserID: "alice"})
		expectError(t, w, http.StatusBadRequest, ErrCodeMissingRequired)
	})

	t.Run("success", func(t *testing.T) {
		w := env.do(http.MethodPost, "/v1/auth/login", "", api.AuthLoginRequest{UserID: "Alice", Password: testPassword})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp api.AuthLoginResponse
		decodeBody(t, w, &resp)
		if resp.Token == "" || resp.UserID != "alice" || resp.DisplayName != "Alice" {
			t.Fatalf("unexpected login response: %+v", resp)
		}
		if _, err := time.Parse(time.RFC3339, resp.ExpiresAt); err != nil {
			t.Fatalf("expires_at not RFC3339: %q", resp.ExpiresAt)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		token := env.login("dave")
		if _, err := env.store.SetUserDisabled(context.Background(), "dave", true, time.Now().UTC()); err != nil {
			t.Fatalf("disable user: %v", err)
		}
		expectError(t, env.do(http.MethodGet, "/v1/notifications", token, nil), http.StatusUnauthorized, ErrCodeUnauthorized)
		w := env.do(http.MethodPost, "/v1/auth/login", "", api.AuthLoginRequest{UserID: "dave", Password: testPassword})
		expectError(t, w, http.StatusUnauthorized, ErrCodeUnauthorized)
	})
}

func TestLoginRateLimited(t *testing.T) {
	env := newTestEnv(t, "alice")

	for i := 0; i < loginMaxFailures; i++ {
		w := env.do(http.MethodPost, "/v1/auth/login", "", api.AuthLoginRequest{UserID: "alice", Password: "wrong-pass"})
		expectError(t, w, http.StatusUnauthorized, ErrCodeUnauthorized)
	}
	w := env.do(http.MethodPost, "/v1/auth/login", "", api.AuthLoginRequest{UserID: "alice", Password: testPassword})
	expectError(t, w, http.StatusTooManyRequests, ErrCodeResourceExhausted)
}

func TestLoginRateLimiterWindow(t *testing.T) {
	limiter := newLoginRateLimiter(2, time.Minute, 10*time.Minute)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	limiter.Fail("k", start)
	// Outside the window the first failure no longer counts.
	limiter.Fail("k", start.Add(2*time.Minute))
	if !limiter.Allow("k", start.Add(2*time.Minute)) {
		t.Fatal("expected key to be allowed after window reset")
	}

	limiter.Fail("k", start.Add(3*time.Minute))
	if limiter.Allow("k", start.Add(3*time.Minute)) {
		t.Fatal("expected key to be blocked after reaching max failures")
	}
	if !limiter.Allow("k", start.Add(14*time.Minute)) {
		t.Fatal("expected block to expire")
	}

	limiter.Fail("k", start.Add(15*time.Minute))
	limiter.Succeed("k")
	limiter.Fail("k", start.Add(15*time.Minute))
	if !limiter.Allow("k", start.Add(15*time.Minute)) {
		t.Fatal("expected success to clear failures")
	}

	var disabled *loginRateLimiter
	if !disabled.Allow("k", start) {
		t.Fatal("nil limiter must allow")
	}
}

type projectFixture struct {
	env       *testEnv
	projectID string
	tokens    map[string]string
}

// newProjectFixture logs everyone in, has alice create a project, and invites
// bob as dev and tina as tester. mallory stays outside the project.
func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	env := newTestEnv(t, "alice", "bob", "tina", "mallory")
	f := &projectFixture{env: env, tokens: map[string]string{}}
	for _, id := range []string{"alice", "bob", "tina", "mallory"} {
		f.tokens[id] = env.login(id)
	}

	w := env.do(http.MethodPost, "/v1/projects", f.tokens["alice"], api.ProjectCreateRequest{Name: "Apollo"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var project models.Project
	decodeBody(t, w, &project)
	f.projectID = project.ID

	for user, role := range map[string]string{"bob": "dev", "tina": "tester"} {
		w := env.do(http.MethodPost, "/v1/projects/"+f.projectID+"/members", f.tokens["alice"], api.MemberInviteRequest{UserID: user, Roles: []string{role}})
		if w.Code != http.StatusCreated {
			t.Fatalf("invite %s: expected 201, got %d: %s", user, w.Code, w.Body.String())
		}
	}
	return f
}

func (f *projectFixture) createTask(t *testing.T, actor string, req api.TaskCreateRequest) api.TaskActivityResponse {
	t.Helper()
	w := f.env.do(http.MethodPost, "/v1/projects/"+f.projectID+"/tasks", f.tokens[actor], req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp api.TaskActivityResponse
	decodeBody(t, w, &resp)
	return resp
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	f := newProjectFixture(t)
	env := f.env

	created := f.createTask(t, "alice", api.TaskCreateRequest{Title: "Ship login", AssignedTo: []string{"bob"}, DueDate: "2026-12-01"})
	task := created.Task
	if task.Status != models.StatusTodo || task.Type != models.TypeFeature || task.Priority != models.PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if len(created.Notifications) != 1 || created.Notifications[0].UserID != "bob" {
		t.Fatalf("expected bob to be notified, got %+v", created.Notifications)
	}

	// bob (assignee, dev) starts the task.
	w := env.do(http.MethodPost, "/v1/tasks/"+task.ID+"/advance", f.tokens["bob"], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("advance: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var advanced api.TaskActivityResponse
	decodeBody(t, w, &advanced)
	if advanced.Task.Status != models.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", advanced.Task.Status)
	}
	if len(advanced.Notifications) != 0 {
		t.Fatalf("actor must not be notified, got %+v", advanced.Notifications)
	}
	if advanced.Warnings == nil || len(advanced.Warnings) != 0 {
		t.Fatalf("expected empty warnings, got %+v", advanced.Warnings)
	}

	// tina cannot resolve: that needs dev.
	w = env.do(http.MethodPost, "/v1/tasks/"+task.ID+"/advance", f.tokens["tina"], api.AdvanceRequest{})
	expectError(t, w, http.StatusForbidden, ErrCodeForbidden)

	// bob resolves with a commit URL.
	w = env.do(http.MethodPost, "/v1/tasks/"+task.ID+"/advance", f.tokens["bob"], api.AdvanceRequest{Commit: "https://example.com/repo/commit/abc1234def"})
	if w.Code != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, w, &advanced)
	if advanced.Task.Status != models.StatusResolved || advanced.Task.GitCommitID != "abc1234def" {
		t.Fatalf("unexpected resolved task: %+v", advanced.Task)
	}

	// tina closes.
	w = env.do(http.MethodPost, "/v1/tasks/"+task.ID+"/advance", f.tokens["tina"], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, w, &advanced)
	if advanced.Task.Status != models.StatusClosed {
		t.Fatalf("expected closed, got %s", advanced.Task.Status)
	}
	if len(advanced.Notifications) != 1 || advanced.Notifications[0].UserID != "bob" {
		t.Fatalf("expected bob to be notified of close, got %+v", advanced.Notifications)
	}

	w = env.do(http.MethodGet, "/v1/tasks/"+task.ID+"/history", f.tokens["alice"], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}
	var history []models.HistoryEntry
	decodeBody(t, w, &history)
	if len(history) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(history))
	}

	w = env.do(http.MethodGet, "/v1/notifications?status=unread", f.tokens["bob"], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("notifications: expected 200, got %d", w.Code)
	}
	var inbox api.NotificationListResponse
	decodeBody(t, w, &inbox)
	if len(inbox.Notifications) != 2 {
		t.Fatalf("expected 2 notifications for bob, got %d", len(inbox.Notifications))
	}
	for _, n := range inbox.Notifications {
		if n.UserID != "bob" {
			t.Fatalf("notification for another user leaked: %+v", n)
		}
	}
}

func TestSubtasksProgressAndComments(t *testing.T) {
	f := newProjectFixture(t)
	env := f.env

	parent := f.createTask(t, "alice", api.TaskCreateRequest{Title: "Epic"}).Task

	var children []models.Task
	for _, title := range []string{"one", "two"} {
		w := env.do(http.MethodPost, "/v1/tasks/"+parent.ID+"/subtasks", f.tokens["bob"], api.TaskCreateRequest{Title: title, AssignedTo: []string{"bob"}, Type: "bug"})
		if w.Code != http.StatusCreated {
			t.Fatalf("create subtask: expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp api.TaskActivityResponse
		decodeBody(t, w, &resp)
		if resp.Task.ParentTaskID != parent.ID {
			t.Fatalf("subtask parent mismatch: %+v", resp.Task)
		}
		children = append(children, resp.Task)
	}

	w := env.do(http.MethodPut, "/v1/tasks/"+children[0].ID+"/progress", f.tokens["bob"], api.ProgressRequest{PercentDone: intPtr(100)})
	if w.Code != http.StatusOK {
		t.Fatalf("progress: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var progressed api.TaskActivityResponse
	decodeBody(t, w, &progressed)
	if progressed.Propagation == nil || progressed.Propagation.ParentID != parent.ID || progressed.Propagation.New != 50 {
		t.Fatalf("expected parent to move to 50%%, got %+v", progressed.Propagation)
	}

	w = env.do(http.MethodPut, "/v1/tasks/"+children[0].ID+"/progress", f.tokens["bob"], api.ProgressRequest{PercentDone: intPtr(101)})
	expectError(t, w, http.StatusBadRequest, ErrCodeInvalidPercent)
	w = env.do(http.MethodPut, "/v1/tasks/"+children[0].ID+"/progress", f.tokens["bob"], map[string]any{})
	expectError(t, w, http.StatusBadRequest, ErrCodeMissingRequired)

	w = env.do(http.MethodGet, "/v1/tasks/"+parent.ID+"/subtasks?type=bug&page_size=1&page=2", f.tokens["alice"], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list subtasks: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var page api.SubtaskListResponse
	decodeBody(t, w, &page)
	if page.TotalItems != 2 || page.TotalPages != 2 || page.Page != 2 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	w = env.do(http.MethodGet, "/v1/tasks/"+parent.ID+"/subtasks?page=9223372036854775807", f.tokens["alice"], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list far page: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var farPage api.SubtaskListResponse
	decodeBody(t, w, &farPage)
	if len(farPage.Items) != 0 || farPage.TotalPages != 1 {
		t.Fatalf("unexpected far page: %+v", farPage)
	}

	w = env.do(http.MethodGet, "/v1/tasks/"+parent.ID+"/subtasks?status=bogus", f.tokens["alice"], nil)
	expectError(t, w, http.StatusBadRequest, ErrCodeInvalidQuery)

	w = env.do(http.MethodPost, "/v1/tasks/"+parent.ID+"/comments", f.tokens["tina"], api.CommentRequest{Body: "looks good"})
	if w.Code != http.StatusCreated {
		t.Fatalf("comment: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var commented api.TaskActivityResponse
	decodeBody(t, w, &commented)
	if commented.Comment == nil || commented.Comment.Body != "looks good" {
		t.Fatalf("unexpected comment: %+v", commented.Comment)
	}

	w = env.do(http.MethodGet, "/v1/tasks/"+parent.ID+"/comments", f.tokens["bob"], nil)
	var comments []models.Comment
	decodeBody(t, w, &comments)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
}

func TestMembershipOverHTTP(t *testing.T) {
	f := newProjectFixture(t)
	env := f.env
	base := "/v1/projects/" + f.projectID + "/members"

	w := env.do(http.MethodPatch, base+"/bob", f.tokens["alice"], api.MemberRolesRequest{Roles: []string{"dev", "tester"}})
	if w.Code != http.StatusOK {
		t.Fatalf("update roles: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated api.MembershipResponse
	decodeBody(t, w, &updated)
	if len(updated.Membership.Roles) != 2 {
		t.Fatalf("expected two roles, got %+v", updated.Membership.Roles)
	}

	w = env.do(http.MethodPatch, base+"/bob", f.tokens["alice"], api.MemberRolesRequest{Roles: []string{"wizard"}})
	expectError(t, w, http.StatusBadRequest, ErrCodeInvalidRole)

	w = env.do(http.MethodPatch, base+"/tina", f.tokens["bob"], api.MemberRolesRequest{Roles: []string{"dev"}})
	expectError(t, w, http.StatusForbidden, ErrCodeForbidden)

	w = env.do(http.MethodDelete, base+"/tina", f.tokens["alice"], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove member: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodGet, base, f.tokens["alice"], nil)
	var members []models.Membership
	decodeBody(t, w, &members)
	if len(members) != 2 {
		t.Fatalf("expected alice and bob to remain, got %+v", members)
	}

	// tina is no longer a member and cannot see the project.
	w = env.do(http.MethodGet, "/v1/projects/"+f.projectID, f.tokens["tina"], nil)
	expectError(t, w, http.StatusNotFound, ErrCodeNotFound)
}

func TestRequestValidationErrors(t *testing.T) {
	f := newProjectFixture(t)
	env := f.env
	task := f.createTask(t, "alice", api.TaskCreateRequest{Title: "Audit"}).Task

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		code   int
	}{
		{"bad task id", http.MethodGet, "/v1/tasks/nope", f.tokens["alice"], nil, http.StatusBadRequest, ErrCodeInvalidID},
		{"bad project id", http.MethodGet, "/v1/projects/xyz/tasks", f.tokens["alice"], nil, http.StatusBadRequest, ErrCodeInvalidID},
		{"invalid json", http.MethodPost, "/v1/projects/" + f.projectID + "/tasks", f.tokens["alice"], "{", http.StatusBadRequest, ErrCodeInvalidJSON},
		{"invalid type", http.MethodPost, "/v1/projects/" + f.projectID + "/tasks", f.tokens["alice"], api.TaskCreateRequest{Title: "x", Type: "epic"}, http.StatusBadRequest, ErrCodeInvalidType},
		{"invalid priority", http.MethodPost, "/v1/projects/" + f.projectID + "/tasks", f.tokens["alice"], api.TaskCreateRequest{Title: "x", Priority: "urgent"}, http.StatusBadRequest, ErrCodeInvalidPriority},
		{"invalid due date", http.MethodPost, "/v1/projects/" + f.projectID + "/tasks", f.tokens["alice"], api.TaskCreateRequest{Title: "x", DueDate: "tomorrow"}, http.StatusBadRequest, ErrCodeInvalidDate},
		{"missing title", http.MethodPost, "/v1/projects/" + f.projectID + "/tasks", f.tokens["alice"], api.TaskCreateRequest{}, http.StatusBadRequest, ErrCodeInvalidArgument},
		{"unknown task", http.MethodGet, "/v1/tasks/tk-zzzzzz", f.tokens["alice"], nil, http.StatusNotFound, ErrCodeNotFound},
		{"non-member task", http.MethodGet, "/v1/tasks/" + task.ID, f.tokens["mallory"], nil, http.StatusNotFound, ErrCodeNotFound},
		{"non-member advance", http.MethodPost, "/v1/tasks/" + task.ID + "/advance", f.tokens["mallory"], nil, http.StatusNotFound, ErrCodeNotFound},
		{"bad notification status", http.MethodGet, "/v1/notifications?status=archived", f.tokens["alice"], nil, http.StatusBadRequest, ErrCodeInvalidQuery},
		{"bad limit", http.MethodGet, "/v1/notifications?limit=x", f.tokens["alice"], nil, http.StatusBadRequest, ErrCodeInvalidQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectError(t, env.do(tc.method, tc.path, tc.token, tc.body), tc.status, tc.code)
		})
	}
}

func TestActivityErrorMapping(t *testing.T) {
	w := httptest.NewRecorder()
	srv := &Server{}
	srv.writeServiceError(w, httptest.NewRequest(http.MethodGet, "/", nil), io.ErrUnexpectedEOF)
	expectError(t, w, http.StatusInternalServerError, ErrCodeInternal)

	var resp api.ErrorResponse
	decodeBody(t, w, &resp)
	if resp.Error != "internal error" {
		t.Fatalf("expected 5xx message to be hidden, got %q", resp.Error)
	}
}

func intPtr(v int) *int { return &v }

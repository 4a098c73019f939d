package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPTimeoutFromEnv(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "")
		if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
			t.Fatalf("expected default timeout %v, got %v", defaultHTTPTimeout, got)
		}
	})

	t.Run("duration format", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "45s")
		if got := httpTimeoutFromEnv(); got != 45*time.Second {
			t.Fatalf("expected 45s timeout, got %v", got)
		}
	})

	t.Run("integer seconds", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "25")
		if got := httpTimeoutFromEnv(); got != 25*time.Second {
			t.Fatalf("expected 25s timeout, got %v", got)
		}
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "invalid")
		if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
			t.Fatalf("expected default timeout %v, got %v", defaultHTTPTimeout, got)
		}
	})
}

func TestClientSendsBearerTokenAndDecodes(t *testing.T) {
	var gotAuth, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task":{"id":"tk-abc123","status":"resolved","git_commit_id":"1234567"},"history":[],"notifications":[],"warnings":[]}`))
	}))
	defer srv.Close()

	t.Setenv(tokenEnvKey, "")
	client := NewClient(srv.URL + "/")
	client.SetToken(" secret ")

	resp, err := client.AdvanceTask(context.Background(), "tk-abc123", AdvanceRequest{Commit: "https://x/commit/1234567"})
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPath != "POST /v1/tasks/tk-abc123/advance" {
		t.Fatalf("unexpected request %q", gotPath)
	}
	if !strings.Contains(gotBody, `"commit":"https://x/commit/1234567"`) {
		t.Fatalf("unexpected body %q", gotBody)
	}
	if resp.Task.GitCommitID != "1234567" {
		t.Fatalf("expected decoded commit id, got %q", resp.Task.GitCommitID)
	}
}

func TestClientDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"requires role tester","code":"forbidden","error_code":3002}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).AdvanceTask(context.Background(), "tk-abc123", AdvanceRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.ErrorCode != 3002 || apiErr.Code != "forbidden" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
	if err.Error() != "forbidden: requires role tester" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !IsStatus(err, http.StatusForbidden) || IsNotFound(err) {
		t.Fatal("status helpers disagree with the decoded status")
	}
}

func TestClientErrorWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetTask(context.Background(), "tk-zzzzzz")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

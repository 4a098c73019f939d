package store

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	t.Run("valid prefix", func(t *testing.T) {
		id, err := GenerateID(TaskIDPrefix, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(id) != 9 { // "tk-" + 6 chars
			t.Fatalf("expected length 9, got %d: %s", len(id), id)
		}
		if !strings.HasPrefix(id, "tk-") {
			t.Fatalf("expected prefix tk-, got %s", id)
		}
	})

	t.Run("empty prefix", func(t *testing.T) {
		if _, err := GenerateID("", nil); err == nil {
			t.Fatal("expected error for empty prefix")
		}
	})

	t.Run("retries on collision", func(t *testing.T) {
		calls := 0
		exists := func(id string) (bool, error) {
			calls++
			return calls < 3, nil
		}
		id, err := GenerateID(ProjectIDPrefix, exists)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if calls != 3 {
			t.Fatalf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		exists := func(id string) (bool, error) {
			return true, nil
		}
		if _, err := GenerateID(TaskIDPrefix, exists); err == nil {
			t.Fatal("expected error after max attempts")
		}
	})
}

func TestStoreGeneratesUnusedIDs(t *testing.T) {
	st := testStore(t)

	taskID, err := st.GenerateTaskID()
	if err != nil {
		t.Fatalf("generate task id: %v", err)
	}
	if !strings.HasPrefix(taskID, "tk-") {
		t.Fatalf("unexpected task id %q", taskID)
	}

	projectID, err := st.GenerateProjectID()
	if err != nil {
		t.Fatalf("generate project id: %v", err)
	}
	if !strings.HasPrefix(projectID, "pj-") {
		t.Fatalf("unexpected project id %q", projectID)
	}
}

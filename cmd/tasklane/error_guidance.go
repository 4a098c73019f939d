package main

import (
	"context"
	"errors"
	"net"

	"tasklane/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "unauthorized":
			lines = append(lines, "hint: log in with `tasklane login <user> --password-stdin` and export TASKLANE_TOKEN.")
		case "forbidden":
			lines = append(lines, "hint: your project roles do not allow this; ask a project admin.")
		case "not_found":
			lines = append(lines, "hint: check the id and that you are a member of the project.")
		case "resource_exhausted":
			lines = append(lines, "hint: too many attempts; retry shortly.")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify TASKLANE_API_URL points to a tasklane server.")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase TASKLANE_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure a tasklane server is running at TASKLANE_API_URL.",
			"hint: start local server manually with: tasklane srv",
			"hint: you can increase TASKLANE_HTTP_TIMEOUT for slower environments.",
		)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

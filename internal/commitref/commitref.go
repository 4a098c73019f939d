// Package commitref extracts version-control commit identifiers from free-form text.
package commitref

import (
	"regexp"
	"strings"
)

var (
	commitURLRegex  = regexp.MustCompile(`(?i)commit/([a-f0-9]{7,40})`)
	commitHashRegex = regexp.MustCompile(`(?i)^[a-f0-9]{7,40}$`)
)

// ExtractCommitID returns the commit id referenced by input, or "" when
// input holds neither a commit URL nor a bare 7-40 character hex hash.
func ExtractCommitID(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if match := commitURLRegex.FindStringSubmatch(trimmed); len(match) == 2 {
		return match[1]
	}
	if commitHashRegex.MatchString(trimmed) {
		return trimmed
	}
	return ""
}

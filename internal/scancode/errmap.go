package scancode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The error formats below are part of the contract with the external tool;
// the named groups must be preserved so classification can evolve without
// changing call sites.
var (
	unknownErrorRegex = regexp.MustCompile(`(?s)^(ERROR: for scanner: (?P<scanner>[a-z]+):\n)?` +
		`ERROR: Unknown error:\n.+\n(?P<error>\w+Error)(?:\n|:)(?P<message>.*) \(File: (?P<file>.+)\)$`)

	timeoutErrorRegex = regexp.MustCompile(`^(ERROR: for scanner: (?P<scanner>[a-z]+):\n)?` +
		`ERROR: Processing interrupted: timeout after (?P<timeout>\d+) seconds\. \(File: (?P<file>.+)\)$`)
)

// namedGroups maps the named groups of re to their submatch values.
func namedGroups(re *regexp.Regexp, match []string) map[string]string {
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}
	return groups
}

// mapUnknownErrors compacts raw unknown-error messages into one line per
// affected file. It returns the mapped issues, deduplicated by message text,
// and true if the list was non-empty and consisted solely of memory errors.
func mapUnknownErrors(issues []Issue) ([]Issue, bool) {
	if len(issues) == 0 {
		return issues, false
	}

	onlyMemoryErrors := true
	mapped := make([]Issue, 0, len(issues))

	for _, issue := range issues {
		match := unknownErrorRegex.FindStringSubmatch(issue.Message)
		if match == nil {
			onlyMemoryErrors = false
			mapped = append(mapped, issue)
			continue
		}

		groups := namedGroups(unknownErrorRegex, match)
		if groups["error"] == "MemoryError" {
			issue.Message = fmt.Sprintf("ERROR: MemoryError while scanning file '%s'.", groups["file"])
		} else {
			onlyMemoryErrors = false
			issue.Message = fmt.Sprintf("ERROR: %s while scanning file '%s' (%s).",
				groups["error"], groups["file"], strings.TrimSpace(groups["message"]))
		}
		mapped = append(mapped, issue)
	}

	return dedupeByMessage(mapped), onlyMemoryErrors
}

// mapTimeoutErrors compacts raw timeout messages into one line per affected
// file. Only timeouts matching the configured per-file timeout count as
// benign. It returns the mapped issues, deduplicated by message text, and
// true if every entry was such a timeout.
func mapTimeoutErrors(issues []Issue, timeout int) ([]Issue, bool) {
	if len(issues) == 0 {
		return issues, false
	}

	onlyTimeoutErrors := true
	mapped := make([]Issue, 0, len(issues))

	for _, issue := range issues {
		match := timeoutErrorRegex.FindStringSubmatch(issue.Message)
		if match != nil {
			groups := namedGroups(timeoutErrorRegex, match)
			if groups["timeout"] == strconv.Itoa(timeout) {
				issue.Message = fmt.Sprintf("ERROR: Timeout after %s seconds while scanning file '%s'.",
					groups["timeout"], groups["file"])
				mapped = append(mapped, issue)
				continue
			}
		}

		onlyTimeoutErrors = false
		mapped = append(mapped, issue)
	}

	return dedupeByMessage(mapped), onlyTimeoutErrors
}

// dedupeByMessage removes issues with duplicate message text, preserving the
// first occurrence.
func dedupeByMessage(issues []Issue) []Issue {
	seen := make(map[string]struct{}, len(issues))
	deduplicated := issues[:0]

	for _, issue := range issues {
		if _, exists := seen[issue.Message]; exists {
			continue
		}
		seen[issue.Message] = struct{}{}
		deduplicated = append(deduplicated, issue)
	}

	return deduplicated
}

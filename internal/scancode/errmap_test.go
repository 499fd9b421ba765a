package scancode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryErrorMessage(file string) string {
	return fmt.Sprintf("ERROR: Unknown error:\nTraceback (most recent call last):\n"+
		"  File \"src/scancode/scan.py\", line 123, in scan_file\nMemoryError\n (File: %s)", file)
}

func runtimeErrorMessage(file string) string {
	return fmt.Sprintf("ERROR: Unknown error:\nTraceback (most recent call last):\n"+
		"  File \"src/scancode/scan.py\", line 123, in scan_file\nRuntimeError: things went wrong (File: %s)", file)
}

func timeoutErrorMessage(timeout int, file string) string {
	return fmt.Sprintf("ERROR: Processing interrupted: timeout after %d seconds. (File: %s)", timeout, file)
}

func issuesOf(messages ...string) []Issue {
	issues := make([]Issue, 0, len(messages))
	for _, message := range messages {
		issues = append(issues, Issue{Source: ScannerName, Message: message, Severity: "error"})
	}
	return issues
}

func messagesOf(issues []Issue) []string {
	var messages []string
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}

func TestMapUnknownErrorsMemoryOnly(t *testing.T) {
	issues := issuesOf(memoryErrorMessage("x"), memoryErrorMessage("y"))

	mapped, onlyMemoryErrors := mapUnknownErrors(issues)

	assert.True(t, onlyMemoryErrors)
	assert.Equal(t, []string{
		"ERROR: MemoryError while scanning file 'x'.",
		"ERROR: MemoryError while scanning file 'y'.",
	}, messagesOf(mapped))
}

func TestMapUnknownErrorsWithScannerPrefix(t *testing.T) {
	message := "ERROR: for scanner: copyrights:\n" + memoryErrorMessage("pkg/deep/file.c")

	mapped, onlyMemoryErrors := mapUnknownErrors(issuesOf(message))

	assert.True(t, onlyMemoryErrors)
	assert.Equal(t, []string{"ERROR: MemoryError while scanning file 'pkg/deep/file.c'."}, messagesOf(mapped))
}

func TestMapUnknownErrorsOtherErrorsAreCompactedButNotBenign(t *testing.T) {
	mapped, onlyMemoryErrors := mapUnknownErrors(issuesOf(runtimeErrorMessage("r.c")))

	assert.False(t, onlyMemoryErrors)
	assert.Equal(t, []string{"ERROR: RuntimeError while scanning file 'r.c' (things went wrong)."}, messagesOf(mapped))
}

func TestMapUnknownErrorsNonMatchingEntryKept(t *testing.T) {
	issues := issuesOf(memoryErrorMessage("x"), "some unrelated failure (File: y)")

	mapped, onlyMemoryErrors := mapUnknownErrors(issues)

	assert.False(t, onlyMemoryErrors)
	assert.Equal(t, []string{
		"ERROR: MemoryError while scanning file 'x'.",
		"some unrelated failure (File: y)",
	}, messagesOf(mapped))
}

func TestMapUnknownErrorsEmptyListIsNotHomogeneous(t *testing.T) {
	mapped, onlyMemoryErrors := mapUnknownErrors(nil)

	assert.False(t, onlyMemoryErrors)
	assert.Empty(t, mapped)
}

func TestMapUnknownErrorsDeduplicatesByMessage(t *testing.T) {
	issues := issuesOf(memoryErrorMessage("x"), memoryErrorMessage("x"))

	mapped, onlyMemoryErrors := mapUnknownErrors(issues)

	assert.True(t, onlyMemoryErrors)
	assert.Equal(t, []string{"ERROR: MemoryError while scanning file 'x'."}, messagesOf(mapped))
}

func TestMapUnknownErrorsIsIdempotent(t *testing.T) {
	issues := issuesOf(memoryErrorMessage("x"), runtimeErrorMessage("r.c"))

	once, _ := mapUnknownErrors(issues)
	twice, _ := mapUnknownErrors(once)

	assert.Equal(t, once, twice)
}

func TestMapTimeoutErrors(t *testing.T) {
	tests := []struct {
		name         string
		messages     []string
		timeout      int
		wantMessages []string
		wantAll      bool
	}{
		{
			name:         "timeout only",
			messages:     []string{timeoutErrorMessage(300, "t.c"), timeoutErrorMessage(300, "u.c")},
			timeout:      300,
			wantMessages: []string{"ERROR: Timeout after 300 seconds while scanning file 't.c'.", "ERROR: Timeout after 300 seconds while scanning file 'u.c'."},
			wantAll:      true,
		},
		{
			name:         "scanner prefix",
			messages:     []string{"ERROR: for scanner: licenses:\n" + timeoutErrorMessage(300, "t.c")},
			timeout:      300,
			wantMessages: []string{"ERROR: Timeout after 300 seconds while scanning file 't.c'."},
			wantAll:      true,
		},
		{
			name:         "wrong timeout value does not count",
			messages:     []string{timeoutErrorMessage(60, "t.c")},
			timeout:      300,
			wantMessages: []string{timeoutErrorMessage(60, "t.c")},
			wantAll:      false,
		},
		{
			name:         "mixed entries",
			messages:     []string{timeoutErrorMessage(300, "t.c"), "something else entirely"},
			timeout:      300,
			wantMessages: []string{"ERROR: Timeout after 300 seconds while scanning file 't.c'.", "something else entirely"},
			wantAll:      false,
		},
		{
			name:         "duplicates collapse",
			messages:     []string{timeoutErrorMessage(300, "t.c"), timeoutErrorMessage(300, "t.c")},
			timeout:      300,
			wantMessages: []string{"ERROR: Timeout after 300 seconds while scanning file 't.c'."},
			wantAll:      true,
		},
		{
			name:         "empty list",
			messages:     nil,
			timeout:      300,
			wantMessages: nil,
			wantAll:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped, all := mapTimeoutErrors(issuesOf(tt.messages...), tt.timeout)

			assert.Equal(t, tt.wantAll, all)
			assert.Equal(t, tt.wantMessages, messagesOf(mapped))
		})
	}
}

// A mixed run of one valid timeout and one real error is homogeneous for
// neither mapper.
func TestMixedTimeoutAndRealErrorIsFatal(t *testing.T) {
	issues := issuesOf(timeoutErrorMessage(300, "t.c"), runtimeErrorMessage("r.c"))

	mapped, onlyMemoryErrors := mapUnknownErrors(issues)
	require.False(t, onlyMemoryErrors)

	_, onlyTimeoutErrors := mapTimeoutErrors(mapped, 300)
	assert.False(t, onlyTimeoutErrors)
}

package summaries

import (
	"errors"
	"strings"
)

// Stable error codes for failed runs, one per pipeline stage plus a
// catch-all for storage and wiring failures.
const (
	ErrorCodeExtraction    = "extraction_failed"
	ErrorCodeSummarization = "summarization_failed"
	ErrorCodeSheetAppend   = "sheet_append_failed"
	ErrorCodeInternal      = "internal"
)

// ErrNotFound is returned when a summary does not exist.
var ErrNotFound = errors.New("summary not found")

// ErrRunInProgress is returned when a pipeline run is already executing.
// Runs are single-flight: a second trigger is rejected, not queued.
var ErrRunInProgress = errors.New("a pipeline run is already in progress")

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

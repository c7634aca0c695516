package sheets

import (
	"context"
	"errors"
)

// TimestampLayout is the fixed format written into the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Row holds the five caller-supplied cells of one spreadsheet row. The
// timestamp column is computed by the appender at append time.
type Row struct {
	DocumentName     string
	DocumentLink     string
	ProblemStatement string
	Solutions        string
	ToSolve          string
}

// AppendResult describes where a row landed.
type AppendResult struct {
	SpreadsheetID  string
	WorksheetTitle string
	Timestamp      string
}

// Appender appends one row to the first worksheet of the target spreadsheet.
// Append is the only mutating operation; rows are never updated or removed,
// and no deduplication is performed.
type Appender interface {
	AppendRow(ctx context.Context, row Row) (AppendResult, error)
}

// ErrSpreadsheetNotFound means no spreadsheet with the configured display
// name is visible to the service account.
var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

// ErrNotConfigured is returned by the placeholder appender.
var ErrNotConfigured = errors.New("sheet appender not configured")

// PlaceholderAppender is a stub implementation used when no credentials are
// wired.
type PlaceholderAppender struct{}

// AppendRow returns ErrNotConfigured.
func (PlaceholderAppender) AppendRow(ctx context.Context, row Row) (AppendResult, error) {
	_ = ctx
	_ = row
	return AppendResult{}, ErrNotConfigured
}

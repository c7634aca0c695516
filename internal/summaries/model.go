package summaries

import "time"

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Progress checkpoints reported while a pipeline run advances.
const (
	ProgressExtracting  = 20
	ProgressSummarizing = 40
	ProgressParsing     = 60
	ProgressAppending   = 80
	ProgressDone        = 100
)

// Summary is the record of one pipeline run. The spreadsheet row is the
// canonical output; this record exists so the interface can re-render past
// results.
type Summary struct {
	ID           string
	DocumentID   string
	DocumentName string
	DocumentLink string

	Solutions        string
	ToSolve          string
	ProblemStatement string

	Status    string
	Progress  int
	Truncated bool

	ErrorCode    string
	ErrorMessage string

	SpreadsheetID  string
	WorksheetTitle string
	AppendedAt     *time.Time

	CreatedAt   time.Time
	CompletedAt *time.Time
}

package summaries

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"arvr-research-backend/internal/documents"
	"arvr-research-backend/internal/extract"
	"arvr-research-backend/internal/llm"
	"arvr-research-backend/internal/sheets"
	"arvr-research-backend/internal/shared/metrics"
	"arvr-research-backend/internal/shared/storage/object"
	"arvr-research-backend/internal/shared/telemetry"
	"arvr-research-backend/internal/shared/util"
)

// Service runs the extraction -> summarization -> parsing -> sheet-append
// pipeline for one document at a time.
type Service struct {
	Repo             Repo
	DocRepo          documents.DocumentsRepo
	Store            object.ObjectStore
	LLM              llm.Client
	Sheet            sheets.Appender
	DocumentBaseLink string

	running atomic.Bool
}

// Process executes the full pipeline synchronously. Stages run in fixed
// order and the first failure aborts the run; since the sheet append is the
// last stage, a failed run never leaves external state behind. There is no
// automatic retry: the caller re-triggers the whole pipeline.
func (s *Service) Process(ctx context.Context, documentID string) (Summary, error) {
	if documentID == "" {
		return Summary{}, fmt.Errorf("documentID is required")
	}
	if !s.running.CompareAndSwap(false, true) {
		return Summary{}, ErrRunInProgress
	}
	defer s.running.Store(false)

	doc, err := s.DocRepo.GetByID(ctx, documentID)
	if err != nil {
		return Summary{}, fmt.Errorf("document lookup id=%s: %w", documentID, err)
	}

	startedAt := time.Now().UTC()
	sum := Summary{
		ID:           uuid.NewString(),
		DocumentID:   doc.ID,
		DocumentName: util.BaseName(doc.FileName),
		DocumentLink: s.DocumentBaseLink,
		Status:       StatusQueued,
		CreatedAt:    startedAt,
	}
	if err := s.Repo.Create(ctx, sum); err != nil {
		return Summary{}, fmt.Errorf("create summary: %w", err)
	}
	metrics.IncPipelineStarted()

	sum.Status = StatusProcessing

	// Stage 1: text extraction.
	s.checkpoint(ctx, &sum, ProgressExtracting, "extracting")
	text, err := s.extractText(ctx, doc)
	if err != nil {
		return s.fail(ctx, sum, ErrorCodeExtraction, err, startedAt)
	}

	// Stage 2: summarization. Single call, no retry.
	s.checkpoint(ctx, &sum, ProgressSummarizing, "summarizing")
	result, err := s.LLM.Summarize(ctx, llm.SummarizeInput{DocumentText: text})
	if err != nil {
		return s.fail(ctx, sum, ErrorCodeSummarization, fmt.Errorf("llm summarize: %w", err), startedAt)
	}
	sum.Truncated = result.Truncated
	if result.Truncated {
		metrics.IncPromptTruncated()
		telemetry.Warn("pipeline.truncated", map[string]any{
			"summary_id":  sum.ID,
			"document_id": doc.ID,
			"text_len":    len(text),
		})
	}

	// Stage 3: parsing. Pure; malformed output degrades to empty fields.
	s.checkpoint(ctx, &sum, ProgressParsing, "parsing")
	fields := ParseFields(result.Text)
	sum.Solutions = fields.Solutions
	sum.ToSolve = fields.ToSolve
	sum.ProblemStatement = fields.ProblemStatement

	// Stage 4: sheet append, the only externally visible mutation.
	s.checkpoint(ctx, &sum, ProgressAppending, "appending")
	appendResult, err := s.Sheet.AppendRow(ctx, sheets.Row{
		DocumentName:     sum.DocumentName,
		DocumentLink:     sum.DocumentLink,
		ProblemStatement: strings.TrimSpace(fields.ProblemStatement),
		Solutions:        strings.TrimSpace(fields.Solutions),
		ToSolve:          strings.TrimSpace(fields.ToSolve),
	})
	if err != nil {
		return s.fail(ctx, sum, ErrorCodeSheetAppend, fmt.Errorf("sheet append: %w", err), startedAt)
	}
	metrics.IncSheetRowsAppended()

	completedAt := time.Now().UTC()
	appendedAt := completedAt
	sum.Status = StatusCompleted
	sum.Progress = ProgressDone
	sum.SpreadsheetID = appendResult.SpreadsheetID
	sum.WorksheetTitle = appendResult.WorksheetTitle
	sum.AppendedAt = &appendedAt
	sum.CompletedAt = &completedAt
	if err := s.Repo.Update(ctx, sum); err != nil {
		return s.fail(ctx, sum, ErrorCodeInternal, fmt.Errorf("set summary result: %w", err), startedAt)
	}

	metrics.IncPipelineCompleted()
	metrics.ObservePipelineDurationMs(durationMs(startedAt, completedAt))
	telemetry.Info("pipeline.status", map[string]any{
		"summary_id":  sum.ID,
		"document_id": doc.ID,
		"status":      StatusCompleted,
		"progress":    ProgressDone,
		"truncated":   sum.Truncated,
		"duration_ms": durationMs(startedAt, completedAt),
	})
	return sum, nil
}

// Get returns a summary by ID.
func (s *Service) Get(ctx context.Context, summaryID string) (Summary, error) {
	if summaryID == "" {
		return Summary{}, fmt.Errorf("summaryID is required")
	}
	return s.Repo.GetByID(ctx, summaryID)
}

// List returns summaries ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *Service) extractText(ctx context.Context, doc documents.Document) (string, error) {
	if doc.ExtractedTextKey != "" {
		return loadText(ctx, s.Store, doc.ExtractedTextKey)
	}

	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType)
	if err != nil {
		return "", err
	}
	extractedKey := doc.StorageKey + ".extracted.txt"
	if err := s.DocRepo.UpdateExtraction(ctx, doc.ID, extractedKey, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("update extraction document=%s: %w", doc.ID, err)
	}
	return text, nil
}

func (s *Service) checkpoint(ctx context.Context, sum *Summary, progress int, stage string) {
	sum.Progress = progress
	if err := s.Repo.Update(ctx, *sum); err != nil {
		telemetry.Error("pipeline.checkpoint", map[string]any{
			"summary_id": sum.ID,
			"stage":      stage,
			"error":      err.Error(),
		})
		return
	}
	telemetry.Info("pipeline.progress", map[string]any{
		"summary_id":  sum.ID,
		"document_id": sum.DocumentID,
		"stage":       stage,
		"progress":    progress,
	})
}

func (s *Service) fail(ctx context.Context, sum Summary, code string, err error, startedAt time.Time) (Summary, error) {
	completedAt := time.Now().UTC()
	sum.Status = StatusFailed
	sum.ErrorCode = code
	sum.ErrorMessage = sanitizeError(err)
	sum.CompletedAt = &completedAt
	if updateErr := s.Repo.Update(ctx, sum); updateErr != nil {
		telemetry.Error("pipeline.fail_update", map[string]any{
			"summary_id": sum.ID,
			"error":      updateErr.Error(),
			"orig":       err.Error(),
		})
	}
	metrics.IncPipelineFailed()
	metrics.ObservePipelineDurationMs(durationMs(startedAt, completedAt))
	telemetry.Info("pipeline.status", map[string]any{
		"summary_id":  sum.ID,
		"document_id": sum.DocumentID,
		"status":      StatusFailed,
		"error_code":  code,
		"duration_ms": durationMs(startedAt, completedAt),
	})
	return sum, err
}

func durationMs(startedAt, completedAt time.Time) float64 {
	return float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0
}

func loadText(ctx context.Context, store object.ObjectStore, key string) (string, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

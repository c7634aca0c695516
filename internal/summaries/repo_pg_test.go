package summaries

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	sum := Summary{
		ID:           "sum-1",
		DocumentID:   "doc-1",
		DocumentName: "paper",
		DocumentLink: "https://drive.example.com/folder",
		Status:       StatusQueued,
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO summaries").
		WithArgs(
			sum.ID,
			sum.DocumentID,
			sum.DocumentName,
			sum.DocumentLink,
			"",
			"",
			"",
			StatusQueued,
			0,
			false,
			nil, // error_code
			nil, // error_message
			nil, // spreadsheet_id
			nil, // worksheet_title
			nil, // appended_at
			sum.CreatedAt,
			nil, // completed_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), sum); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE summaries").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Summary{ID: "missing"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()
	appendedAt := createdAt.Add(time.Minute)

	columns := []string{
		"id", "document_id", "document_name", "document_link", "solutions",
		"to_solve", "problem_statement", "status", "progress", "truncated",
		"error_code", "error_message", "spreadsheet_id", "worksheet_title",
		"appended_at", "created_at", "completed_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM summaries").
		WithArgs("sum-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"sum-1", "doc-1", "paper", "https://drive.example.com/folder",
			"- a\n", "- b\n", "statement ", StatusCompleted, ProgressDone, true,
			nil, nil, "sheet-1", "Sheet1",
			appendedAt, createdAt, appendedAt,
		))

	sum, err := repo.GetByID(context.Background(), "sum-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if sum.Status != StatusCompleted || sum.Progress != ProgressDone {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if !sum.Truncated {
		t.Fatal("expected truncated flag")
	}
	if sum.WorksheetTitle != "Sheet1" || sum.SpreadsheetID != "sheet-1" {
		t.Fatalf("append metadata: %+v", sum)
	}
	if sum.AppendedAt == nil || sum.CompletedAt == nil {
		t.Fatal("expected timestamps")
	}
	if sum.ErrorCode != "" {
		t.Fatalf("error code = %q", sum.ErrorCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM summaries").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()

	columns := []string{
		"id", "document_id", "document_name", "document_link", "solutions",
		"to_solve", "problem_statement", "status", "progress", "truncated",
		"error_code", "error_message", "spreadsheet_id", "worksheet_title",
		"appended_at", "created_at", "completed_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM summaries").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("sum-2", "doc-2", "b", "", "", "", "", StatusFailed, 20, false,
				"extraction_failed", "invalid pdf", nil, nil, nil, createdAt, createdAt).
			AddRow("sum-1", "doc-1", "a", "", "", "", "", StatusCompleted, 100, false,
				nil, nil, "sheet-1", "Sheet1", createdAt, createdAt, createdAt))

	sums, err := repo.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}
	if sums[0].ErrorCode != ErrorCodeExtraction {
		t.Fatalf("error code = %q", sums[0].ErrorCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

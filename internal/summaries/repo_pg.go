package summaries

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new summary.
func (r *PGRepo) Create(ctx context.Context, sum Summary) error {
	const query = `
INSERT INTO summaries (
    id,
    document_id,
    document_name,
    document_link,
    solutions,
    to_solve,
    problem_statement,
    status,
    progress,
    truncated,
    error_code,
    error_message,
    spreadsheet_id,
    worksheet_title,
    appended_at,
    created_at,
    completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		sum.ID,
		sum.DocumentID,
		sum.DocumentName,
		sum.DocumentLink,
		sum.Solutions,
		sum.ToSolve,
		sum.ProblemStatement,
		sum.Status,
		sum.Progress,
		sum.Truncated,
		nullString(sum.ErrorCode),
		nullString(sum.ErrorMessage),
		nullString(sum.SpreadsheetID),
		nullString(sum.WorksheetTitle),
		sum.AppendedAt,
		sum.CreatedAt,
		sum.CompletedAt,
	)
	return err
}

// Update overwrites the mutable columns of a summary.
func (r *PGRepo) Update(ctx context.Context, sum Summary) error {
	const query = `
UPDATE summaries
SET solutions = $2,
    to_solve = $3,
    problem_statement = $4,
    status = $5,
    progress = $6,
    truncated = $7,
    error_code = $8,
    error_message = $9,
    spreadsheet_id = $10,
    worksheet_title = $11,
    appended_at = $12,
    completed_at = $13
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		sum.ID,
		sum.Solutions,
		sum.ToSolve,
		sum.ProblemStatement,
		sum.Status,
		sum.Progress,
		sum.Truncated,
		nullString(sum.ErrorCode),
		nullString(sum.ErrorMessage),
		nullString(sum.SpreadsheetID),
		nullString(sum.WorksheetTitle),
		sum.AppendedAt,
		sum.CompletedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a summary by ID.
func (r *PGRepo) GetByID(ctx context.Context, summaryID string) (Summary, error) {
	const query = selectColumns + `
FROM summaries
WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, query, summaryID)
	sum, err := scanSummary(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, err
	}
	return sum, nil
}

// List returns summaries ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	const query = selectColumns + `
FROM summaries
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []Summary
	for rows.Next() {
		sum, err := scanSummary(rows.Scan)
		if err != nil {
			return nil, err
		}
		sums = append(sums, sum)
	}
	return sums, rows.Err()
}

const selectColumns = `
SELECT id, document_id, document_name, document_link, solutions, to_solve,
       problem_statement, status, progress, truncated, error_code,
       error_message, spreadsheet_id, worksheet_title, appended_at,
       created_at, completed_at`

func scanSummary(scan func(dest ...any) error) (Summary, error) {
	var sum Summary
	var errorCode, errorMessage, spreadsheetID, worksheetTitle sql.NullString
	var appendedAt, completedAt sql.NullTime
	err := scan(
		&sum.ID,
		&sum.DocumentID,
		&sum.DocumentName,
		&sum.DocumentLink,
		&sum.Solutions,
		&sum.ToSolve,
		&sum.ProblemStatement,
		&sum.Status,
		&sum.Progress,
		&sum.Truncated,
		&errorCode,
		&errorMessage,
		&spreadsheetID,
		&worksheetTitle,
		&appendedAt,
		&sum.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return Summary{}, err
	}
	if errorCode.Valid {
		sum.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		sum.ErrorMessage = errorMessage.String
	}
	if spreadsheetID.Valid {
		sum.SpreadsheetID = spreadsheetID.String
	}
	if worksheetTitle.Valid {
		sum.WorksheetTitle = worksheetTitle.String
	}
	if appendedAt.Valid {
		t := appendedAt.Time
		sum.AppendedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		sum.CompletedAt = &t
	}
	return sum, nil
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

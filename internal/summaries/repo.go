package summaries

import "context"

// Repo defines persistence operations for summaries.
type Repo interface {
	Create(ctx context.Context, sum Summary) error
	Update(ctx context.Context, sum Summary) error
	GetByID(ctx context.Context, summaryID string) (Summary, error)
	List(ctx context.Context, limit, offset int) ([]Summary, error)
}

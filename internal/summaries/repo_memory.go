package summaries

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Summary
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Summary),
	}
}

// Create stores a summary.
func (r *MemoryRepo) Create(ctx context.Context, sum Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[sum.ID] = sum
	return nil
}

// Update overwrites a stored summary.
func (r *MemoryRepo) Update(ctx context.Context, sum Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[sum.ID]; !ok {
		return ErrNotFound
	}
	r.data[sum.ID] = sum
	return nil
}

// GetByID returns a summary by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, summaryID string) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum, ok := r.data[summaryID]
	if !ok {
		return Summary{}, ErrNotFound
	}
	return sum, nil
}

// List returns summaries ordered newest-first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	sums := make([]Summary, 0, len(r.data))
	for _, sum := range r.data {
		sums = append(sums, sum)
	}
	sort.Slice(sums, func(i, j int) bool {
		return sums[i].CreatedAt.After(sums[j].CreatedAt)
	})

	if offset >= len(sums) {
		return []Summary{}, nil
	}
	sums = sums[offset:]
	if limit > 0 && limit < len(sums) {
		sums = sums[:limit]
	}
	return sums, nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/pkg/pagination"
)

// DateRange bounds a query on IncomeEntry.CreatedAt. Both ends are inclusive;
// a nil bound is unbounded on that side.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IncomeRepository defines the interface for income ledger operations.
// All queries are tenant-scoped through the request context.
type IncomeRepository interface {
	Create(ctx context.Context, entry *entity.IncomeEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error)
	Update(ctx context.Context, entry *entity.IncomeEntry) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of entries in the range, newest first
	List(ctx context.Context, rng DateRange, params *pagination.PaginationParams) ([]entity.IncomeEntry, int64, error)

	// ListInRange returns every entry in the range ordered by creation time,
	// feeding the report aggregations. sourceKey, when non-empty, restricts
	// the result to entries whose normalized source matches exactly.
	ListInRange(ctx context.Context, rng DateRange, sourceKey string) ([]entity.IncomeEntry, error)
}

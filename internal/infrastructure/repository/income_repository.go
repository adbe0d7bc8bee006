package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	domainRepo "github.com/sangkips/trimtally-api/internal/domain/repository"
	"github.com/sangkips/trimtally-api/pkg/pagination"
	"gorm.io/gorm"
)

type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository
func NewIncomeRepository(db *gorm.DB) domainRepo.IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, entry *entity.IncomeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *incomeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error) {
	var entry entity.IncomeEntry
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *incomeRepository) Update(ctx context.Context, entry *entity.IncomeEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *incomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Delete(&entity.IncomeEntry{}, "id = ?", id).Error
}

func (r *incomeRepository) List(ctx context.Context, rng domainRepo.DateRange, params *pagination.PaginationParams) ([]entity.IncomeEntry, int64, error) {
	var entries []entity.IncomeEntry
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.IncomeEntry{}).
		Scopes(TenantScope(ctx))
	query = applyDateRange(query, rng)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}

func (r *incomeRepository) ListInRange(ctx context.Context, rng domainRepo.DateRange, sourceKey string) ([]entity.IncomeEntry, error) {
	var entries []entity.IncomeEntry

	query := r.db.WithContext(ctx).
		Model(&entity.IncomeEntry{}).
		Scopes(TenantScope(ctx))
	query = applyDateRange(query, rng)

	if sourceKey != "" {
		query = query.Where("source_key = ?", sourceKey)
	}

	err := query.Order("created_at ASC").Find(&entries).Error
	return entries, err
}

// applyDateRange adds inclusive created_at bounds to a query
func applyDateRange(query *gorm.DB, rng domainRepo.DateRange) *gorm.DB {
	if rng.From != nil {
		query = query.Where("created_at >= ?", *rng.From)
	}
	if rng.To != nil {
		query = query.Where("created_at <= ?", *rng.To)
	}
	return query
}

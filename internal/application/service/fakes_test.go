package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	"github.com/sangkips/trimtally-api/pkg/pagination"
)

// fakeIncomeRepo is an in-memory IncomeRepository for service tests. It
// mirrors the SQL implementation's semantics: inclusive date bounds and
// exact source_key matching.
type fakeIncomeRepo struct {
	entries []entity.IncomeEntry
}

func (f *fakeIncomeRepo) Create(ctx context.Context, entry *entity.IncomeEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeIncomeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeIncomeRepo) Update(ctx context.Context, entry *entity.IncomeEntry) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries[i] = *entry
			return nil
		}
	}
	return nil
}

func (f *fakeIncomeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeIncomeRepo) List(ctx context.Context, rng repository.DateRange, params *pagination.PaginationParams) ([]entity.IncomeEntry, int64, error) {
	matched := f.inRange(rng, "")
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeIncomeRepo) ListInRange(ctx context.Context, rng repository.DateRange, sourceKey string) ([]entity.IncomeEntry, error) {
	matched := f.inRange(rng, sourceKey)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeIncomeRepo) inRange(rng repository.DateRange, sourceKey string) []entity.IncomeEntry {
	matched := make([]entity.IncomeEntry, 0, len(f.entries))
	for _, e := range f.entries {
		if rng.From != nil && e.CreatedAt.Before(*rng.From) {
			continue
		}
		if rng.To != nil && e.CreatedAt.After(*rng.To) {
			continue
		}
		if sourceKey != "" && e.SourceKey != sourceKey {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// fakeSettingsRepo is an in-memory IncomeSettingsRepository
type fakeSettingsRepo struct {
	settings *entity.IncomeSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.IncomeSettings, error) {
	if f.settings == nil {
		return nil, nil
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *entity.IncomeSettings) error {
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	s := *settings
	f.settings = &s
	return nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *entity.IncomeSettings) error {
	s := *settings
	f.settings = &s
	return nil
}

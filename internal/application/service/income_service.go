package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	infraRepo "github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/sangkips/trimtally-api/pkg/pagination"
)

// IncomeService handles the income ledger: creating, reading, updating and
// deleting entries. Monetary fields are always derived through the valuation
// engine against the settings in effect at write time; an entry keeps those
// values until it is explicitly updated, which recomputes them against the
// current settings.
type IncomeService struct {
	incomeRepo   repository.IncomeRepository
	settingsRepo repository.IncomeSettingsRepository
}

// NewIncomeService creates a new income service
func NewIncomeService(incomeRepo repository.IncomeRepository, settingsRepo repository.IncomeSettingsRepository) *IncomeService {
	return &IncomeService{
		incomeRepo:   incomeRepo,
		settingsRepo: settingsRepo,
	}
}

// CreateEntryInput represents the create entry input
type CreateEntryInput struct {
	RecordedBy   uuid.UUID
	Source       string
	UnitsServed  int
	IsOwnerEntry bool
}

// CreateEntry values and persists a new income entry. The write is refused
// outright when the shop has no pricing rule yet.
func (s *IncomeService) CreateEntry(ctx context.Context, input *CreateEntryInput) (*entity.IncomeEntry, error) {
	if err := validateEntryInput(input.Source, input.UnitsServed); err != nil {
		return nil, err
	}

	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	valuation, err := ComputeIncome(input.UnitsServed, input.IsOwnerEntry, settings)
	if err != nil {
		return nil, err
	}

	entry := &entity.IncomeEntry{
		TenantID:     tenantID,
		RecordedBy:   input.RecordedBy,
		Source:       strings.TrimSpace(input.Source),
		SourceKey:    entity.NormalizeSource(input.Source),
		UnitsServed:  input.UnitsServed,
		IsOwnerEntry: input.IsOwnerEntry,
		GrossIncome:  valuation.GrossIncome,
		OwnerShare:   valuation.OwnerShare,
	}

	if err := s.incomeRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetEntry retrieves an income entry by ID
func (s *IncomeService) GetEntry(ctx context.Context, id uuid.UUID) (*entity.IncomeEntry, error) {
	entry, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Income entry")
	}
	return entry, nil
}

// ListEntries returns a page of entries whose creation time falls in the
// range. Bounds are inclusive; a missing bound is unbounded on that side.
func (s *IncomeService) ListEntries(ctx context.Context, rng repository.DateRange, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.IncomeEntry], error) {
	params.Validate()

	entries, total, err := s.incomeRepo.List(ctx, rng, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(entries, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateEntryInput represents the update entry input
type UpdateEntryInput struct {
	ID           uuid.UUID
	Source       string
	UnitsServed  int
	IsOwnerEntry bool
}

// UpdateEntry overwrites an entry, recomputing the derived fields against
// the current settings rather than the ones active at creation.
func (s *IncomeService) UpdateEntry(ctx context.Context, input *UpdateEntryInput) (*entity.IncomeEntry, error) {
	entry, err := s.incomeRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Income entry")
	}

	if err := validateEntryInput(input.Source, input.UnitsServed); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	valuation, err := ComputeIncome(input.UnitsServed, input.IsOwnerEntry, settings)
	if err != nil {
		return nil, err
	}

	entry.Source = strings.TrimSpace(input.Source)
	entry.SourceKey = entity.NormalizeSource(input.Source)
	entry.UnitsServed = input.UnitsServed
	entry.IsOwnerEntry = input.IsOwnerEntry
	entry.GrossIncome = valuation.GrossIncome
	entry.OwnerShare = valuation.OwnerShare

	if err := s.incomeRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry removes an entry from the ledger
func (s *IncomeService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperror.NewNotFoundError("Income entry")
	}

	return s.incomeRepo.Delete(ctx, id)
}

func validateEntryInput(source string, unitsServed int) error {
	fieldErrors := make([]apperror.FieldError, 0, 2)
	if strings.TrimSpace(source) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "source", Message: "source is required"})
	}
	if unitsServed < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "units_served", Message: "must be zero or greater"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

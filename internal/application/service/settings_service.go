package service

import (
	"context"

	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	infraRepo "github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsService manages the per-shop pricing rule. The rule is a singleton:
// the first call creates it, later calls overwrite it in place. No history is
// kept; entries snapshot their derived amounts at write time instead.
type SettingsService struct {
	settingsRepo repository.IncomeSettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.IncomeSettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the current pricing rule, or a 404 when the shop has
// not been configured yet
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.IncomeSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Income settings")
	}
	return settings, nil
}

// SetSettingsInput represents the input for configuring the pricing rule
type SetSettingsInput struct {
	UnitPrice            decimal.Decimal
	OwnerSharePercentage decimal.Decimal
}

// SetSettings creates or overwrites the shop's pricing rule
func (s *SettingsService) SetSettings(ctx context.Context, input *SetSettingsInput) (*entity.IncomeSettings, error) {
	if err := validateSettingsInput(input); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		tenantID, ok := infraRepo.GetTenantID(ctx)
		if !ok {
			return nil, apperror.NewBadRequestError("Tenant context required")
		}
		settings = &entity.IncomeSettings{
			TenantID:             tenantID,
			UnitPrice:            input.UnitPrice,
			OwnerSharePercentage: input.OwnerSharePercentage,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	settings.UnitPrice = input.UnitPrice
	settings.OwnerSharePercentage = input.OwnerSharePercentage
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func validateSettingsInput(input *SetSettingsInput) error {
	fieldErrors := make([]apperror.FieldError, 0, 2)
	if !input.UnitPrice.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "must be greater than zero"})
	}
	if input.OwnerSharePercentage.IsNegative() || input.OwnerSharePercentage.GreaterThan(decimal.NewFromInt(100)) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "owner_share_percentage", Message: "must be between 0 and 100"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

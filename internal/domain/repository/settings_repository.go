package repository

import (
	"context"

	"github.com/sangkips/trimtally-api/internal/domain/entity"
)

// IncomeSettingsRepository defines the interface for the per-shop pricing rule.
// The record is a singleton per tenant; Get returns (nil, nil) when the shop
// has not been configured yet.
type IncomeSettingsRepository interface {
	Get(ctx context.Context) (*entity.IncomeSettings, error)
	Create(ctx context.Context, settings *entity.IncomeSettings) error
	Update(ctx context.Context, settings *entity.IncomeSettings) error
}

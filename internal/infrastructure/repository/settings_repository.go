package repository

import (
	"context"
	"errors"

	"github.com/sangkips/trimtally-api/internal/domain/entity"
	domainRepo "github.com/sangkips/trimtally-api/internal/domain/repository"
	"gorm.io/gorm"
)

type incomeSettingsRepository struct {
	db *gorm.DB
}

// NewIncomeSettingsRepository creates a new income settings repository
func NewIncomeSettingsRepository(db *gorm.DB) domainRepo.IncomeSettingsRepository {
	return &incomeSettingsRepository{db: db}
}

func (r *incomeSettingsRepository) Get(ctx context.Context) (*entity.IncomeSettings, error) {
	var settings entity.IncomeSettings
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *incomeSettingsRepository) Create(ctx context.Context, settings *entity.IncomeSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *incomeSettingsRepository) Update(ctx context.Context, settings *entity.IncomeSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

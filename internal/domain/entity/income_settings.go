package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeSettings holds the pricing rule used to value income entries.
// At most one record exists per barbershop; configuration calls overwrite
// it in place. Entries copy the derived amounts at write time, so changing
// the rule never rewrites history.
type IncomeSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// UnitPrice is the price charged per haircut
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	// OwnerSharePercentage is in [0,100]. Despite the name it sets the
	// employee's cut on non-owner entries; the owner keeps the remainder.
	// The name is kept for compatibility with existing client payloads.
	OwnerSharePercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"owner_share_percentage"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *IncomeSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IncomeSettings model
func (IncomeSettings) TableName() string {
	return "income_settings"
}

package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeEntry represents one logged transaction: who cut hair, how many
// heads, and the money split computed from the settings in effect at write
// time. GrossIncome and OwnerShare are derived fields; callers never supply
// them directly.
type IncomeEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	RecordedBy uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Source is the display name of the person who performed the service.
	// SourceKey is its lowercased form, stored so reports group the same
	// person regardless of how the name was typed.
	Source    string `gorm:"size:255;not null" json:"source"`
	SourceKey string `gorm:"size:255;not null;index" json:"-"`

	UnitsServed  int  `gorm:"not null" json:"units_served"`
	IsOwnerEntry bool `gorm:"not null;default:false" json:"is_owner_entry"`

	GrossIncome decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gross_income"`
	OwnerShare  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"owner_share"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:RecordedBy" json:"-"`
}

// BeforeCreate generates a UUID before creating a new entry
func (e *IncomeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IncomeEntry model
func (IncomeEntry) TableName() string {
	return "income_entries"
}

// EmployeeShare returns the portion of gross income kept by the employee
func (e *IncomeEntry) EmployeeShare() decimal.Decimal {
	return e.GrossIncome.Sub(e.OwnerShare)
}

// NormalizeSource lowercases and trims a source name for grouping
func NormalizeSource(source string) string {
	return strings.ToLower(strings.TrimSpace(source))
}

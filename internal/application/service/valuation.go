package service

import (
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Valuation is the monetary outcome of a single income entry.
//
// The split rule: an owner entry keeps the full gross amount. For an
// employee entry the employee keeps ownerSharePercentage of gross and the
// owner is recorded with the remainder, so GrossIncome = OwnerShare +
// employee share always holds. No rounding is applied here; presentation
// layers round for display.
type Valuation struct {
	GrossIncome decimal.Decimal
	OwnerShare  decimal.Decimal
}

// EmployeeShare returns the portion of gross kept by the employee
func (v Valuation) EmployeeShare() decimal.Decimal {
	return v.GrossIncome.Sub(v.OwnerShare)
}

// ComputeIncome values a raw submission against the pricing rule in effect.
// It fails when no settings exist so the caller can refuse the write, and
// rejects negative unit counts. It never persists anything.
func ComputeIncome(unitsServed int, isOwnerEntry bool, settings *entity.IncomeSettings) (Valuation, error) {
	if settings == nil {
		return Valuation{}, apperror.ErrIncomeSettingsMissing
	}
	if unitsServed < 0 {
		return Valuation{}, apperror.NewFieldError("units_served", "must be zero or greater")
	}

	gross := settings.UnitPrice.Mul(decimal.NewFromInt(int64(unitsServed)))

	if isOwnerEntry {
		return Valuation{GrossIncome: gross, OwnerShare: gross}, nil
	}

	employeeShare := gross.Mul(settings.OwnerSharePercentage).Div(hundred)
	return Valuation{
		GrossIncome: gross,
		OwnerShare:  gross.Sub(employeeShare),
	}, nil
}

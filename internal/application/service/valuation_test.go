package service

import (
	"net/http"
	"testing"

	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(unitPrice, sharePct int64) *entity.IncomeSettings {
	return &entity.IncomeSettings{
		UnitPrice:            decimal.NewFromInt(unitPrice),
		OwnerSharePercentage: decimal.NewFromInt(sharePct),
	}
}

func TestComputeIncomeOwnerEntry(t *testing.T) {
	settings := testSettings(20, 60)

	v, err := ComputeIncome(3, true, settings)
	require.NoError(t, err)

	assert.True(t, v.GrossIncome.Equal(decimal.NewFromInt(60)), "gross = 3 * 20")
	assert.True(t, v.OwnerShare.Equal(decimal.NewFromInt(60)), "owner keeps full gross")
	assert.True(t, v.EmployeeShare().IsZero())
}

func TestComputeIncomeEmployeeSplit(t *testing.T) {
	settings := testSettings(20, 60)

	v, err := ComputeIncome(5, false, settings)
	require.NoError(t, err)

	assert.True(t, v.GrossIncome.Equal(decimal.NewFromInt(100)))
	assert.True(t, v.EmployeeShare().Equal(decimal.NewFromInt(60)), "employee gets 60%% of gross")
	assert.True(t, v.OwnerShare.Equal(decimal.NewFromInt(40)), "owner gets the remainder")
}

func TestComputeIncomeSplitConservation(t *testing.T) {
	settings := testSettings(17, 37)

	for _, units := range []int{0, 1, 7, 250} {
		v, err := ComputeIncome(units, false, settings)
		require.NoError(t, err)

		sum := v.OwnerShare.Add(v.EmployeeShare())
		assert.True(t, sum.Equal(v.GrossIncome), "owner + employee must equal gross for units=%d", units)
		assert.False(t, v.OwnerShare.IsNegative())
		assert.False(t, v.EmployeeShare().IsNegative())
	}
}

func TestComputeIncomeZeroUnits(t *testing.T) {
	settings := testSettings(20, 60)

	v, err := ComputeIncome(0, false, settings)
	require.NoError(t, err)

	assert.True(t, v.GrossIncome.IsZero())
	assert.True(t, v.OwnerShare.IsZero())
}

func TestComputeIncomeZeroAndFullPercentage(t *testing.T) {
	v, err := ComputeIncome(4, false, testSettings(10, 0))
	require.NoError(t, err)
	assert.True(t, v.OwnerShare.Equal(decimal.NewFromInt(40)), "0%% leaves everything with the owner")

	v, err = ComputeIncome(4, false, testSettings(10, 100))
	require.NoError(t, err)
	assert.True(t, v.OwnerShare.IsZero(), "100%% leaves nothing with the owner")
	assert.True(t, v.EmployeeShare().Equal(decimal.NewFromInt(40)))
}

func TestComputeIncomeMissingSettings(t *testing.T) {
	_, err := ComputeIncome(5, false, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, http.StatusPreconditionFailed))
}

func TestComputeIncomeNegativeUnits(t *testing.T) {
	_, err := ComputeIncome(-1, false, testSettings(20, 60))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, http.StatusUnprocessableEntity))
}

func TestComputeIncomeFractionalSplit(t *testing.T) {
	settings := &entity.IncomeSettings{
		UnitPrice:            decimal.RequireFromString("12.50"),
		OwnerSharePercentage: decimal.RequireFromString("33.33"),
	}

	v, err := ComputeIncome(3, false, settings)
	require.NoError(t, err)

	assert.True(t, v.GrossIncome.Equal(decimal.RequireFromString("37.50")))
	// No rounding in the engine: the exact product is preserved
	assert.True(t, v.EmployeeShare().Equal(decimal.RequireFromString("12.49875")))
	assert.True(t, v.OwnerShare.Add(v.EmployeeShare()).Equal(v.GrossIncome))
}

package service

import (
	"net/http"
	"testing"

	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsUnconfigured(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	_, err := svc.GetSettings(tenantContext())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, http.StatusNotFound))
}

func TestSetSettingsCreatesThenOverwrites(t *testing.T) {
	ctx := tenantContext()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	first, err := svc.SetSettings(ctx, &SetSettingsInput{
		UnitPrice:            decimal.NewFromInt(20),
		OwnerSharePercentage: decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.settings)

	second, err := svc.SetSettings(ctx, &SetSettingsInput{
		UnitPrice:            decimal.NewFromInt(25),
		OwnerSharePercentage: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// Singleton: same record, updated in place
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, repo.settings.UnitPrice.Equal(decimal.NewFromInt(25)))

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.OwnerSharePercentage.Equal(decimal.NewFromInt(50)))
}

func TestSetSettingsValidation(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	cases := []struct {
		name      string
		unitPrice string
		sharePct  string
	}{
		{"zero unit price", "0", "60"},
		{"negative unit price", "-5", "60"},
		{"percentage above 100", "20", "100.01"},
		{"negative percentage", "20", "-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetSettings(tenantContext(), &SetSettingsInput{
				UnitPrice:            decimal.RequireFromString(tc.unitPrice),
				OwnerSharePercentage: decimal.RequireFromString(tc.sharePct),
			})
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, http.StatusUnprocessableEntity))
		})
	}
}

func TestSetSettingsBoundaryPercentages(t *testing.T) {
	for _, pct := range []string{"0", "100"} {
		_, err := NewSettingsService(&fakeSettingsRepo{}).SetSettings(tenantContext(), &SetSettingsInput{
			UnitPrice:            decimal.NewFromInt(20),
			OwnerSharePercentage: decimal.RequireFromString(pct),
		})
		require.NoError(t, err, "percentage %s is inside the valid range", pct)
	}
}

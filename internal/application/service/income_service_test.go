package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	infraRepo "github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/sangkips/trimtally-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenantContext() context.Context {
	return infraRepo.WithTenant(context.Background(), uuid.New())
}

func configuredSettingsRepo(unitPrice, sharePct int64) *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: &entity.IncomeSettings{
		ID:                   uuid.New(),
		UnitPrice:            decimal.NewFromInt(unitPrice),
		OwnerSharePercentage: decimal.NewFromInt(sharePct),
	}}
}

func TestCreateEntryDerivesMonetaryFields(t *testing.T) {
	incomeRepo := &fakeIncomeRepo{}
	svc := NewIncomeService(incomeRepo, configuredSettingsRepo(20, 60))

	entry, err := svc.CreateEntry(tenantContext(), &CreateEntryInput{
		RecordedBy:  uuid.New(),
		Source:      "  Alice  ",
		UnitsServed: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", entry.Source, "display name is trimmed")
	assert.Equal(t, "alice", entry.SourceKey)
	assert.True(t, entry.GrossIncome.Equal(decimal.NewFromInt(100)))
	assert.True(t, entry.OwnerShare.Equal(decimal.NewFromInt(40)))
	assert.True(t, entry.EmployeeShare().Equal(decimal.NewFromInt(60)))
	assert.Len(t, incomeRepo.entries, 1)
}

func TestCreateEntryWithoutSettingsPersistsNothing(t *testing.T) {
	incomeRepo := &fakeIncomeRepo{}
	svc := NewIncomeService(incomeRepo, &fakeSettingsRepo{})

	_, err := svc.CreateEntry(tenantContext(), &CreateEntryInput{
		RecordedBy:  uuid.New(),
		Source:      "Alice",
		UnitsServed: 5,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, http.StatusPreconditionFailed))
	assert.Empty(t, incomeRepo.entries, "a refused write must not persist anything")
}

func TestCreateEntryValidation(t *testing.T) {
	incomeRepo := &fakeIncomeRepo{}
	svc := NewIncomeService(incomeRepo, configuredSettingsRepo(20, 60))

	_, err := svc.CreateEntry(tenantContext(), &CreateEntryInput{
		RecordedBy:  uuid.New(),
		Source:      "   ",
		UnitsServed: -2,
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.Len(t, appErr.Errors, 2, "both field problems are reported at once")
	assert.Empty(t, incomeRepo.entries)
}

func TestCreateEntryRequiresTenantContext(t *testing.T) {
	svc := NewIncomeService(&fakeIncomeRepo{}, configuredSettingsRepo(20, 60))

	_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		RecordedBy:  uuid.New(),
		Source:      "Alice",
		UnitsServed: 1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, http.StatusBadRequest))
}

func TestUpdateEntryRecomputesAgainstCurrentSettings(t *testing.T) {
	ctx := tenantContext()
	incomeRepo := &fakeIncomeRepo{}
	settingsRepo := configuredSettingsRepo(20, 60)
	svc := NewIncomeService(incomeRepo, settingsRepo)

	entry, err := svc.CreateEntry(ctx, &CreateEntryInput{
		RecordedBy:  uuid.New(),
		Source:      "Alice",
		UnitsServed: 5,
	})
	require.NoError(t, err)

	// The pricing rule changes after the entry was written
	settingsRepo.settings.UnitPrice = decimal.NewFromInt(30)

	updated, err := svc.UpdateEntry(ctx, &UpdateEntryInput{
		ID:          entry.ID,
		Source:      "Alice",
		UnitsServed: 5,
	})
	require.NoError(t, err)
	assert.True(t, updated.GrossIncome.Equal(decimal.NewFromInt(150)), "derived fields use the settings at update time")
}

func TestUpdateEntryNotFound(t *testing.T) {
	svc := NewIncomeService(&fakeIncomeRepo{}, configuredSettingsRepo(20, 60))

	_, err := svc.UpdateEntry(tenantContext(), &UpdateEntryInput{
		ID:          uuid.New(),
		Source:      "Alice",
		UnitsServed: 1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, http.StatusNotFound))
}

func TestDeleteEntryNotFound(t *testing.T) {
	svc := NewIncomeService(&fakeIncomeRepo{}, configuredSettingsRepo(20, 60))

	err := svc.DeleteEntry(tenantContext(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, http.StatusNotFound))
}

func TestListEntriesInclusiveBoundsAndOrder(t *testing.T) {
	ctx := tenantContext()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	incomeRepo := &fakeIncomeRepo{entries: []entity.IncomeEntry{
		makeEntry("a", 1, 10, day.Add(-time.Millisecond)), // just outside
		makeEntry("b", 1, 10, day),                        // on the lower bound
		makeEntry("c", 1, 10, day.Add(12*time.Hour)),
		makeEntry("d", 1, 10, day.Add(24*time.Hour)),       // on the upper bound
		makeEntry("e", 1, 10, day.Add(25*time.Hour)),       // just outside
	}}
	svc := NewIncomeService(incomeRepo, configuredSettingsRepo(20, 60))

	to := day.Add(24 * time.Hour)
	result, err := svc.ListEntries(ctx, repository.DateRange{From: &day, To: &to}, &pagination.PaginationParams{Page: 1, PerPage: 10})
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, int64(3), result.Pagination.Total)
	// Newest first
	assert.Equal(t, "d", result.Items[0].Source)
	assert.Equal(t, "b", result.Items[2].Source)
}

package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEntry(source string, units int, gross int64, createdAt time.Time) entity.IncomeEntry {
	return entity.IncomeEntry{
		ID:          uuid.New(),
		Source:      source,
		SourceKey:   entity.NormalizeSource(source),
		UnitsServed: units,
		GrossIncome: decimal.NewFromInt(gross),
		OwnerShare:  decimal.NewFromInt(gross),
		CreatedAt:   createdAt,
	}
}

func TestIncomeBySourceMergesCaseVariants(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeIncomeRepo{entries: []entity.IncomeEntry{
		makeEntry("John", 2, 40, day),
		makeEntry("john", 3, 60, day.Add(time.Hour)),
		makeEntry("Alice", 1, 20, day),
	}}
	svc := NewReportService(repo)

	summaries, err := svc.IncomeBySource(context.Background(), repository.DateRange{})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Ordered by total income descending
	assert.Equal(t, "john", summaries[0].Source)
	assert.True(t, summaries[0].TotalIncome.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(5), summaries[0].TotalUnits)
	assert.True(t, summaries[0].AverageIncomePerUnit.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, "alice", summaries[1].Source)
	assert.True(t, summaries[1].TotalIncome.Equal(decimal.NewFromInt(20)))
}

func TestIncomeBySourceZeroUnitsAverage(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeIncomeRepo{entries: []entity.IncomeEntry{
		makeEntry("Bob", 0, 0, day),
	}}
	svc := NewReportService(repo)

	summaries, err := svc.IncomeBySource(context.Background(), repository.DateRange{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].AverageIncomePerUnit.IsZero(), "no division by zero")
}

func TestIncomeByDateGranularities(t *testing.T) {
	jan5 := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	jan20 := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	feb1 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeIncomeRepo{entries: []entity.IncomeEntry{
		makeEntry("a", 1, 10, jan5),
		makeEntry("b", 2, 20, jan20),
		makeEntry("c", 3, 30, feb1),
	}}
	svc := NewReportService(repo)
	ctx := context.Background()

	daily, err := svc.IncomeByDate(ctx, repository.DateRange{}, GranularityDay)
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, "2026-01-05", daily[0].Date)
	assert.Equal(t, "2026-02-01", daily[2].Date)

	monthly, err := svc.IncomeByDate(ctx, repository.DateRange{}, GranularityMonth)
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2026-01", monthly[0].Date)
	assert.True(t, monthly[0].TotalIncome.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(3), monthly[0].TotalUnits)

	yearly, err := svc.IncomeByDate(ctx, repository.DateRange{}, GranularityYear)
	require.NoError(t, err)
	require.Len(t, yearly, 1)
	assert.Equal(t, "2026", yearly[0].Date)
	assert.True(t, yearly[0].TotalIncome.Equal(decimal.NewFromInt(60)))
}

func TestParseGranularityFallsBackToDay(t *testing.T) {
	assert.Equal(t, GranularityDay, ParseGranularity("day"))
	assert.Equal(t, GranularityMonth, ParseGranularity("month"))
	assert.Equal(t, GranularityYear, ParseGranularity("year"))
	assert.Equal(t, GranularityDay, ParseGranularity(""))
	assert.Equal(t, GranularityDay, ParseGranularity("weekly"))
}

func TestTotalIncomeEmptyRangeIsZeroValued(t *testing.T) {
	svc := NewReportService(&fakeIncomeRepo{})

	totals, err := svc.TotalIncome(context.Background(), repository.DateRange{})
	require.NoError(t, err)
	assert.True(t, totals.TotalIncome.IsZero())
	assert.Equal(t, int64(0), totals.TotalUnits)
	assert.True(t, totals.AverageIncomePerUnit.IsZero())
}

func TestTotalIncomeRespectsDateBounds(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeIncomeRepo{entries: []entity.IncomeEntry{
		makeEntry("a", 1, 10, day.AddDate(0, 0, -2)),
		makeEntry("b", 2, 20, day),
		makeEntry("c", 3, 30, day.AddDate(0, 0, 2)),
	}}
	svc := NewReportService(repo)

	from := day.AddDate(0, 0, -1)
	to := day.AddDate(0, 0, 1)
	totals, err := svc.TotalIncome(context.Background(), repository.DateRange{From: &from, To: &to})
	require.NoError(t, err)
	assert.True(t, totals.TotalIncome.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, int64(2), totals.TotalUnits)
}

func TestIncomeTrendsBySourceRequiresSource(t *testing.T) {
	svc := NewReportService(&fakeIncomeRepo{})

	_, err := svc.IncomeTrendsBySource(context.Background(), "   ", repository.DateRange{}, GranularityDay)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, http.StatusUnprocessableEntity))
}

func TestIncomeTrendsBySourceExactCaseInsensitiveMatch(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeIncomeRepo{entries: []entity.IncomeEntry{
		makeEntry("John", 2, 40, day),
		makeEntry("JOHN", 1, 20, day.AddDate(0, 0, 1)),
		makeEntry("Johnny", 9, 180, day), // not a substring match
	}}
	svc := NewReportService(repo)

	buckets, err := svc.IncomeTrendsBySource(context.Background(), "john", repository.DateRange{}, GranularityDay)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.True(t, buckets[0].TotalIncome.Equal(decimal.NewFromInt(40)))
	assert.True(t, buckets[1].TotalIncome.Equal(decimal.NewFromInt(20)))
}

func TestDashboardStats(t *testing.T) {
	now := time.Now()
	entries := []entity.IncomeEntry{
		makeEntry("old-timer", 4, 80, now.AddDate(0, -6, 0)),
		makeEntry("recent", 2, 40, now.AddDate(0, 0, -3)),
	}
	// Six distinct sources so the top list gets truncated
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		entries = append(entries, makeEntry(name, 1, int64(10+i), now.AddDate(0, 0, -1)))
	}
	svc := NewReportService(&fakeIncomeRepo{entries: entries})

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.Totals.TotalIncome.Equal(decimal.NewFromInt(80+40+10+11+12+13+14)))
	assert.Len(t, stats.TopSources, 5)
	assert.Equal(t, "old-timer", stats.TopSources[0].Source)

	// Only entries from the last 30 days feed the daily trend
	for _, bucket := range stats.DailyTrend {
		assert.GreaterOrEqual(t, bucket.Date, now.AddDate(0, 0, -31).Format("2006-01-02"))
	}
}

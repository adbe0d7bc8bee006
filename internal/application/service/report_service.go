package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Granularity selects the date bucket size for time-series reports
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity maps a query value onto a granularity. Anything that is
// not "month" or "year" falls back to day, matching how clients have always
// called these endpoints.
func ParseGranularity(s string) Granularity {
	switch s {
	case string(GranularityMonth):
		return GranularityMonth
	case string(GranularityYear):
		return GranularityYear
	default:
		return GranularityDay
	}
}

// BucketKey formats a timestamp as its bucket label. The labels sort
// lexicographically in chronological order.
func (g Granularity) BucketKey(t time.Time) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// SourceSummary aggregates the entries of one person
type SourceSummary struct {
	Source               string          `json:"source"`
	TotalIncome          decimal.Decimal `json:"total_income"`
	TotalUnits           int64           `json:"total_units"`
	AverageIncomePerUnit decimal.Decimal `json:"average_income_per_unit"`
}

// DateBucket aggregates the entries of one day, month or year
type DateBucket struct {
	Date        string          `json:"date"`
	TotalIncome decimal.Decimal `json:"total_income"`
	TotalUnits  int64           `json:"total_units"`
}

// IncomeTotals aggregates a whole filtered slice of the ledger
type IncomeTotals struct {
	TotalIncome          decimal.Decimal `json:"total_income"`
	TotalUnits           int64           `json:"total_units"`
	AverageIncomePerUnit decimal.Decimal `json:"average_income_per_unit"`
}

// DashboardOverview is the combined shop overview
type DashboardOverview struct {
	Totals     *IncomeTotals   `json:"totals"`
	TopSources []SourceSummary `json:"top_sources"`
	DailyTrend []DateBucket    `json:"daily_trend"`
}

// ReportService computes read-only summaries over the income ledger.
// Entries are fetched in one tenant-scoped range query and aggregated in
// process, so every report sees a single consistent snapshot.
type ReportService struct {
	incomeRepo repository.IncomeRepository
}

// NewReportService creates a new report service
func NewReportService(incomeRepo repository.IncomeRepository) *ReportService {
	return &ReportService{incomeRepo: incomeRepo}
}

// IncomeBySource groups entries by normalized source name, ordered by total
// income descending. "John" and "john" land in the same group.
func (s *ReportService) IncomeBySource(ctx context.Context, rng repository.DateRange) ([]SourceSummary, error) {
	entries, err := s.incomeRepo.ListInRange(ctx, rng, "")
	if err != nil {
		return nil, err
	}
	return aggregateBySource(entries), nil
}

// IncomeByDate groups entries into date buckets at the requested
// granularity, ordered by bucket ascending.
func (s *ReportService) IncomeByDate(ctx context.Context, rng repository.DateRange, g Granularity) ([]DateBucket, error) {
	entries, err := s.incomeRepo.ListInRange(ctx, rng, "")
	if err != nil {
		return nil, err
	}
	return aggregateByDate(entries, g), nil
}

// TotalIncome sums the whole filtered slice. An empty slice yields a
// zero-valued result, not an error.
func (s *ReportService) TotalIncome(ctx context.Context, rng repository.DateRange) (*IncomeTotals, error) {
	entries, err := s.incomeRepo.ListInRange(ctx, rng, "")
	if err != nil {
		return nil, err
	}
	return aggregateTotals(entries), nil
}

// IncomeTrendsBySource returns the date-bucketed series for a single person.
// The source parameter is required and matched case-insensitively against
// the whole name, not as a substring.
func (s *ReportService) IncomeTrendsBySource(ctx context.Context, source string, rng repository.DateRange, g Granularity) ([]DateBucket, error) {
	sourceKey := entity.NormalizeSource(source)
	if sourceKey == "" {
		return nil, apperror.NewFieldError("source", "source is required")
	}

	entries, err := s.incomeRepo.ListInRange(ctx, rng, sourceKey)
	if err != nil {
		return nil, err
	}
	return aggregateByDate(entries, g), nil
}

// DashboardStats returns the shop overview: all-time totals, the five
// busiest sources, and a daily trend over the last 30 days.
func (s *ReportService) DashboardStats(ctx context.Context) (*DashboardOverview, error) {
	entries, err := s.incomeRepo.ListInRange(ctx, repository.DateRange{}, "")
	if err != nil {
		return nil, err
	}

	topSources := aggregateBySource(entries)
	if len(topSources) > 5 {
		topSources = topSources[:5]
	}

	from := time.Now().AddDate(0, 0, -30)
	recent := make([]entity.IncomeEntry, 0, len(entries))
	for _, e := range entries {
		if !e.CreatedAt.Before(from) {
			recent = append(recent, e)
		}
	}

	return &DashboardOverview{
		Totals:     aggregateTotals(entries),
		TopSources: topSources,
		DailyTrend: aggregateByDate(recent, GranularityDay),
	}, nil
}

func aggregateBySource(entries []entity.IncomeEntry) []SourceSummary {
	type group struct {
		display string
		income  decimal.Decimal
		units   int64
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, e := range entries {
		key := e.SourceKey
		if key == "" {
			key = entity.NormalizeSource(e.Source)
		}
		g, ok := groups[key]
		if !ok {
			g = &group{display: key, income: decimal.Zero}
			groups[key] = g
			order = append(order, key)
		}
		g.income = g.income.Add(e.GrossIncome)
		g.units += int64(e.UnitsServed)
	}

	summaries := make([]SourceSummary, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		summaries = append(summaries, SourceSummary{
			Source:               g.display,
			TotalIncome:          g.income,
			TotalUnits:           g.units,
			AverageIncomePerUnit: safeAverage(g.income, g.units),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		cmp := summaries[i].TotalIncome.Cmp(summaries[j].TotalIncome)
		if cmp != 0 {
			return cmp > 0
		}
		return summaries[i].Source < summaries[j].Source
	})

	return summaries
}

func aggregateByDate(entries []entity.IncomeEntry, g Granularity) []DateBucket {
	type bucket struct {
		income decimal.Decimal
		units  int64
	}

	buckets := make(map[string]*bucket)
	for _, e := range entries {
		key := g.BucketKey(e.CreatedAt)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{income: decimal.Zero}
			buckets[key] = b
		}
		b.income = b.income.Add(e.GrossIncome)
		b.units += int64(e.UnitsServed)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]DateBucket, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		result = append(result, DateBucket{
			Date:        key,
			TotalIncome: b.income,
			TotalUnits:  b.units,
		})
	}

	return result
}

func aggregateTotals(entries []entity.IncomeEntry) *IncomeTotals {
	income := decimal.Zero
	var units int64
	for _, e := range entries {
		income = income.Add(e.GrossIncome)
		units += int64(e.UnitsServed)
	}

	return &IncomeTotals{
		TotalIncome:          income,
		TotalUnits:           units,
		AverageIncomePerUnit: safeAverage(income, units),
	}
}

// safeAverage guards the divide-by-zero case, reporting zero for groups
// with no units served
func safeAverage(income decimal.Decimal, units int64) decimal.Decimal {
	if units == 0 {
		return decimal.Zero
	}
	return income.Div(decimal.NewFromInt(units))
}

package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeEntryRequest represents a create or update income entry request.
// Monetary fields never come from the client; they are derived server-side
// from the shop's pricing settings.
type IncomeEntryRequest struct {
	Source      string `json:"source" binding:"required"`
	UnitsServed *int   `json:"units_served" binding:"required"`
	// IsOwnerEntry is optional; when omitted it defaults from the caller's
	// role (owners record owner entries, everyone else employee entries)
	IsOwnerEntry *bool `json:"is_owner_entry"`
}

// IncomeSettingsRequest represents a request to set the shop's pricing rule
type IncomeSettingsRequest struct {
	UnitPrice            decimal.Decimal `json:"unit_price" binding:"required"`
	OwnerSharePercentage decimal.Decimal `json:"owner_share_percentage" binding:"required"`
}

// DateRangeQuery carries the optional date_from/date_to filter shared by the
// ledger listing and every report endpoint. Values may be RFC 3339 timestamps
// or bare dates.
type DateRangeQuery struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

const dateOnlyLayout = "2006-01-02"

// ParseFrom parses the lower bound. A bare date means the start of that day.
func (q *DateRangeQuery) ParseFrom() (*time.Time, error) {
	return parseBound(q.DateFrom, false)
}

// ParseTo parses the upper bound. A bare date is widened to the end of that
// day so a range like date_to=2026-03-15 includes everything recorded on the
// 15th.
func (q *DateRangeQuery) ParseTo() (*time.Time, error) {
	return parseBound(q.DateTo, true)
}

func parseBound(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

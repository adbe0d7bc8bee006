package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRangeEmpty(t *testing.T) {
	q := DateRangeQuery{}

	from, err := q.ParseFrom()
	require.NoError(t, err)
	assert.Nil(t, from)

	to, err := q.ParseTo()
	require.NoError(t, err)
	assert.Nil(t, to)
}

func TestParseDateToWidensBareDateToEndOfDay(t *testing.T) {
	q := DateRangeQuery{DateFrom: "2026-03-15", DateTo: "2026-03-15"}

	from, err := q.ParseFrom()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *from)

	to, err := q.ParseTo()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 999000000, time.UTC), *to)
}

func TestParseDateRangeRFC3339Passthrough(t *testing.T) {
	q := DateRangeQuery{DateTo: "2026-03-15T10:30:00Z"}

	to, err := q.ParseTo()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC), *to, "explicit timestamps are not widened")
}

func TestParseDateRangeInvalid(t *testing.T) {
	q := DateRangeQuery{DateFrom: "15/03/2026"}

	_, err := q.ParseFrom()
	require.Error(t, err)
}

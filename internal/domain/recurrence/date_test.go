//go:build unit

package recurrence_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/recurrence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	parsed, err := recurrence.ParseDate("2024-02-28")
	require.NoError(t, err)

	assert.Equal(t, d(2024, 2, 29), parsed.AddDays(1))
	assert.Equal(t, d(2024, 3, 1), parsed.AddDays(2))
	assert.Equal(t, 2, d(2024, 3, 1).DaysSince(parsed))
	assert.Equal(t, 13, d(2025, 3, 1).MonthsSince(d(2024, 2, 28)))
	assert.Equal(t, time.Wednesday, parsed.Weekday())
	assert.Equal(t, "2024-02-28", parsed.String())

	_, err = recurrence.ParseDate("2024/02/28")
	assert.ErrorIs(t, err, recurrence.ErrInvalidDate)
}

func TestDateText(t *testing.T) {
	var got recurrence.Date
	require.NoError(t, got.UnmarshalText([]byte("2024-01-31")))
	assert.Equal(t, d(2024, 1, 31), got)

	b, err := got.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", string(b))
}

func TestTimeOfDay(t *testing.T) {
	tod, err := recurrence.ParseTimeOfDay("09:45")
	require.NoError(t, err)
	assert.Equal(t, 9*60+45, tod.Minutes())
	assert.Equal(t, tod, recurrence.TimeOfDayFromMinutes(tod.Minutes()))
	assert.Equal(t, "09:45", tod.String())

	_, err = recurrence.ParseTimeOfDay("9h45")
	assert.ErrorIs(t, err, recurrence.ErrInvalidTimeOfDay)
}

//go:build unit

package recurrence_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/recurrence"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() recurrence.Params {
	return recurrence.Params{
		ResourceID:     uuid.New(),
		UserID:         uuid.New(),
		Pattern:        recurrence.PatternWeekly,
		StartDate:      d(2024, 1, 1),
		EndDate:        d(2024, 3, 31),
		StartTime:      recurrence.TimeOfDay{Hour: 9},
		EndTime:        recurrence.TimeOfDay{Hour: 10, Minute: 30},
		Weekdays:       []time.Weekday{time.Wednesday, time.Monday, time.Monday},
		Interval:       1,
		MaxOccurrences: 20,
	}
}

func TestValidate(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		rule, err := recurrence.Validate(validParams())

		require.NoError(t, err)
		assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, rule.Weekdays)
	})

	tests := []struct {
		name   string
		mutate func(*recurrence.Params)
		errIs  error
	}{
		{name: "未対応パターンNG", mutate: func(p *recurrence.Params) { p.Pattern = "DAILY" }, errIs: recurrence.ErrUnsupportedPattern},
		{name: "日付範囲逆転NG", mutate: func(p *recurrence.Params) { p.EndDate = d(2023, 12, 31) }, errIs: recurrence.ErrInvalidDateRange},
		{name: "開始日なしNG", mutate: func(p *recurrence.Params) { p.StartDate = recurrence.Date{} }, errIs: recurrence.ErrInvalidDate},
		{name: "時間帯逆転NG", mutate: func(p *recurrence.Params) { p.EndTime = recurrence.TimeOfDay{Hour: 9} }, errIs: recurrence.ErrInvalidTimeWindow},
		{name: "不正な時刻NG", mutate: func(p *recurrence.Params) { p.EndTime = recurrence.TimeOfDay{Hour: 25} }, errIs: recurrence.ErrInvalidTimeOfDay},
		{name: "曜日なしNG", mutate: func(p *recurrence.Params) { p.Weekdays = nil }, errIs: recurrence.ErrMissingWeekdays},
		{name: "間隔0NG", mutate: func(p *recurrence.Params) { p.Interval = 0 }, errIs: recurrence.ErrInvalidInterval},
		{name: "上限超過NG", mutate: func(p *recurrence.Params) { p.MaxOccurrences = recurrence.MaxOccurrencesCeiling + 1 }, errIs: recurrence.ErrInvalidMaxOccurrence},
		{name: "上限0NG", mutate: func(p *recurrence.Params) { p.MaxOccurrences = 0 }, errIs: recurrence.ErrInvalidMaxOccurrence},
		{
			name: "月次の日付範囲外NG",
			mutate: func(p *recurrence.Params) {
				p.Pattern = recurrence.PatternMonthly
				p.DayOfMonth = 32
			},
			errIs: recurrence.ErrInvalidDayOfMonth,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			_, err := recurrence.Validate(p)
			require.ErrorIs(t, err, tt.errIs)

			cfg, err := recurrence.NewConfig(p, time.Now())
			require.Nil(t, cfg)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestConfigCounters(t *testing.T) {
	p := validParams()
	p.MaxOccurrences = 2
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cfg, err := recurrence.NewConfig(p, now)
	require.NoError(t, err)
	assert.True(t, cfg.Active())

	require.NoError(t, cfg.RecordGenerated(now))
	require.NoError(t, cfg.RecordGenerated(now))
	assert.True(t, cfg.Exhausted())
	assert.ErrorIs(t, cfg.RecordGenerated(now), recurrence.ErrOccurrenceCapReached)
	assert.Equal(t, 2, cfg.GeneratedCount())

	cfg.Deactivate(now)
	assert.False(t, cfg.Active())
	assert.True(t, cfg.Expired(d(2024, 4, 1)))
	assert.False(t, cfg.Expired(d(2024, 3, 31)))
}

func TestConfigWindow(t *testing.T) {
	cfg, err := recurrence.NewConfig(validParams(), time.Now())
	require.NoError(t, err)
	tokyo := time.FixedZone("JST", 9*60*60)

	start, end := cfg.Window(d(2024, 1, 8), tokyo)

	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, tokyo), start)
	assert.Equal(t, time.Date(2024, 1, 8, 10, 30, 0, 0, tokyo), end)
}

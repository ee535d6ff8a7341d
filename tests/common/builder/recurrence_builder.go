//go:build unit || e2e

package builder

import (
	"time"

	"facility-booking/internal/domain/recurrence"
	reqdto "facility-booking/internal/handler/dto/request"

	"github.com/google/uuid"
)

type RecurrenceBuilder struct {
	ResourceID     uuid.UUID
	UserID         uuid.UUID
	Pattern        recurrence.Pattern
	StartDate      recurrence.Date
	EndDate        recurrence.Date
	StartTime      recurrence.TimeOfDay
	EndTime        recurrence.TimeOfDay
	Weekdays       []time.Weekday
	DayOfMonth     int
	Interval       int
	MaxOccurrences int
}

// NewRecurrenceBuilder describes a weekly Mon/Wed 10:00-11:00 rule over the
// next four weeks.
func NewRecurrenceBuilder() *RecurrenceBuilder {
	today := recurrence.DateOf(time.Now().UTC())
	return &RecurrenceBuilder{
		ResourceID:     uuid.New(),
		UserID:         uuid.New(),
		Pattern:        recurrence.PatternWeekly,
		StartDate:      today.AddDays(1),
		EndDate:        today.AddDays(28),
		StartTime:      recurrence.TimeOfDayFromMinutes(10 * 60),
		EndTime:        recurrence.TimeOfDayFromMinutes(11 * 60),
		Weekdays:       []time.Weekday{time.Monday, time.Wednesday},
		Interval:       1,
		MaxOccurrences: 10,
	}
}

func (b *RecurrenceBuilder) With(mutate func(*RecurrenceBuilder)) *RecurrenceBuilder {
	mutate(b)
	return b
}

func (b *RecurrenceBuilder) Monthly(day int) *RecurrenceBuilder {
	b.Pattern = recurrence.PatternMonthly
	b.Weekdays = nil
	b.DayOfMonth = day
	return b
}

func (b *RecurrenceBuilder) BuildParams() recurrence.Params {
	return recurrence.Params{
		ResourceID:     b.ResourceID,
		UserID:         b.UserID,
		Pattern:        b.Pattern,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Weekdays:       b.Weekdays,
		DayOfMonth:     b.DayOfMonth,
		Interval:       b.Interval,
		MaxOccurrences: b.MaxOccurrences,
	}
}

func (b *RecurrenceBuilder) BuildDomain() *recurrence.Config {
	cfg, err := recurrence.NewConfig(b.BuildParams(), time.Now().UTC())
	if err != nil {
		panic(err)
	}
	return cfg
}

func (b *RecurrenceBuilder) BuildRequestDTO() reqdto.RecurrenceRequest {
	weekdays := make([]int, len(b.Weekdays))
	for i, d := range b.Weekdays {
		weekdays[i] = int(d)
	}
	return reqdto.RecurrenceRequest{
		ResourceID:     b.ResourceID,
		Pattern:        b.Pattern.String(),
		StartDate:      b.StartDate.String(),
		EndDate:        b.EndDate.String(),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		Weekdays:       weekdays,
		DayOfMonth:     b.DayOfMonth,
		Interval:       b.Interval,
		MaxOccurrences: b.MaxOccurrences,
	}
}

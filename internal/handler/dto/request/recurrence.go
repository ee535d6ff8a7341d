package request

import (
	"time"

	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type RecurrenceRequest struct {
	ResourceID     uuid.UUID `json:"resource_id" binding:"required"`
	Pattern        string    `json:"pattern" binding:"required"`
	StartDate      string    `json:"start_date" binding:"required"`
	EndDate        string    `json:"end_date" binding:"required"`
	StartTime      string    `json:"start_time" binding:"required"`
	EndTime        string    `json:"end_time" binding:"required"`
	Weekdays       []int     `json:"weekdays" binding:"omitempty,dive,min=0,max=6"`
	DayOfMonth     int       `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	Interval       int       `json:"interval" binding:"omitempty,min=1"`
	MaxOccurrences int       `json:"max_occurrences" binding:"required,min=1,max=100"`
}

// ToParams parses the textual fields. Parse failures are validation errors;
// the rest of the checks happen in recurrence.Validate.
func (r RecurrenceRequest) ToParams(userID uuid.UUID) (recurrence.Params, error) {
	startDate, err := recurrence.ParseDate(r.StartDate)
	if err != nil {
		return recurrence.Params{}, errs.Mark(err, errs.ErrValidation)
	}
	endDate, err := recurrence.ParseDate(r.EndDate)
	if err != nil {
		return recurrence.Params{}, errs.Mark(err, errs.ErrValidation)
	}
	startTime, err := recurrence.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return recurrence.Params{}, errs.Mark(err, errs.ErrValidation)
	}
	endTime, err := recurrence.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return recurrence.Params{}, errs.Mark(err, errs.ErrValidation)
	}

	weekdays := make([]time.Weekday, len(r.Weekdays))
	for i, d := range r.Weekdays {
		weekdays[i] = time.Weekday(d)
	}
	interval := r.Interval
	if interval == 0 {
		interval = 1
	}

	return recurrence.Params{
		ResourceID:     r.ResourceID,
		UserID:         userID,
		Pattern:        recurrence.Pattern(r.Pattern),
		StartDate:      startDate,
		EndDate:        endDate,
		StartTime:      startTime,
		EndTime:        endTime,
		Weekdays:       weekdays,
		DayOfMonth:     r.DayOfMonth,
		Interval:       interval,
		MaxOccurrences: r.MaxOccurrences,
	}, nil
}

type GenerateRequest struct {
	// Until is an inclusive YYYY-MM-DD limit. Empty generates up to the end date.
	Until string `json:"until"`
}

func (r GenerateRequest) Limit() (recurrence.Date, error) {
	if r.Until == "" {
		return recurrence.Date{}, nil
	}
	d, err := recurrence.ParseDate(r.Until)
	if err != nil {
		return recurrence.Date{}, errs.Mark(err, errs.ErrValidation)
	}
	return d, nil
}

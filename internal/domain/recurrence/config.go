package recurrence

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// MaxOccurrencesCeiling bounds every config regardless of what the caller asks for.
const MaxOccurrencesCeiling = 100

var (
	ErrUnsupportedPattern   = errors.New("recurrence: unsupported pattern")
	ErrInvalidDateRange     = errors.New("recurrence: end date must not be before start date")
	ErrInvalidTimeWindow    = errors.New("recurrence: end time must be after start time")
	ErrMissingWeekdays      = errors.New("recurrence: weekly pattern requires at least one weekday")
	ErrInvalidDayOfMonth    = errors.New("recurrence: day of month must be within 1..31")
	ErrInvalidInterval      = errors.New("recurrence: interval must be at least 1")
	ErrInvalidMaxOccurrence = errors.New("recurrence: max occurrences out of range")
	ErrOccurrenceCapReached = errors.New("recurrence: max occurrences already generated")
)

// Params is the caller-supplied shape of a recurrence before validation.
type Params struct {
	ResourceID     uuid.UUID
	UserID         uuid.UUID
	Pattern        Pattern
	StartDate      Date
	EndDate        Date
	StartTime      TimeOfDay
	EndTime        TimeOfDay
	Weekdays       []time.Weekday
	DayOfMonth     int
	Interval       int
	MaxOccurrences int
}

// Validate checks params and returns the Rule they describe. Nothing is
// constructed when it fails.
func Validate(p Params) (Rule, error) {
	if !p.Pattern.IsValid() {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnsupportedPattern, p.Pattern)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return Rule{}, ErrInvalidDate
	}
	if p.EndDate.Before(p.StartDate) {
		return Rule{}, ErrInvalidDateRange
	}
	if !p.StartTime.valid() || !p.EndTime.valid() {
		return Rule{}, ErrInvalidTimeOfDay
	}
	if p.EndTime.Minutes() <= p.StartTime.Minutes() {
		return Rule{}, ErrInvalidTimeWindow
	}
	if p.Interval < 1 {
		return Rule{}, ErrInvalidInterval
	}
	if p.MaxOccurrences < 1 || p.MaxOccurrences > MaxOccurrencesCeiling {
		return Rule{}, fmt.Errorf("%w: %d not within 1..%d", ErrInvalidMaxOccurrence, p.MaxOccurrences, MaxOccurrencesCeiling)
	}

	rule := Rule{
		Pattern:        p.Pattern,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Interval:       p.Interval,
		MaxOccurrences: p.MaxOccurrences,
	}
	switch p.Pattern {
	case PatternWeekly:
		if len(p.Weekdays) == 0 {
			return Rule{}, ErrMissingWeekdays
		}
		days := slices.Clone(p.Weekdays)
		slices.Sort(days)
		rule.Weekdays = slices.Compact(days)
		for _, d := range rule.Weekdays {
			if d < time.Sunday || d > time.Saturday {
				return Rule{}, fmt.Errorf("%w: weekday %d", ErrMissingWeekdays, d)
			}
		}
	case PatternMonthly:
		if p.DayOfMonth < 1 || p.DayOfMonth > 31 {
			return Rule{}, ErrInvalidDayOfMonth
		}
		rule.DayOfMonth = p.DayOfMonth
	}
	return rule, nil
}

type Config struct {
	id             uuid.UUID
	resourceID     uuid.UUID
	userID         uuid.UUID
	rule           Rule
	startTime      TimeOfDay
	endTime        TimeOfDay
	active         bool
	generatedCount int
	createdAt      time.Time
	updatedAt      time.Time
}

func NewConfig(p Params, now time.Time) (*Config, error) {
	rule, err := Validate(p)
	if err != nil {
		return nil, err
	}
	return &Config{
		id:         uuid.New(),
		resourceID: p.ResourceID,
		userID:     p.UserID,
		rule:       rule,
		startTime:  p.StartTime,
		endTime:    p.EndTime,
		active:     true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructConfig(
	id, resourceID, userID uuid.UUID,
	rule Rule,
	startTime, endTime TimeOfDay,
	active bool,
	generatedCount int,
	createdAt, updatedAt time.Time,
) *Config {
	return &Config{
		id:             id,
		resourceID:     resourceID,
		userID:         userID,
		rule:           rule,
		startTime:      startTime,
		endTime:        endTime,
		active:         active,
		generatedCount: generatedCount,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Window returns the instants of the occurrence on d in loc.
func (c *Config) Window(d Date, loc *time.Location) (time.Time, time.Time) {
	return d.At(c.startTime, loc), d.At(c.endTime, loc)
}

func (c *Config) Remaining() int {
	return c.rule.MaxOccurrences - c.generatedCount
}

func (c *Config) Exhausted() bool {
	return c.Remaining() <= 0
}

// Expired reports whether no date on or after today can still qualify.
func (c *Config) Expired(today Date) bool {
	return c.rule.EndDate.Before(today)
}

func (c *Config) RecordGenerated(now time.Time) error {
	if c.Exhausted() {
		return ErrOccurrenceCapReached
	}
	c.generatedCount++
	c.updatedAt = now
	return nil
}

func (c *Config) Activate(now time.Time) {
	c.active = true
	c.updatedAt = now
}

func (c *Config) Deactivate(now time.Time) {
	c.active = false
	c.updatedAt = now
}

func (c *Config) ID() uuid.UUID         { return c.id }
func (c *Config) ResourceID() uuid.UUID { return c.resourceID }
func (c *Config) UserID() uuid.UUID     { return c.userID }
func (c *Config) Rule() Rule            { return c.rule }
func (c *Config) Pattern() Pattern      { return c.rule.Pattern }
func (c *Config) StartTime() TimeOfDay  { return c.startTime }
func (c *Config) EndTime() TimeOfDay    { return c.endTime }
func (c *Config) Active() bool          { return c.active }
func (c *Config) GeneratedCount() int   { return c.generatedCount }
func (c *Config) CreatedAt() time.Time  { return c.createdAt }
func (c *Config) UpdatedAt() time.Time  { return c.updatedAt }

// Occurrence is one ledger entry: either the reservation created for Date or
// the reason it was skipped.
type Occurrence struct {
	ConfigID      uuid.UUID
	Date          Date
	ReservationID *uuid.UUID
	SkipReason    string
	CreatedAt     time.Time
}

func (o Occurrence) Skipped() bool {
	return o.ReservationID == nil
}

package reservation

import (
	"fmt"
	"time"
)

// TimeSlot is the half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps treats touching endpoints as free: [9,10) and [10,11) do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// DurationPolicy bounds the length of a single reservation.
type DurationPolicy struct {
	Min time.Duration
	Max time.Duration
}

func (p DurationPolicy) Validate(slot TimeSlot) error {
	d := slot.Duration()
	if d < p.Min || (p.Max > 0 && d > p.Max) {
		return fmt.Errorf("%w: %s not within [%s, %s]", ErrDurationOutOfRange, d, p.Min, p.Max)
	}
	return nil
}

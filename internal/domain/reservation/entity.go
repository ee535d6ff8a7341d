package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot    = errors.New("start time must be before end time")
	ErrDurationOutOfRange = errors.New("reservation duration out of range")
	ErrStartInPast        = errors.New("start time cannot be in the past")
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrTransitionRejected = errors.New("reservation status transition not allowed")
)

type Reservation struct {
	id           uuid.UUID
	resourceID   uuid.UUID
	userID       uuid.UUID
	timeSlot     TimeSlot
	status       Status
	reason       string
	recurrenceID *uuid.UUID
	createdAt    time.Time
	updatedAt    time.Time
}

// NewReservation creates a PENDING reservation and its creation event.
func NewReservation(
	now time.Time,
	policy DurationPolicy,
	resourceID, userID uuid.UUID,
	slot TimeSlot,
	recurrenceID *uuid.UUID,
) (*Reservation, Event, error) {
	if slot.Start().Before(now) {
		return nil, Event{}, ErrStartInPast
	}
	if err := policy.Validate(slot); err != nil {
		return nil, Event{}, err
	}

	r := &Reservation{
		id:           uuid.New(),
		resourceID:   resourceID,
		userID:       userID,
		timeSlot:     slot,
		status:       StatusPending,
		recurrenceID: recurrenceID,
		createdAt:    now,
		updatedAt:    now,
	}
	return r, r.event("", "", now), nil
}

func ReconstructReservation(
	id, resourceID, userID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	reason string,
	recurrenceID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		resourceID:   resourceID,
		userID:       userID,
		timeSlot:     timeSlot,
		status:       status,
		reason:       reason,
		recurrenceID: recurrenceID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Reservation) Approve(now time.Time) (Event, error) {
	return r.transition(StatusApproved, "", now)
}

func (r *Reservation) Reject(now time.Time, reason string) (Event, error) {
	return r.transition(StatusRejected, reason, now)
}

func (r *Reservation) AutoReject(now time.Time, reason string) (Event, error) {
	return r.transition(StatusAutoRejected, reason, now)
}

func (r *Reservation) Cancel(now time.Time, reason string) (Event, error) {
	return r.transition(StatusCancelled, reason, now)
}

func (r *Reservation) transition(to Status, reason string, now time.Time) (Event, error) {
	if !r.status.CanTransitionTo(to) {
		return Event{}, fmt.Errorf("%w: %s -> %s", ErrTransitionRejected, r.status, to)
	}
	from := r.status
	r.status = to
	r.reason = reason
	r.updatedAt = now
	return r.event(from, reason, now), nil
}

func (r *Reservation) event(from Status, reason string, now time.Time) Event {
	return Event{
		ReservationID: r.id,
		ResourceID:    r.resourceID,
		UserID:        r.userID,
		From:          from,
		To:            r.status,
		Reason:        reason,
		Slot:          r.timeSlot,
		OccurredAt:    now,
	}
}

func (r *Reservation) IsActive() bool {
	return !r.status.IsTerminal()
}

func (r *Reservation) HasStarted(now time.Time) bool {
	return !now.Before(r.timeSlot.Start())
}

func (r *Reservation) ID() uuid.UUID            { return r.id }
func (r *Reservation) ResourceID() uuid.UUID    { return r.resourceID }
func (r *Reservation) UserID() uuid.UUID        { return r.userID }
func (r *Reservation) TimeSlot() TimeSlot       { return r.timeSlot }
func (r *Reservation) Status() Status           { return r.status }
func (r *Reservation) Reason() string           { return r.reason }
func (r *Reservation) RecurrenceID() *uuid.UUID { return r.recurrenceID }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time     { return r.updatedAt }

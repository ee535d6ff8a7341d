package alert

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidType     = errors.New("invalid alert type")
	ErrInvalidState    = errors.New("invalid alert state")
	ErrInvalidChannel  = errors.New("invalid alert channel")
	ErrAlreadyTerminal = errors.New("alert is already in a terminal state")
	ErrReminderElapsed = errors.New("reminder time already elapsed")
	ErrNotDue          = errors.New("alert is not due or already claimed")
)

type Alert struct {
	id            uuid.UUID
	reservationID uuid.UUID
	alertType     Type
	channel       Channel
	recipient     string
	scheduledAt   time.Time
	state         State
	attemptCount  int
	failureReason string
	sentAt        *time.Time
	claimedUntil  *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewImmediate creates a PENDING alert due now.
func NewImmediate(reservationID uuid.UUID, t Type, ch Channel, recipient string, now time.Time) *Alert {
	return &Alert{
		id:            uuid.New(),
		reservationID: reservationID,
		alertType:     t,
		channel:       ch,
		recipient:     recipient,
		scheduledAt:   now,
		state:         StatePending,
		createdAt:     now,
		updatedAt:     now,
	}
}

// NewReminder creates a SCHEDULED alert firing t.Lead() before start. It
// refuses to create a backdated reminder.
func NewReminder(reservationID uuid.UUID, t Type, ch Channel, recipient string, start, now time.Time) (*Alert, error) {
	if !t.IsReminder() {
		return nil, fmt.Errorf("%w: %q is not a reminder", ErrInvalidType, t)
	}
	at := start.Add(-t.Lead())
	if at.Before(now) {
		return nil, ErrReminderElapsed
	}
	return &Alert{
		id:            uuid.New(),
		reservationID: reservationID,
		alertType:     t,
		channel:       ch,
		recipient:     recipient,
		scheduledAt:   at,
		state:         StateScheduled,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructAlert(
	id, reservationID uuid.UUID,
	t Type,
	ch Channel,
	recipient string,
	scheduledAt time.Time,
	state State,
	attemptCount int,
	failureReason string,
	sentAt *time.Time,
	claimedUntil *time.Time,
	createdAt, updatedAt time.Time,
) *Alert {
	return &Alert{
		id:            id,
		reservationID: reservationID,
		alertType:     t,
		channel:       ch,
		recipient:     recipient,
		scheduledAt:   scheduledAt,
		state:         state,
		attemptCount:  attemptCount,
		failureReason: failureReason,
		sentAt:        sentAt,
		claimedUntil:  claimedUntil,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// IsDue reports whether a sender may pick the alert up at now. A claimed
// alert becomes due again only once its claim has lapsed.
func (a *Alert) IsDue(now time.Time) bool {
	if a.state.IsTerminal() || a.scheduledAt.After(now) {
		return false
	}
	return a.claimedUntil == nil || !now.Before(*a.claimedUntil)
}

// Claim reserves the alert for one delivery attempt until the given time.
func (a *Alert) Claim(now, until time.Time) error {
	if a.state.IsTerminal() {
		return ErrAlreadyTerminal
	}
	if !a.IsDue(now) {
		return ErrNotDue
	}
	a.claimedUntil = &until
	a.updatedAt = now
	return nil
}

func (a *Alert) MarkSent(now time.Time) error {
	if a.state.IsTerminal() {
		return ErrAlreadyTerminal
	}
	a.state = StateSent
	a.sentAt = &now
	a.claimedUntil = nil
	a.failureReason = ""
	a.updatedAt = now
	return nil
}

// RecordFailure counts one failed attempt. The alert stays eligible until
// attemptCount reaches maxAttempts, then becomes FAILED. It reports whether
// the alert is now exhausted.
func (a *Alert) RecordFailure(now time.Time, reason string, maxAttempts int) (bool, error) {
	if a.state.IsTerminal() {
		return false, ErrAlreadyTerminal
	}
	a.attemptCount++
	a.claimedUntil = nil
	a.failureReason = reason
	a.updatedAt = now
	if a.attemptCount >= maxAttempts {
		a.state = StateFailed
		return true, nil
	}
	return false, nil
}

func (a *Alert) Cancel(now time.Time) error {
	if a.state.IsTerminal() {
		return ErrAlreadyTerminal
	}
	a.state = StateCancelled
	a.claimedUntil = nil
	a.updatedAt = now
	return nil
}

func (a *Alert) ID() uuid.UUID            { return a.id }
func (a *Alert) ReservationID() uuid.UUID { return a.reservationID }
func (a *Alert) Type() Type               { return a.alertType }
func (a *Alert) Channel() Channel         { return a.channel }
func (a *Alert) Recipient() string        { return a.recipient }
func (a *Alert) ScheduledAt() time.Time   { return a.scheduledAt }
func (a *Alert) State() State             { return a.state }
func (a *Alert) AttemptCount() int        { return a.attemptCount }
func (a *Alert) FailureReason() string    { return a.failureReason }
func (a *Alert) SentAt() *time.Time       { return a.sentAt }
func (a *Alert) ClaimedUntil() *time.Time { return a.claimedUntil }
func (a *Alert) CreatedAt() time.Time     { return a.createdAt }
func (a *Alert) UpdatedAt() time.Time     { return a.updatedAt }

package alert

import (
	"fmt"
	"time"

	"facility-booking/internal/domain/reservation"
)

type Type string

const (
	TypeApproved          Type = "APPROVED"
	TypeRejected          Type = "REJECTED"
	TypeCancelled         Type = "CANCELLED"
	TypeAutoRejected      Type = "AUTO_REJECTED"
	TypeNewReservation    Type = "NEW_RESERVATION_FOR_ADMIN"
	TypeReminder24Hours   Type = "REMINDER_24H"
	TypeReminder2Hours    Type = "REMINDER_2H"
	TypeReminder30Minutes Type = "REMINDER_30M"
)

type typeInfo struct {
	subject string
	lead    time.Duration
}

var typeTable = map[Type]typeInfo{
	TypeApproved:          {subject: "Your reservation was approved"},
	TypeRejected:          {subject: "Your reservation was rejected"},
	TypeCancelled:         {subject: "Your reservation was cancelled"},
	TypeAutoRejected:      {subject: "Your reservation was rejected due to a conflicting approval"},
	TypeNewReservation:    {subject: "New reservation awaiting approval"},
	TypeReminder24Hours:   {subject: "Reminder: your reservation starts in 24 hours", lead: 24 * time.Hour},
	TypeReminder2Hours:    {subject: "Reminder: your reservation starts in 2 hours", lead: 2 * time.Hour},
	TypeReminder30Minutes: {subject: "Reminder: your reservation starts in 30 minutes", lead: 30 * time.Minute},
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	_, ok := typeTable[t]
	return ok
}

func (t Type) Describe() string {
	return typeTable[t].subject
}

func (t Type) IsReminder() bool {
	return typeTable[t].lead > 0
}

// Lead is how long before the reservation start a reminder fires.
func (t Type) Lead() time.Duration {
	return typeTable[t].lead
}

// ParseReminders maps configured names to reminder types.
func ParseReminders(names []string) ([]Type, error) {
	out := make([]Type, 0, len(names))
	for _, n := range names {
		t, err := ParseType(n)
		if err != nil {
			return nil, err
		}
		if !t.IsReminder() {
			return nil, fmt.Errorf("%w: %q is not a reminder", ErrInvalidType, n)
		}
		out = append(out, t)
	}
	return out, nil
}

// TypeForTransition maps a lifecycle target status to its immediate alert.
func TypeForTransition(to reservation.Status) (Type, bool) {
	switch to {
	case reservation.StatusApproved:
		return TypeApproved, true
	case reservation.StatusRejected:
		return TypeRejected, true
	case reservation.StatusAutoRejected:
		return TypeAutoRejected, true
	case reservation.StatusCancelled:
		return TypeCancelled, true
	default:
		return "", false
	}
}

type State string

const (
	StatePending   State = "PENDING"
	StateScheduled State = "SCHEDULED"
	StateSent      State = "SENT"
	StateFailed    State = "FAILED"
	StateCancelled State = "CANCELLED"
)

var terminalStates = map[State]bool{
	StatePending:   false,
	StateScheduled: false,
	StateSent:      true,
	StateFailed:    true,
	StateCancelled: true,
}

func ParseState(s string) (State, error) {
	st := State(s)
	if _, ok := terminalStates[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return st, nil
}

func (s State) String() string { return string(s) }

func (s State) IsTerminal() bool {
	return terminalStates[s]
}

type Channel string

const (
	ChannelEmail  Channel = "EMAIL"
	ChannelSMS    Channel = "SMS"
	ChannelPush   Channel = "PUSH"
	ChannelSocket Channel = "SOCKET"
)

func ParseChannel(s string) (Channel, error) {
	switch c := Channel(s); c {
	case ChannelEmail, ChannelSMS, ChannelPush, ChannelSocket:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, s)
	}
}

func ParseChannels(names []string) ([]Channel, error) {
	out := make([]Channel, 0, len(names))
	for _, n := range names {
		c, err := ParseChannel(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (c Channel) String() string { return string(c) }

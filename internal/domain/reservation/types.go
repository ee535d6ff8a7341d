package reservation

import "fmt"

type Status string

const (
	StatusPending      Status = "PENDING"
	StatusApproved     Status = "APPROVED"
	StatusRejected     Status = "REJECTED"
	StatusAutoRejected Status = "AUTO_REJECTED"
	StatusCancelled    Status = "CANCELLED"
)

type statusInfo struct {
	description string
	terminal    bool
	next        []Status
}

var statusTable = map[Status]statusInfo{
	StatusPending: {
		description: "awaiting approval",
		next:        []Status{StatusApproved, StatusRejected, StatusAutoRejected, StatusCancelled},
	},
	StatusApproved: {
		description: "approved and holding the slot",
		next:        []Status{StatusCancelled},
	},
	StatusRejected:     {description: "rejected by an administrator", terminal: true},
	StatusAutoRejected: {description: "rejected because an overlapping reservation was approved", terminal: true},
	StatusCancelled:    {description: "cancelled", terminal: true},
}

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusAutoRejected, StatusCancelled}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusTable[s]
	return ok
}

func (s Status) Describe() string {
	return statusTable[s].description
}

func (s Status) IsTerminal() bool {
	return statusTable[s].terminal
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, n := range statusTable[s].next {
		if n == to {
			return true
		}
	}
	return false
}

package reservation

import (
	"time"

	"github.com/google/uuid"
)

// Event records one lifecycle step. From is empty for creation.
type Event struct {
	ReservationID uuid.UUID
	ResourceID    uuid.UUID
	UserID        uuid.UUID
	From          Status
	To            Status
	Reason        string
	Slot          TimeSlot
	OccurredAt    time.Time
}

func (e Event) IsCreation() bool {
	return e.From == ""
}

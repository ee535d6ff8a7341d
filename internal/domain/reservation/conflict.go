package reservation

import "github.com/google/uuid"

// BlocksApproval reports whether a reservation in status s occupies its slot.
// Only APPROVED reservations do; PENDING ones may overlap each other freely.
func BlocksApproval(s Status) bool {
	return s == StatusApproved
}

// Conflicts returns the existing reservations that would block slot,
// ignoring the reservation identified by self.
func Conflicts(slot TimeSlot, existing []*Reservation, self uuid.UUID) []*Reservation {
	var out []*Reservation
	for _, r := range existing {
		if r.id == self || !BlocksApproval(r.status) {
			continue
		}
		if r.timeSlot.Overlaps(slot) {
			out = append(out, r)
		}
	}
	return out
}

// PendingOverlapping returns PENDING reservations on the same resource whose
// slot overlaps approved. These are auto-rejected once approved commits.
func PendingOverlapping(approved *Reservation, candidates []*Reservation) []*Reservation {
	var out []*Reservation
	for _, r := range candidates {
		if r.id == approved.id || r.resourceID != approved.resourceID || r.status != StatusPending {
			continue
		}
		if r.timeSlot.Overlaps(approved.timeSlot) {
			out = append(out, r)
		}
	}
	return out
}

//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func existing(t *testing.T, resourceID uuid.UUID, status reservation.Status, startHour, endHour int) *reservation.Reservation {
	t.Helper()
	return reservation.ReconstructReservation(
		uuid.New(), resourceID, uuid.New(), slotAt(t, startHour, endHour), status, "", nil, baseNow, baseNow,
	)
}

func TestConflicts(t *testing.T) {
	resourceID := uuid.New()
	approved := existing(t, resourceID, reservation.StatusApproved, 9, 10)
	pending := existing(t, resourceID, reservation.StatusPending, 9, 10)
	cancelled := existing(t, resourceID, reservation.StatusCancelled, 9, 10)
	all := []*reservation.Reservation{approved, pending, cancelled}

	t.Run("承認済みのみが衝突", func(t *testing.T) {
		got := reservation.Conflicts(slotAt(t, 9, 11), all, uuid.Nil)

		assert.Equal(t, []*reservation.Reservation{approved}, got)
	})

	t.Run("端点接触は衝突しない", func(t *testing.T) {
		assert.Empty(t, reservation.Conflicts(slotAt(t, 10, 11), all, uuid.Nil))
	})

	t.Run("自分自身は除外", func(t *testing.T) {
		assert.Empty(t, reservation.Conflicts(approved.TimeSlot(), all, approved.ID()))
	})
}

func TestPendingOverlapping(t *testing.T) {
	resourceID := uuid.New()
	target := existing(t, resourceID, reservation.StatusPending, 9, 11)
	_, _ = target.Approve(baseNow.Add(time.Minute))

	overlapping := existing(t, resourceID, reservation.StatusPending, 10, 12)
	touching := existing(t, resourceID, reservation.StatusPending, 11, 12)
	otherResource := existing(t, uuid.New(), reservation.StatusPending, 9, 11)
	cancelled := existing(t, resourceID, reservation.StatusCancelled, 9, 11)

	got := reservation.PendingOverlapping(target, []*reservation.Reservation{
		target, overlapping, touching, otherResource, cancelled,
	})

	assert.Equal(t, []*reservation.Reservation{overlapping}, got)
}

func TestBlocksApproval(t *testing.T) {
	assert.True(t, reservation.BlocksApproval(reservation.StatusApproved))
	assert.False(t, reservation.BlocksApproval(reservation.StatusPending))
	assert.False(t, reservation.BlocksApproval(reservation.StatusRejected))
}

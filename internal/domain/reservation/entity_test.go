//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	policy  = reservation.DurationPolicy{Min: 15 * time.Minute, Max: 8 * time.Hour}
)

func slotAt(t *testing.T, startHour, endHour int) reservation.TimeSlot {
	t.Helper()
	s, err := reservation.NewTimeSlot(
		time.Date(2025, 3, 11, startHour, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 11, endHour, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return s
}

func newPending(t *testing.T) *reservation.Reservation {
	t.Helper()
	r, _, err := reservation.NewReservation(baseNow, policy, uuid.New(), uuid.New(), slotAt(t, 9, 10), nil)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		resourceID, userID := uuid.New(), uuid.New()
		slot := slotAt(t, 9, 10)

		r, ev, err := reservation.NewReservation(baseNow, policy, resourceID, userID, slot, nil)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, reservation.StatusPending, r.Status())
		assert.Equal(t, resourceID, r.ResourceID())
		assert.Equal(t, userID, r.UserID())
		assert.True(t, ev.IsCreation())
		assert.Equal(t, reservation.StatusPending, ev.To)
		assert.Equal(t, r.ID(), ev.ReservationID)
		assert.Equal(t, slot, ev.Slot)
	})

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{
			name:  "過去の開始時刻NG",
			start: baseNow.Add(-time.Hour),
			end:   baseNow.Add(time.Hour),
			errIs: reservation.ErrStartInPast,
		},
		{
			name:  "最短時間未満NG",
			start: baseNow.Add(time.Hour),
			end:   baseNow.Add(time.Hour + 10*time.Minute),
			errIs: reservation.ErrDurationOutOfRange,
		},
		{
			name:  "最長時間超過NG",
			start: baseNow.Add(time.Hour),
			end:   baseNow.Add(10 * time.Hour),
			errIs: reservation.ErrDurationOutOfRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := reservation.NewTimeSlot(tt.start, tt.end)
			require.NoError(t, err)

			r, _, err := reservation.NewReservation(baseNow, policy, uuid.New(), uuid.New(), slot, nil)

			require.Nil(t, r)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestNewTimeSlot(t *testing.T) {
	at := baseNow.Add(time.Hour)

	_, err := reservation.NewTimeSlot(at, at)
	assert.ErrorIs(t, err, reservation.ErrInvalidTimeSlot)

	_, err = reservation.NewTimeSlot(at, at.Add(-time.Minute))
	assert.ErrorIs(t, err, reservation.ErrInvalidTimeSlot)
}

func TestTimeSlotOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]int
		want bool
	}{
		{name: "端点接触は重複しない", a: [2]int{9, 10}, b: [2]int{10, 11}, want: false},
		{name: "逆順の端点接触", a: [2]int{10, 11}, b: [2]int{9, 10}, want: false},
		{name: "部分重複", a: [2]int{9, 11}, b: [2]int{10, 12}, want: true},
		{name: "包含", a: [2]int{9, 13}, b: [2]int{10, 11}, want: true},
		{name: "同一区間", a: [2]int{9, 10}, b: [2]int{9, 10}, want: true},
		{name: "離れた区間", a: [2]int{9, 10}, b: [2]int{12, 13}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := slotAt(t, tt.a[0], tt.a[1])
			b := slotAt(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.want, a.Overlaps(b))
			assert.Equal(t, tt.want, b.Overlaps(a))
		})
	}
}

func TestLifecycle(t *testing.T) {
	later := baseNow.Add(time.Minute)

	t.Run("承認後のキャンセル", func(t *testing.T) {
		r := newPending(t)

		ev, err := r.Approve(later)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPending, ev.From)
		assert.Equal(t, reservation.StatusApproved, ev.To)

		ev, err = r.Cancel(later, "plans changed")
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusApproved, ev.From)
		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.Equal(t, "plans changed", r.Reason())
		assert.Equal(t, later, r.UpdatedAt())
	})

	type step func(r *reservation.Reservation) (reservation.Event, error)
	approve := func(r *reservation.Reservation) (reservation.Event, error) { return r.Approve(later) }
	reject := func(r *reservation.Reservation) (reservation.Event, error) { return r.Reject(later, "no") }
	autoReject := func(r *reservation.Reservation) (reservation.Event, error) { return r.AutoReject(later, "overlap") }
	cancel := func(r *reservation.Reservation) (reservation.Event, error) { return r.Cancel(later, "") }

	invalid := []struct {
		name  string
		setup []step
		next  step
	}{
		{name: "承認済みの再承認NG", setup: []step{approve}, next: approve},
		{name: "承認済みの却下NG", setup: []step{approve}, next: reject},
		{name: "承認済みの自動却下NG", setup: []step{approve}, next: autoReject},
		{name: "却下済みのキャンセルNG", setup: []step{reject}, next: cancel},
		{name: "自動却下済みの承認NG", setup: []step{autoReject}, next: approve},
		{name: "キャンセル済みのキャンセルNG", setup: []step{cancel}, next: cancel},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			r := newPending(t)
			for _, s := range tt.setup {
				_, err := s(r)
				require.NoError(t, err)
			}
			before := r.Status()

			_, err := tt.next(r)

			require.ErrorIs(t, err, reservation.ErrTransitionRejected)
			assert.Equal(t, before, r.Status())
		})
	}
}

func TestStatus(t *testing.T) {
	for _, s := range []reservation.Status{
		reservation.StatusRejected, reservation.StatusAutoRejected, reservation.StatusCancelled,
	} {
		assert.True(t, s.IsTerminal(), s)
	}
	assert.False(t, reservation.StatusPending.IsTerminal())
	assert.False(t, reservation.StatusApproved.IsTerminal())

	st, err := reservation.ParseStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, st)
	assert.NotEmpty(t, st.Describe())

	_, err = reservation.ParseStatus("confirmed")
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
}

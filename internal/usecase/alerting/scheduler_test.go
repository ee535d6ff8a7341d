//go:build unit

package alerting_test

import (
	"context"
	"testing"
	"time"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/infra/memstore"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/alerting"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduledBookings(t *testing.T, start time.Time) (*memstore.Store, *alerting.Scheduler, *reservation.Reservation) {
	t.Helper()
	store := memstore.New()
	clk := clock.NewMockClock(baseTime)
	scheduler := alerting.NewScheduler(store, clk, alerting.SchedulerConfig{
		Channels: []alert.Channel{alert.ChannelEmail, alert.ChannelPush},
		Reminders: []alert.Type{
			alert.TypeReminder24Hours,
			alert.TypeReminder2Hours,
			alert.TypeReminder30Minutes,
		},
	})
	bookings := commands.NewBookingService(store, clk,
		reservation.DurationPolicy{Min: 15 * time.Minute, Max: 8 * time.Hour},
		[]shared.EventHandler{scheduler})

	res, err := bookings.CreateReservation(context.Background(), commands.CreateReservationInput{
		ResourceID: uuid.New(),
		UserID:     uuid.New(),
		Start:      start,
		End:        start.Add(time.Hour),
	})
	require.NoError(t, err)
	return store, scheduler, res
}

func TestScheduler_Reminders(t *testing.T) {
	t.Run("開始までの時間が十分なら全リマインダーがチャネルごとに作られる", func(t *testing.T) {
		store, _, res := newScheduledBookings(t, baseTime.Add(48*time.Hour))

		alerts := store.Alerts()
		assert.Len(t, alerts, 6)
		for _, a := range alerts {
			assert.Equal(t, alert.StateScheduled, a.State())
			assert.Equal(t, res.UserID().String(), a.Recipient())
			assert.Equal(t, res.TimeSlot().Start().Add(-a.Type().Lead()), a.ScheduledAt())
		}
	})

	t.Run("既に過ぎたリマインダーは作られない", func(t *testing.T) {
		store, _, _ := newScheduledBookings(t, baseTime.Add(time.Hour))

		alerts := store.Alerts()
		require.Len(t, alerts, 2)
		for _, a := range alerts {
			assert.Equal(t, alert.TypeReminder30Minutes, a.Type())
		}
	})
}

func TestScheduler_CancelAlertsForReservation(t *testing.T) {
	t.Run("未送信の通知がすべて取り消される", func(t *testing.T) {
		store, scheduler, res := newScheduledBookings(t, baseTime.Add(48*time.Hour))

		n, err := scheduler.CancelAlertsForReservation(context.Background(), res.ID())

		require.NoError(t, err)
		assert.Equal(t, 6, n)
		for _, a := range store.Alerts() {
			assert.Equal(t, alert.StateCancelled, a.State())
		}

		n, err = scheduler.CancelAlertsForReservation(context.Background(), res.ID())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("存在しない予約はNotFoundになる", func(t *testing.T) {
		_, scheduler, _ := newScheduledBookings(t, baseTime.Add(48*time.Hour))

		_, err := scheduler.CancelAlertsForReservation(context.Background(), uuid.New())

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

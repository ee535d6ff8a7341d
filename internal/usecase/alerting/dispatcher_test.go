//go:build unit

package alerting_test

import (
	"context"
	"errors"
	"sync"
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
	sharedmock "facility-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	baseTime  = time.Date(2030, 1, 6, 9, 0, 0, 0, time.UTC)
	slotStart = time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)
)

type DispatcherTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	sender   *sharedmock.MockSender
	store    *memstore.Store
	clock    *clock.MockClock
	bookings *commands.BookingService
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	s.setup(alerting.SchedulerConfig{AdminRecipient: "admin@example.com"})
}

func (s *DispatcherTestSuite) setup(cfg alerting.SchedulerConfig) {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.sender = sharedmock.NewMockSender(s.ctrl)
	s.store = memstore.New()
	s.clock = clock.NewMockClock(baseTime)
	scheduler := alerting.NewScheduler(s.store, s.clock, cfg)
	s.bookings = commands.NewBookingService(s.store, s.clock,
		reservation.DurationPolicy{Min: 15 * time.Minute, Max: 8 * time.Hour},
		[]shared.EventHandler{scheduler})
}

func (s *DispatcherTestSuite) dispatcher(maxAttempts int, timeout time.Duration) *alerting.Dispatcher {
	return alerting.NewDispatcher(s.store, s.sender, s.clock, alerting.DispatchConfig{
		MaxAttempts: maxAttempts,
		SendTimeout: timeout,
		BatchSize:   10,
		Concurrency: 2,
		Location:    time.UTC,
	})
}

func (s *DispatcherTestSuite) book() *reservation.Reservation {
	res, err := s.bookings.CreateReservation(s.ctx, commands.CreateReservationInput{
		ResourceID: uuid.New(),
		UserID:     uuid.New(),
		Start:      slotStart,
		End:        slotStart.Add(time.Hour),
	})
	s.Require().NoError(err)
	return res
}

func (s *DispatcherTestSuite) onlyAlert() *alert.Alert {
	alerts := s.store.Alerts()
	s.Require().Len(alerts, 1)
	return alerts[0]
}

func (s *DispatcherTestSuite) TestDispatchDueAlerts() {
	s.Run("success: due alert is sent and marked SENT", func() {
		s.SetupTest()
		res := s.book()
		d := s.dispatcher(3, time.Second)

		s.sender.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg shared.Message) error {
				s.Equal(res.ID(), msg.ReservationID)
				s.Equal(alert.TypeNewReservation, msg.Type)
				s.Equal(alert.ChannelEmail, msg.Channel)
				s.Equal("admin@example.com", msg.Recipient)
				s.Equal(alert.TypeNewReservation.Describe(), msg.Subject)
				s.Contains(msg.Body, "2030-01-08 10:00 - 11:00")
				return nil
			})

		report, err := d.DispatchDueAlerts(s.ctx)

		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{Sent: 1}, report)
		a := s.onlyAlert()
		s.Equal(alert.StateSent, a.State())
		s.Require().NotNil(a.SentAt())
		s.Equal(baseTime, *a.SentAt())
	})

	s.Run("success: failures are retried until MaxAttempts then FAILED", func() {
		s.SetupTest()
		s.book()
		d := s.dispatcher(3, time.Second)

		s.sender.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			Return(errors.New("smtp unavailable")).
			Times(3)

		for attempt := 1; attempt <= 2; attempt++ {
			report, err := d.DispatchDueAlerts(s.ctx)
			s.Require().NoError(err)
			s.Equal(alerting.DispatchReport{Retried: 1}, report)
			a := s.onlyAlert()
			s.Equal(alert.StatePending, a.State())
			s.Equal(attempt, a.AttemptCount())
			s.Contains(a.FailureReason(), "smtp unavailable")
		}

		report, err := d.DispatchDueAlerts(s.ctx)
		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{Failed: 1}, report)
		a := s.onlyAlert()
		s.Equal(alert.StateFailed, a.State())
		s.Equal(3, a.AttemptCount())

		report, err = d.DispatchDueAlerts(s.ctx)
		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{}, report)
	})

	s.Run("success: a send exceeding the timeout counts as a failed attempt", func() {
		s.SetupTest()
		s.book()
		d := s.dispatcher(3, 20*time.Millisecond)

		release := make(chan struct{})
		defer close(release)
		s.sender.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, shared.Message) error {
				<-release
				return nil
			})

		report, err := d.DispatchDueAlerts(s.ctx)

		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{Retried: 1}, report)
		a := s.onlyAlert()
		s.Equal(1, a.AttemptCount())
		s.Contains(a.FailureReason(), "send timed out")
	})

	s.Run("success: alerts of a cancelled reservation are never sent", func() {
		s.SetupTest()
		res := s.book()
		_, err := s.bookings.CancelReservation(s.ctx, res.ID(), "")
		s.Require().NoError(err)
		d := s.dispatcher(3, time.Second)

		s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

		report, err := d.DispatchDueAlerts(s.ctx)

		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{}, report)
		s.Equal(alert.StateCancelled, s.onlyAlert().State())
	})

	s.Run("success: reminders wait until their scheduled time", func() {
		s.setup(alerting.SchedulerConfig{
			Channels:  []alert.Channel{alert.ChannelSMS},
			Reminders: []alert.Type{alert.TypeReminder2Hours},
		})
		s.book()
		d := s.dispatcher(3, time.Second)

		report, err := d.DispatchDueAlerts(s.ctx)
		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{}, report)

		s.sender.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg shared.Message) error {
				s.Equal(alert.TypeReminder2Hours, msg.Type)
				s.Equal(alert.ChannelSMS, msg.Channel)
				return nil
			})

		s.clock.Set(slotStart.Add(-2 * time.Hour))
		report, err = d.DispatchDueAlerts(s.ctx)
		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{Sent: 1}, report)
	})

	s.Run("error: overlapping cycles are refused", func() {
		s.SetupTest()
		s.book()
		d := s.dispatcher(3, time.Second)

		entered := make(chan struct{})
		release := make(chan struct{})
		s.sender.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, shared.Message) error {
				close(entered)
				<-release
				return nil
			})

		done := make(chan dispatchResult, 1)
		go func() {
			report, err := d.DispatchDueAlerts(s.ctx)
			done <- dispatchResult{report, err}
		}()
		<-entered

		_, err := d.DispatchDueAlerts(s.ctx)
		s.Require().Error(err)
		s.True(errs.Is(err, alerting.ErrCycleInProgress))

		close(release)
		first := <-done
		s.Require().NoError(first.err)
		s.Equal(1, first.report.Sent)
	})
}

// readHookUoW runs afterRead once, right after the first read-only
// transaction commits.
type readHookUoW struct {
	shared.UnitOfWork
	once      sync.Once
	afterRead func()
}

func (u *readHookUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	err := u.UnitOfWork.WithinReadOnly(ctx, fn)
	u.once.Do(u.afterRead)
	return err
}

func (s *DispatcherTestSuite) TestDispatchDueAlerts_Races() {
	s.Run("success: an alert cancelled between selection and claim is never sent", func() {
		s.SetupTest()
		res := s.book()
		uow := &readHookUoW{UnitOfWork: s.store, afterRead: func() {
			_, err := s.bookings.CancelReservation(s.ctx, res.ID(), "plans changed")
			s.Require().NoError(err)
		}}
		d := alerting.NewDispatcher(uow, s.sender, s.clock, alerting.DispatchConfig{
			MaxAttempts: 3,
			SendTimeout: time.Second,
			BatchSize:   10,
		})

		s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

		report, err := d.DispatchDueAlerts(s.ctx)

		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{Skipped: 1}, report)
		s.Equal(alert.StateCancelled, s.onlyAlert().State())
	})

	s.Run("success: a hanging send does not block cancelling the reservation", func() {
		s.SetupTest()
		res := s.book()
		d := s.dispatcher(3, 5*time.Second)

		entered := make(chan struct{})
		release := make(chan struct{})
		s.sender.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, shared.Message) error {
				close(entered)
				<-release
				return nil
			})

		done := make(chan dispatchResult, 1)
		go func() {
			report, err := d.DispatchDueAlerts(s.ctx)
			done <- dispatchResult{report, err}
		}()
		<-entered

		cancelled := make(chan error, 1)
		go func() {
			_, err := s.bookings.CancelReservation(s.ctx, res.ID(), "")
			cancelled <- err
		}()
		select {
		case err := <-cancelled:
			s.Require().NoError(err)
		case <-time.After(time.Second):
			close(release)
			s.FailNow("cancellation waited on an in-flight send")
		}

		close(release)
		first := <-done
		s.Require().NoError(first.err)
		s.Equal(alerting.DispatchReport{Sent: 1}, first.report)
		s.Equal(alert.StateCancelled, s.onlyAlert().State())
	})

	s.Run("success: a claimed alert is not picked up by another dispatcher", func() {
		s.SetupTest()
		s.book()
		first := s.dispatcher(3, 5*time.Second)
		second := s.dispatcher(3, 5*time.Second)

		entered := make(chan struct{})
		release := make(chan struct{})
		s.sender.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, shared.Message) error {
				close(entered)
				<-release
				return nil
			}).Times(1)

		done := make(chan dispatchResult, 1)
		go func() {
			report, err := first.DispatchDueAlerts(s.ctx)
			done <- dispatchResult{report, err}
		}()
		<-entered

		a := s.onlyAlert()
		s.Require().NotNil(a.ClaimedUntil())
		s.Equal(baseTime.Add(10*time.Second), *a.ClaimedUntil())

		report, err := second.DispatchDueAlerts(s.ctx)
		s.Require().NoError(err)
		s.Equal(alerting.DispatchReport{}, report)

		close(release)
		got := <-done
		s.Require().NoError(got.err)
		s.Equal(alerting.DispatchReport{Sent: 1}, got.report)
		s.Nil(s.onlyAlert().ClaimedUntil())
	})
}

type dispatchResult struct {
	report alerting.DispatchReport
	err    error
}

func (s *DispatcherTestSuite) TestPurgeTerminalAlerts() {
	s.Run("success: only terminal alerts older than the retention are purged", func() {
		s.setup(alerting.SchedulerConfig{
			Channels:       []alert.Channel{alert.ChannelEmail},
			Reminders:      []alert.Type{alert.TypeReminder24Hours},
			AdminRecipient: "admin@example.com",
		})
		s.book()
		d := s.dispatcher(3, time.Second)
		s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

		_, err := d.DispatchDueAlerts(s.ctx)
		s.Require().NoError(err)
		s.Len(s.store.Alerts(), 2)

		s.clock.Add(12 * time.Hour)
		purged, err := d.PurgeTerminalAlerts(s.ctx, 24*time.Hour)
		s.Require().NoError(err)
		s.Zero(purged)

		s.clock.Add(13 * time.Hour)
		purged, err = d.PurgeTerminalAlerts(s.ctx, 24*time.Hour)
		s.Require().NoError(err)
		s.Equal(int64(1), purged)

		remaining := s.store.Alerts()
		s.Require().Len(remaining, 1)
		s.Equal(alert.TypeReminder24Hours, remaining[0].Type())
		s.Equal(alert.StateScheduled, remaining[0].State())
	})
}

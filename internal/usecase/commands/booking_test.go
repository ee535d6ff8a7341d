//go:build unit

package commands_test

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
	"facility-booking/internal/usecase/calendarsync"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var (
	baseTime = time.Date(2030, 1, 6, 9, 0, 0, 0, time.UTC)
	policy   = reservation.DurationPolicy{Min: 15 * time.Minute, Max: 8 * time.Hour}
)

type BookingServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	clock    *clock.MockClock
	service  *commands.BookingService
	resource uuid.UUID
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

func (s *BookingServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(baseTime)
	s.resource = uuid.New()
	handlers := []shared.EventHandler{
		alerting.NewScheduler(s.store, s.clock, alerting.SchedulerConfig{
			Channels:       []alert.Channel{alert.ChannelEmail},
			Reminders:      []alert.Type{alert.TypeReminder24Hours},
			AdminRecipient: "admin@example.com",
		}),
		calendarsync.NewRecorder(s.clock),
	}
	s.service = commands.NewBookingService(s.store, s.clock, policy, handlers)
}

func (s *BookingServiceTestSuite) at(hour, minute int) time.Time {
	return time.Date(2030, 1, 8, hour, minute, 0, 0, time.UTC)
}

func (s *BookingServiceTestSuite) create(start, end time.Time) *reservation.Reservation {
	res, err := s.service.CreateReservation(s.ctx, commands.CreateReservationInput{
		ResourceID: s.resource,
		UserID:     uuid.New(),
		Start:      start,
		End:        end,
	})
	s.Require().NoError(err)
	return res
}

func (s *BookingServiceTestSuite) statusOf(id uuid.UUID) reservation.Status {
	for _, r := range s.store.Reservations() {
		if r.ID() == id {
			return r.Status()
		}
	}
	s.FailNow("reservation not stored", id.String())
	return ""
}

func (s *BookingServiceTestSuite) TestCreateReservation() {
	s.Run("空き枠ならPENDINGで作成され通知とイベントが記録される", func() {
		s.SetupTest()
		res := s.create(s.at(10, 0), s.at(11, 0))

		s.Equal(reservation.StatusPending, res.Status())
		s.Equal(reservation.StatusPending, s.statusOf(res.ID()))

		var admin, reminders int
		for _, a := range s.store.Alerts() {
			switch a.Type() {
			case alert.TypeNewReservation:
				admin++
				s.Equal("admin@example.com", a.Recipient())
				s.Equal(alert.StatePending, a.State())
			case alert.TypeReminder24Hours:
				reminders++
				s.Equal(alert.StateScheduled, a.State())
				s.Equal(s.at(10, 0).Add(-24*time.Hour), a.ScheduledAt())
			}
		}
		s.Equal(1, admin)
		s.Equal(1, reminders)

		events := s.store.OutboxEvents()
		s.Require().Len(events, 1)
		s.Equal("reservation.pending", events[0].Topic)
		s.Equal(res.ID(), events[0].AggregateID)
	})

	s.Run("承認済み予約と重なる場合はConflictになり何も保存されない", func() {
		s.SetupTest()
		approved := s.create(s.at(10, 0), s.at(11, 0))
		_, err := s.service.ApproveReservation(s.ctx, approved.ID())
		s.Require().NoError(err)
		before := len(s.store.Reservations())

		_, err = s.service.CreateReservation(s.ctx, commands.CreateReservationInput{
			ResourceID: s.resource,
			UserID:     uuid.New(),
			Start:      s.at(10, 30),
			End:        s.at(11, 30),
		})

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrConflict))
		var conflict *commands.ConflictError
		s.Require().True(errors.As(err, &conflict))
		s.Equal([]uuid.UUID{approved.ID()}, conflict.Conflicts)
		s.Len(s.store.Reservations(), before)
	})

	s.Run("終了時刻と開始時刻が接するだけなら作成できる", func() {
		s.SetupTest()
		approved := s.create(s.at(10, 0), s.at(11, 0))
		_, err := s.service.ApproveReservation(s.ctx, approved.ID())
		s.Require().NoError(err)

		after := s.create(s.at(11, 0), s.at(12, 0))
		before := s.create(s.at(9, 0), s.at(10, 0))

		s.Equal(reservation.StatusPending, after.Status())
		s.Equal(reservation.StatusPending, before.Status())
	})

	s.Run("PENDING同士の重なりは許容される", func() {
		s.SetupTest()
		s.create(s.at(10, 0), s.at(11, 0))
		other := s.create(s.at(10, 0), s.at(11, 0))
		s.Equal(reservation.StatusPending, other.Status())
	})

	s.Run("不正な時間帯はValidationになる", func() {
		cases := []struct {
			name       string
			start, end time.Time
		}{
			{"開始と終了が同じ", s.at(10, 0), s.at(10, 0)},
			{"終了が開始より前", s.at(11, 0), s.at(10, 0)},
			{"過去の開始時刻", baseTime.Add(-time.Hour), baseTime},
			{"最短時間未満", s.at(10, 0), s.at(10, 5)},
			{"最長時間超過", s.at(0, 0), s.at(12, 0)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.SetupTest()
				_, err := s.service.CreateReservation(s.ctx, commands.CreateReservationInput{
					ResourceID: s.resource,
					UserID:     uuid.New(),
					Start:      tc.start,
					End:        tc.end,
				})
				s.Require().Error(err)
				s.True(errs.Is(err, errs.ErrValidation))
				s.Empty(s.store.Reservations())
			})
		}
	})
}

func (s *BookingServiceTestSuite) TestApproveReservation() {
	s.Run("承認すると重なるPENDINGだけが自動却下される", func() {
		s.SetupTest()
		target := s.create(s.at(10, 0), s.at(11, 0))
		overlapping := s.create(s.at(10, 30), s.at(11, 30))
		touching := s.create(s.at(11, 0), s.at(12, 0))

		result, err := s.service.ApproveReservation(s.ctx, target.ID())

		s.Require().NoError(err)
		s.Equal(reservation.StatusApproved, result.Reservation.Status())
		s.Require().Len(result.AutoRejected, 1)
		s.Equal(overlapping.ID(), result.AutoRejected[0].ID())
		s.Contains(result.AutoRejected[0].Reason(), target.ID().String())

		s.Equal(reservation.StatusApproved, s.statusOf(target.ID()))
		s.Equal(reservation.StatusAutoRejected, s.statusOf(overlapping.ID()))
		s.Equal(reservation.StatusPending, s.statusOf(touching.ID()))
	})

	s.Run("承認と自動却下のイベントと通知が同じトランザクションで記録される", func() {
		s.SetupTest()
		target := s.create(s.at(10, 0), s.at(11, 0))
		loser := s.create(s.at(10, 0), s.at(11, 0))

		_, err := s.service.ApproveReservation(s.ctx, target.ID())
		s.Require().NoError(err)

		topics := map[string]int{}
		for _, ev := range s.store.OutboxEvents() {
			topics[ev.Topic]++
		}
		s.Equal(2, topics["reservation.pending"])
		s.Equal(1, topics["reservation.approved"])
		s.Equal(1, topics["reservation.auto_rejected"])

		var approvedAlert, autoRejectedAlert bool
		for _, a := range s.store.Alerts() {
			if a.ReservationID() == target.ID() && a.Type() == alert.TypeApproved {
				approvedAlert = true
			}
			if a.ReservationID() == loser.ID() {
				switch a.Type() {
				case alert.TypeAutoRejected:
					autoRejectedAlert = true
				case alert.TypeReminder24Hours:
					s.Equal(alert.StateCancelled, a.State())
				}
			}
		}
		s.True(approvedAlert)
		s.True(autoRejectedAlert)
	})

	s.Run("既に承認済みの予約は再承認できない", func() {
		s.SetupTest()
		res := s.create(s.at(10, 0), s.at(11, 0))
		_, err := s.service.ApproveReservation(s.ctx, res.ID())
		s.Require().NoError(err)

		_, err = s.service.ApproveReservation(s.ctx, res.ID())

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrInvalidTransition))
	})

	s.Run("存在しない予約はNotFoundになる", func() {
		s.SetupTest()
		_, err := s.service.ApproveReservation(s.ctx, uuid.New())
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("重なるPENDINGを同時に承認しても承認されるのは1件だけ", func() {
		s.SetupTest()
		const n = 8
		ids := make([]uuid.UUID, n)
		for i := range ids {
			offset := time.Duration(i) * 5 * time.Minute
			ids[i] = s.create(s.at(10, 0).Add(offset), s.at(11, 0).Add(offset)).ID()
		}

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			failures  []error
		)
		for _, id := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.service.ApproveReservation(s.ctx, id)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failures = append(failures, err)
					return
				}
				succeeded++
			}()
		}
		wg.Wait()

		s.Equal(1, succeeded)
		for _, err := range failures {
			s.True(errs.Is(err, errs.ErrInvalidTransition) || errs.Is(err, errs.ErrConflict), err.Error())
		}

		counts := map[reservation.Status]int{}
		for _, id := range ids {
			counts[s.statusOf(id)]++
		}
		s.Equal(1, counts[reservation.StatusApproved])
		s.Equal(n-1, counts[reservation.StatusAutoRejected])
	})
}

func (s *BookingServiceTestSuite) TestRejectAndCancel() {
	s.Run("PENDINGは却下できる", func() {
		s.SetupTest()
		res := s.create(s.at(10, 0), s.at(11, 0))

		rejected, err := s.service.RejectReservation(s.ctx, res.ID(), "maintenance")

		s.Require().NoError(err)
		s.Equal(reservation.StatusRejected, rejected.Status())
		s.Equal("maintenance", rejected.Reason())
	})

	s.Run("承認済みは却下できない", func() {
		s.SetupTest()
		res := s.create(s.at(10, 0), s.at(11, 0))
		_, err := s.service.ApproveReservation(s.ctx, res.ID())
		s.Require().NoError(err)

		_, err = s.service.RejectReservation(s.ctx, res.ID(), "late")

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrInvalidTransition))
		s.Equal(reservation.StatusApproved, s.statusOf(res.ID()))
	})

	s.Run("承認済みをキャンセルすると枠が空き未送信の通知が取り消される", func() {
		s.SetupTest()
		res := s.create(s.at(10, 0), s.at(11, 0))
		_, err := s.service.ApproveReservation(s.ctx, res.ID())
		s.Require().NoError(err)

		cancelled, err := s.service.CancelReservation(s.ctx, res.ID(), "plans changed")
		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled, cancelled.Status())

		for _, a := range s.store.Alerts() {
			if a.ReservationID() != res.ID() {
				continue
			}
			if a.Type() == alert.TypeCancelled {
				s.Equal(alert.StatePending, a.State())
				continue
			}
			s.True(a.State().IsTerminal(), string(a.Type()))
		}

		again := s.create(s.at(10, 0), s.at(11, 0))
		_, err = s.service.ApproveReservation(s.ctx, again.ID())
		s.NoError(err)
	})

	s.Run("終端状態からはキャンセルできない", func() {
		s.SetupTest()
		res := s.create(s.at(10, 0), s.at(11, 0))
		_, err := s.service.CancelReservation(s.ctx, res.ID(), "")
		s.Require().NoError(err)

		_, err = s.service.CancelReservation(s.ctx, res.ID(), "")

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrInvalidTransition))
	})

	s.Run("承認とキャンセルが競合しても最終状態はCANCELLEDになる", func() {
		s.SetupTest()
		res := s.create(s.at(10, 0), s.at(11, 0))

		var wg sync.WaitGroup
		var cancelErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.service.ApproveReservation(s.ctx, res.ID())
		}()
		go func() {
			defer wg.Done()
			_, cancelErr = s.service.CancelReservation(s.ctx, res.ID(), "")
		}()
		wg.Wait()

		s.NoError(cancelErr)
		s.Equal(reservation.StatusCancelled, s.statusOf(res.ID()))
	})
}

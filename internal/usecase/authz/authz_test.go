//go:build unit

package authz_test

import (
	"context"
	"testing"
	"time"

	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/domain/user"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/authz"
	"facility-booking/internal/usecase/commands"
	"facility-booking/tests/common/builder"
	alertingmock "facility-booking/tests/mock/alerting"
	commandsmock "facility-booking/tests/mock/commands"
	queriesmock "facility-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHasPermission(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name   string
		actor  authz.Actor
		target authz.Target
		action authz.Action
		want   bool
	}{
		{"viewer views own reservation", authz.Actor{UserID: owner, Role: user.RoleViewer}, authz.Target{OwnerID: owner}, authz.ActionViewReservation, true},
		{"viewer views someone else's reservation", authz.Actor{UserID: stranger, Role: user.RoleViewer}, authz.Target{OwnerID: owner}, authz.ActionViewReservation, false},
		{"viewer cancels own reservation", authz.Actor{UserID: owner, Role: user.RoleViewer}, authz.Target{OwnerID: owner}, authz.ActionCancelReservation, true},
		{"viewer approves own reservation", authz.Actor{UserID: owner, Role: user.RoleViewer}, authz.Target{OwnerID: owner}, authz.ActionApproveReservation, false},
		{"operator approves any reservation", authz.Actor{UserID: stranger, Role: user.RoleOperator}, authz.Target{OwnerID: owner}, authz.ActionApproveReservation, true},
		{"operator manages alerts", authz.Actor{UserID: stranger, Role: user.RoleOperator}, authz.Target{}, authz.ActionManageAlerts, false},
		{"admin manages alerts", authz.Actor{UserID: stranger, Role: user.RoleAdmin}, authz.Target{}, authz.ActionManageAlerts, true},
		{"viewer with ownerless target", authz.Actor{UserID: uuid.Nil, Role: user.RoleViewer}, authz.Target{}, authz.ActionViewReservation, false},
		{"unknown role", authz.Actor{UserID: owner, Role: user.Role("guest")}, authz.Target{OwnerID: owner}, authz.ActionViewReservation, false},
		{"unknown action", authz.Actor{UserID: owner, Role: user.RoleAdmin}, authz.Target{}, authz.Action("reservation:delete"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.HasPermission(tt.actor, tt.target, tt.action))
		})
	}
}

func TestAuthorize(t *testing.T) {
	t.Run("missing actor is forbidden", func(t *testing.T) {
		err := authz.Authorize(context.Background(), authz.Target{}, authz.ActionViewReservation)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
		assert.True(t, errs.Is(err, authz.ErrNoActor))
	})

	t.Run("actor carried by context is checked", func(t *testing.T) {
		ctx := authz.WithActor(context.Background(), authz.Actor{UserID: uuid.New(), Role: user.RoleAdmin})

		actor, ok := authz.ActorFrom(ctx)
		require.True(t, ok)
		assert.Equal(t, user.RoleAdmin, actor.Role)
		assert.NoError(t, authz.Authorize(ctx, authz.Target{}, authz.ActionRunMaintenance))
	})
}

func TestBookingGuard(t *testing.T) {
	owner := uuid.New()
	res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.UserID = owner
	}).BuildDomain()

	t.Run("owner may create for themselves only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := commandsmock.NewMockBookingCommands(ctrl)
		guard := authz.NewBookingGuard(next, queriesmock.NewMockBookingQueries(ctrl))
		ctx := authz.WithActor(context.Background(), authz.Actor{UserID: owner, Role: user.RoleViewer})

		own := commands.CreateReservationInput{ResourceID: uuid.New(), UserID: owner, Start: time.Now(), End: time.Now().Add(time.Hour)}
		next.EXPECT().CreateReservation(gomock.Any(), own).Return(res, nil)

		got, err := guard.CreateReservation(ctx, own)
		require.NoError(t, err)
		assert.Equal(t, res, got)

		other := own
		other.UserID = uuid.New()
		_, err = guard.CreateReservation(ctx, other)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("approval loads the owner and requires an operator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := commandsmock.NewMockBookingCommands(ctrl)
		q := queriesmock.NewMockBookingQueries(ctrl)
		guard := authz.NewBookingGuard(next, q)

		q.EXPECT().GetReservation(gomock.Any(), res.ID()).Return(res, nil).Times(2)
		next.EXPECT().ApproveReservation(gomock.Any(), res.ID()).Return(&commands.ApprovalResult{Reservation: res}, nil)

		ownerCtx := authz.WithActor(context.Background(), authz.Actor{UserID: owner, Role: user.RoleViewer})
		_, err := guard.ApproveReservation(ownerCtx, res.ID())
		assert.True(t, errs.Is(err, errs.ErrForbidden))

		operatorCtx := authz.WithActor(context.Background(), authz.Actor{UserID: uuid.New(), Role: user.RoleOperator})
		_, err = guard.ApproveReservation(operatorCtx, res.ID())
		assert.NoError(t, err)
	})

	t.Run("missing actor never reaches queries or commands", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		guard := authz.NewBookingGuard(commandsmock.NewMockBookingCommands(ctrl), queriesmock.NewMockBookingQueries(ctrl))

		_, err := guard.CancelReservation(context.Background(), res.ID(), "")
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("lookup errors are passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := queriesmock.NewMockBookingQueries(ctrl)
		guard := authz.NewBookingGuard(commandsmock.NewMockBookingCommands(ctrl), q)
		notFound := errs.Mark(errs.New("reservation not found"), errs.ErrNotFound)

		q.EXPECT().GetReservation(gomock.Any(), gomock.Any()).Return(nil, notFound)

		ctx := authz.WithActor(context.Background(), authz.Actor{UserID: owner, Role: user.RoleOperator})
		_, err := guard.RejectReservation(ctx, uuid.New(), "")
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestRecurrenceGuard(t *testing.T) {
	params := builder.NewRecurrenceBuilder().BuildParams()
	cfg := builder.NewRecurrenceBuilder().With(func(b *builder.RecurrenceBuilder) {
		b.UserID = params.UserID
	}).BuildDomain()

	t.Run("owner manages own recurrence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := commandsmock.NewMockRecurrenceCommands(ctrl)
		q := queriesmock.NewMockBookingQueries(ctrl)
		guard := authz.NewRecurrenceGuard(next, q)
		ctx := authz.WithActor(context.Background(), authz.Actor{UserID: params.UserID, Role: user.RoleViewer})

		next.EXPECT().PreviewRecurrence(gomock.Any(), params).Return(nil, nil)
		q.EXPECT().GetRecurrence(gomock.Any(), cfg.ID()).Return(cfg, nil)
		next.EXPECT().GenerateOccurrences(gomock.Any(), cfg.ID(), recurrence.Date{}).Return(&commands.GenerationResult{ConfigID: cfg.ID()}, nil)

		_, err := guard.PreviewRecurrence(ctx, params)
		require.NoError(t, err)
		_, err = guard.GenerateOccurrences(ctx, cfg.ID(), recurrence.Date{})
		require.NoError(t, err)
	})

	t.Run("stranger cannot delete or run pending generation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := queriesmock.NewMockBookingQueries(ctrl)
		guard := authz.NewRecurrenceGuard(commandsmock.NewMockRecurrenceCommands(ctrl), q)
		ctx := authz.WithActor(context.Background(), authz.Actor{UserID: uuid.New(), Role: user.RoleViewer})

		q.EXPECT().GetRecurrence(gomock.Any(), cfg.ID()).Return(cfg, nil)

		_, err := guard.DeleteRecurrence(ctx, cfg.ID(), true)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
		_, err = guard.GeneratePendingOccurrences(ctx)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}

func TestAlertGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := alertingmock.NewMockAlertCommands(ctrl)
	guard := authz.NewAlertGuard(next)
	id := uuid.New()

	next.EXPECT().CancelAlertsForReservation(gomock.Any(), id).Return(2, nil)

	operator := authz.WithActor(context.Background(), authz.Actor{UserID: uuid.New(), Role: user.RoleOperator})
	_, err := guard.CancelAlertsForReservation(operator, id)
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	admin := authz.WithActor(context.Background(), authz.Actor{UserID: uuid.New(), Role: user.RoleAdmin})
	n, err := guard.CancelAlertsForReservation(admin, id)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

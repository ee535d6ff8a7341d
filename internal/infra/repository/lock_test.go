//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-booking/internal/domain/user"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/usecase/shared"
	repositorymock "facility-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAdvisoryLockManager(t *testing.T) {
	ctx := context.Background()
	id := uuid.MustParse("6f1c1b9e-0a51-4c47-9d59-2a1a5d6f0b11")

	t.Run("success: resource and recurrence keys are namespaced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockLockQueries(ctrl)
		mockDB := &mockDBTX{}
		locks := repository.NewAdvisoryLockManager(mockQueries, mockDB)

		gomock.InOrder(
			mockQueries.EXPECT().AcquireXactLock(ctx, mockDB, "resource:"+id.String()).Return(nil),
			mockQueries.EXPECT().AcquireXactLock(ctx, mockDB, "recurrence:"+id.String()).Return(nil),
		)

		require.NoError(t, locks.LockResource(ctx, id))
		require.NoError(t, locks.LockRecurrence(ctx, id))
	})

	t.Run("error: lock failure is a db failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockLockQueries(ctrl)
		mockDB := &mockDBTX{}
		locks := repository.NewAdvisoryLockManager(mockQueries, mockDB)

		mockQueries.EXPECT().AcquireXactLock(ctx, mockDB, gomock.Any()).Return(errors.New("canceling statement due to lock timeout"))

		err := locks.LockResource(ctx, id)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestOutboxRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("success: fetch decodes unpublished events", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockOutboxQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewOutboxRepository(mockQueries, mockDB)

		row := sqlc.OutboxEvents{
			ID:          uuid.New(),
			Topic:       "reservation.approved",
			AggregateID: uuid.New(),
			Payload:     []byte(`{"status":"APPROVED"}`),
			OccurredAt:  pgtype.Timestamptz{Time: now, Valid: true},
		}
		mockQueries.EXPECT().FetchUnpublishedOutboxEvents(ctx, mockDB, int32(10)).Return([]sqlc.OutboxEvents{row}, nil)

		got, err := repo.FetchUnpublished(ctx, 10)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, shared.OutboxEvent{
			ID:          row.ID,
			Topic:       row.Topic,
			AggregateID: row.AggregateID,
			Payload:     row.Payload,
			OccurredAt:  now,
		}, got[0])
	})

	t.Run("error: mark published on a missing event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockOutboxQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewOutboxRepository(mockQueries, mockDB)

		id := uuid.New()
		mockQueries.EXPECT().MarkOutboxEventPublished(ctx, mockDB, sqlc.MarkOutboxEventPublishedParams{
			PublishedAt: pgtype.Timestamptz{Time: now, Valid: true},
			ID:          id,
		}).Return(int64(0), nil)

		err := repo.MarkPublished(ctx, id, now)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestContactRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success: contact decoded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockContactQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewContactRepository(mockQueries, mockDB)

		mockQueries.EXPECT().GetUserContact(ctx, mockDB, userID).Return(sqlc.UserContacts{
			UserID: userID,
			Email:  pgtype.Text{String: "member@example.com", Valid: true},
			Phone:  pgtype.Text{String: "+819012345678", Valid: true},
		}, nil)

		got, err := repo.FindByUserID(ctx, userID)

		require.NoError(t, err)
		require.NotNil(t, got.Email())
		assert.Equal(t, "member@example.com", got.Email().Value())
		require.NotNil(t, got.Phone())
		assert.Equal(t, "+819012345678", got.Phone().Value())
		assert.Empty(t, got.PushEndpoint())
	})

	t.Run("error: no contact row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockContactQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewContactRepository(mockQueries, mockDB)

		mockQueries.EXPECT().GetUserContact(ctx, mockDB, userID).Return(sqlc.UserContacts{}, pgx.ErrNoRows)

		_, err := repo.FindByUserID(ctx, userID)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("success: upsert keeps empty fields null", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockContactQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewContactRepository(mockQueries, mockDB)

		contact, err := user.NewContact(userID, "member@example.com", "", "")
		require.NoError(t, err)
		now := time.Now().UTC()

		mockQueries.EXPECT().UpsertUserContact(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.UpsertUserContactParams) error {
				assert.Equal(t, pgtype.Text{String: "member@example.com", Valid: true}, arg.Email)
				assert.False(t, arg.Phone.Valid)
				assert.False(t, arg.PushEndpoint.Valid)
				return nil
			})

		require.NoError(t, repo.Upsert(ctx, contact, now))
	})
}

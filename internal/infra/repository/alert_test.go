//go:build unit

package repository_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/pgconv"
	repositorymock "facility-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func alertRow(a *alert.Alert) sqlc.Alerts {
	return sqlc.Alerts{
		ID:            a.ID(),
		ReservationID: a.ReservationID(),
		Type:          a.Type().String(),
		Channel:       a.Channel().String(),
		Recipient:     a.Recipient(),
		ScheduledAt:   pgconv.TimeToPgtype(a.ScheduledAt()),
		State:         a.State().String(),
		AttemptCount:  int32(a.AttemptCount()),
		FailureReason: pgconv.OptionalText(a.FailureReason()),
		SentAt:        pgconv.TimePtrToPgtype(a.SentAt()),
		ClaimedUntil:  pgconv.TimePtrToPgtype(a.ClaimedUntil()),
		CreatedAt:     pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func TestAlertRepository_FindDue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		limit       int
		expectedMax int32
	}{
		{name: "explicit limit", limit: 50, expectedMax: 50},
		{name: "zero limit means unbounded", limit: 0, expectedMax: math.MaxInt32},
		{name: "negative limit means unbounded", limit: -1, expectedMax: math.MaxInt32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockAlertQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewAlertRepository(mockQueries, mockDB)

			due := alert.NewImmediate(uuid.New(), alert.TypeApproved, alert.ChannelEmail, "a@example.com", now.Add(-time.Minute))
			mockQueries.EXPECT().ListDueAlerts(ctx, mockDB, sqlc.ListDueAlertsParams{
				Now:     pgconv.TimeToPgtype(now),
				MaxRows: tc.expectedMax,
			}).Return([]sqlc.Alerts{alertRow(due)}, nil)

			got, err := repo.FindDue(ctx, now, tc.limit)

			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, due.ID(), got[0].ID())
			assert.Equal(t, alert.StatePending, got[0].State())
		})
	}
}

func TestAlertRepository_ClaimForSend(t *testing.T) {
	ctx := context.Background()

	t.Run("error: alert missing or locked elsewhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockAlertQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewAlertRepository(mockQueries, mockDB)

		id := uuid.New()
		mockQueries.EXPECT().ClaimAlert(ctx, mockDB, id).Return(sqlc.Alerts{}, pgx.ErrNoRows)

		_, err := repo.ClaimForSend(ctx, id)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("success: claim keeps the claimed_until column", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockAlertQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewAlertRepository(mockQueries, mockDB)

		now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
		a := alert.NewImmediate(uuid.New(), alert.TypeApproved, alert.ChannelEmail, "a@example.com", now)
		mockQueries.EXPECT().ClaimAlert(ctx, mockDB, a.ID()).Return(alertRow(a), nil)
		mockQueries.EXPECT().UpdateAlert(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.UpdateAlertParams) (int64, error) {
				assert.Equal(t, "PENDING", arg.State)
				assert.True(t, arg.ClaimedUntil.Valid)
				assert.True(t, now.Add(time.Minute).Equal(arg.ClaimedUntil.Time))
				return 1, nil
			})

		got, err := repo.ClaimForSend(ctx, a.ID())
		require.NoError(t, err)
		require.NoError(t, got.Claim(now, now.Add(time.Minute)))
		require.NoError(t, repo.Update(ctx, got))
	})

	t.Run("error: unknown channel in row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockAlertQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewAlertRepository(mockQueries, mockDB)

		row := alertRow(alert.NewImmediate(uuid.New(), alert.TypeApproved, alert.ChannelSMS, "+15550001111", time.Now()))
		row.Channel = "PIGEON"
		mockQueries.EXPECT().ClaimAlert(ctx, mockDB, row.ID).Return(row, nil)

		_, err := repo.ClaimForSend(ctx, row.ID)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestAlertRepository_LockForUpdate(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockAlertQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewAlertRepository(mockQueries, mockDB)

	now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	a := alert.NewImmediate(uuid.New(), alert.TypeApproved, alert.ChannelEmail, "a@example.com", now)
	require.NoError(t, a.Claim(now, now.Add(time.Minute)))
	mockQueries.EXPECT().LockAlert(ctx, mockDB, a.ID()).Return(alertRow(a), nil)

	got, err := repo.LockForUpdate(ctx, a.ID())

	require.NoError(t, err)
	require.NotNil(t, got.ClaimedUntil())
	assert.True(t, now.Add(time.Minute).Equal(*got.ClaimedUntil()))
	assert.False(t, got.IsDue(now))
}

func TestAlertRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	testCases := []struct {
		name       string
		rows       int64
		dbErr      error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: alert updated", rows: 1},
		{name: "error: alert not found", rows: 0, expectKind: infra.KindNotFound},
		{name: "error: database failure", dbErr: errors.New("connection reset"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockAlertQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewAlertRepository(mockQueries, mockDB)

			a := alert.NewImmediate(uuid.New(), alert.TypeCancelled, alert.ChannelPush, "arn:aws:sns:endpoint", now)
			require.NoError(t, a.MarkSent(now))
			mockQueries.EXPECT().UpdateAlert(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.UpdateAlertParams) (int64, error) {
					assert.Equal(t, "SENT", arg.State)
					assert.True(t, arg.SentAt.Valid)
					assert.False(t, arg.ClaimedUntil.Valid)
					return tc.rows, tc.dbErr
				})

			err := repo.Update(ctx, a)

			if tc.expectKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
		})
	}
}

func TestAlertRepository_DeleteTerminalBefore(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockAlertQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewAlertRepository(mockQueries, mockDB)

	cutoff := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	mockQueries.EXPECT().DeleteTerminalAlertsBefore(ctx, mockDB, pgtype.Timestamptz{Time: cutoff, Valid: true}).Return(int64(7), nil)

	n, err := repo.DeleteTerminalBefore(ctx, cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

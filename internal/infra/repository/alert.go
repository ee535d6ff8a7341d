package repository

import (
	"context"
	"math"
	"time"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository/converter"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AlertQueries interface {
	CreateAlert(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateAlertParams) error
	ListDueAlerts(ctx context.Context, db sqlc.DBTX, arg sqlc.ListDueAlertsParams) ([]sqlc.Alerts, error)
	ClaimAlert(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Alerts, error)
	LockAlert(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Alerts, error)
	LockActiveAlertsByReservation(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.Alerts, error)
	ListAlertsByReservation(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.Alerts, error)
	UpdateAlert(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateAlertParams) (int64, error)
	DeleteTerminalAlertsBefore(ctx context.Context, db sqlc.DBTX, cutoff pgtype.Timestamptz) (int64, error)
}

type AlertRepository struct {
	queries AlertQueries
	db      sqlc.DBTX
}

func NewAlertRepository(queries AlertQueries, db sqlc.DBTX) *AlertRepository {
	return &AlertRepository{
		queries: queries,
		db:      db,
	}
}

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	if err := r.queries.CreateAlert(ctx, r.db, converter.AlertToInfra(a)); err != nil {
		return infra.WrapRepoErr("failed to create alert", err)
	}
	return nil
}

func (r *AlertRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]*alert.Alert, error) {
	if limit <= 0 || limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	rows, err := r.queries.ListDueAlerts(ctx, r.db, sqlc.ListDueAlertsParams{
		Now:     pgconv.TimeToPgtype(now),
		MaxRows: int32(limit), // #nosec G115 -- clamped above
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due alerts", err)
	}
	return decodeAlerts(rows)
}

// ClaimForSend locks the row with SKIP LOCKED: a row held by another
// transaction comes back as NotFound instead of blocking.
func (r *AlertRepository) ClaimForSend(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	return r.lockOne(ctx, id, r.queries.ClaimAlert)
}

func (r *AlertRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	return r.lockOne(ctx, id, r.queries.LockAlert)
}

func (r *AlertRepository) lockOne(ctx context.Context, id uuid.UUID, query func(context.Context, sqlc.DBTX, uuid.UUID) (sqlc.Alerts, error)) (*alert.Alert, error) {
	row, err := query(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("alert not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock alert", err)
	}
	a, err := converter.AlertToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode alert", err)
	}
	return a, nil
}

func (r *AlertRepository) LockActiveByReservation(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error) {
	rows, err := r.queries.LockActiveAlertsByReservation(ctx, r.db, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation alerts", err)
	}
	return decodeAlerts(rows)
}

func (r *AlertRepository) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error) {
	rows, err := r.queries.ListAlertsByReservation(ctx, r.db, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation alerts", err)
	}
	return decodeAlerts(rows)
}

func (r *AlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	n, err := r.queries.UpdateAlert(ctx, r.db, converter.AlertStateToInfra(a))
	if err != nil {
		return infra.WrapRepoErr("failed to update alert", err)
	}
	if n == 0 {
		return infra.NotFound("alert not found")
	}
	return nil
}

func (r *AlertRepository) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteTerminalAlertsBefore(ctx, r.db, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge alerts", err)
	}
	return n, nil
}

func decodeAlerts(rows []sqlc.Alerts) ([]*alert.Alert, error) {
	out, err := converter.AlertsToDomain(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode alerts", err)
	}
	return out, nil
}

package repository

import (
	"context"

	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository/converter"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RecurrenceQueries interface {
	CreateRecurrenceConfig(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateRecurrenceConfigParams) error
	GetRecurrenceConfig(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.RecurrenceConfigs, error)
	ListActiveRecurrenceConfigs(ctx context.Context, db sqlc.DBTX) ([]sqlc.RecurrenceConfigs, error)
	UpdateRecurrenceConfig(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateRecurrenceConfigParams) (int64, error)
	DeleteRecurrenceConfig(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	InsertRecurrenceOccurrence(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertRecurrenceOccurrenceParams) error
	ListRecurrenceOccurrences(ctx context.Context, db sqlc.DBTX, configID uuid.UUID) ([]sqlc.RecurrenceOccurrences, error)
}

type RecurrenceRepository struct {
	queries RecurrenceQueries
	db      sqlc.DBTX
}

func NewRecurrenceRepository(queries RecurrenceQueries, db sqlc.DBTX) *RecurrenceRepository {
	return &RecurrenceRepository{
		queries: queries,
		db:      db,
	}
}

func (r *RecurrenceRepository) Create(ctx context.Context, cfg *recurrence.Config) error {
	if err := r.queries.CreateRecurrenceConfig(ctx, r.db, converter.RecurrenceToInfra(cfg)); err != nil {
		return infra.WrapRepoErr("failed to create recurrence", err)
	}
	return nil
}

func (r *RecurrenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*recurrence.Config, error) {
	row, err := r.queries.GetRecurrenceConfig(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("recurrence not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find recurrence", err)
	}
	cfg, err := converter.RecurrenceToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode recurrence", err)
	}
	return cfg, nil
}

func (r *RecurrenceRepository) ListActive(ctx context.Context) ([]*recurrence.Config, error) {
	rows, err := r.queries.ListActiveRecurrenceConfigs(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active recurrences", err)
	}
	out := make([]*recurrence.Config, 0, len(rows))
	for _, row := range rows {
		cfg, err := converter.RecurrenceToDomain(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode recurrence", err)
		}
		out = append(out, cfg)
	}
	return out, nil
}

func (r *RecurrenceRepository) Update(ctx context.Context, cfg *recurrence.Config) error {
	n, err := r.queries.UpdateRecurrenceConfig(ctx, r.db, converter.RecurrenceStateToInfra(cfg))
	if err != nil {
		return infra.WrapRepoErr("failed to update recurrence", err)
	}
	if n == 0 {
		return infra.NotFound("recurrence not found")
	}
	return nil
}

// Delete removes the config and its ledger. Reservations keep existing with
// their back-reference cleared.
func (r *RecurrenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteRecurrenceConfig(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete recurrence", err)
	}
	if n == 0 {
		return infra.NotFound("recurrence not found")
	}
	return nil
}

func (r *RecurrenceRepository) RecordOccurrence(ctx context.Context, occ recurrence.Occurrence) error {
	if err := r.queries.InsertRecurrenceOccurrence(ctx, r.db, converter.OccurrenceToInfra(occ)); err != nil {
		return infra.WrapRepoErr("failed to record occurrence", err)
	}
	return nil
}

func (r *RecurrenceRepository) ListOccurrences(ctx context.Context, configID uuid.UUID) ([]recurrence.Occurrence, error) {
	rows, err := r.queries.ListRecurrenceOccurrences(ctx, r.db, configID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occurrences", err)
	}
	out := make([]recurrence.Occurrence, len(rows))
	for i, row := range rows {
		out[i] = converter.OccurrenceToDomain(row)
	}
	return out, nil
}

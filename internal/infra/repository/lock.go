package repository

import (
	"context"

	"facility-booking/internal/infra"
	sqlc "facility-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type LockQueries interface {
	AcquireXactLock(ctx context.Context, db sqlc.DBTX, lockKey string) error
}

// AdvisoryLockManager takes transaction-scoped advisory locks. They are
// released by Postgres on commit or rollback.
type AdvisoryLockManager struct {
	queries LockQueries
	db      sqlc.DBTX
}

func NewAdvisoryLockManager(queries LockQueries, db sqlc.DBTX) *AdvisoryLockManager {
	return &AdvisoryLockManager{
		queries: queries,
		db:      db,
	}
}

func (m *AdvisoryLockManager) LockResource(ctx context.Context, resourceID uuid.UUID) error {
	return m.lock(ctx, "resource:"+resourceID.String())
}

func (m *AdvisoryLockManager) LockRecurrence(ctx context.Context, configID uuid.UUID) error {
	return m.lock(ctx, "recurrence:"+configID.String())
}

func (m *AdvisoryLockManager) lock(ctx context.Context, key string) error {
	if err := m.queries.AcquireXactLock(ctx, m.db, key); err != nil {
		return infra.WrapRepoErr("failed to acquire lock "+key, err)
	}
	return nil
}

package sqlc

import (
	"context"
)

const acquireXactLock = `-- name: AcquireXactLock :exec
SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))
`

func (q *Queries) AcquireXactLock(ctx context.Context, db DBTX, lockKey string) error {
	_, err := db.Exec(ctx, acquireXactLock, lockKey)
	return err
}

package components

import (
	"facility-booking/internal/infra/notifier"
	"facility-booking/internal/infra/repository"
	sqlc "facility-booking/internal/infra/sqlc/generated"
	"facility-booking/internal/infra/uow"
	"facility-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

// Transactional repositories are built per transaction by the unit of work;
// only the pool-bound contact lookup is provided here.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Contact
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.ContactQueries)),
		),
		fx.Annotate(
			repository.NewContactRepository,
			fx.As(new(notifier.ContactFinder)),
		),
		fx.Annotate(
			notifier.NewDirectory,
			fx.As(new(shared.ContactDirectory)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

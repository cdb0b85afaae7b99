package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the entity repositories with the transaction boundary each
// broking operation runs inside. Two implementations exist: postgres for the
// real service and an in-memory one for tests and local runs, selected by
// configuration.
type Store interface {
	Users() UserRepository
	Equities() EquityRepository
	Holdings() HoldingRepository

	// WithinTransaction runs fn inside a single serializable transaction.
	// Repository calls made with the provided tx share that transaction;
	// any error from fn rolls the whole operation back.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// querier is the subset of pgx shared by the pool and a transaction, so a
// repository method can run against either.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type postgresStore struct {
	db       *pgxpool.Pool
	users    UserRepository
	equities EquityRepository
	holdings HoldingRepository
}

func NewPostgresStore(db *pgxpool.Pool) Store {
	return &postgresStore{
		db:       db,
		users:    NewUserRepository(db),
		equities: NewEquityRepository(db),
		holdings: NewHoldingRepository(db),
	}
}

func (s *postgresStore) Users() UserRepository       { return s.users }
func (s *postgresStore) Equities() EquityRepository  { return s.equities }
func (s *postgresStore) Holdings() HoldingRepository { return s.holdings }

func (s *postgresStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return wrapStorage(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapStorage(err)
	}
	return nil
}

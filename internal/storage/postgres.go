package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgettracker/expense-api/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

var postgresDialect = &dialect{
	isNoRows: func(err error) bool {
		return errors.Is(err, pgx.ErrNoRows)
	},
	isUniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	},
	timeDest: func(t *time.Time) any {
		return t
	},
}

type PostgresStore struct {
	db *database.DBManager
}

func NewPostgresStore(db *database.DBManager) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// Begin starts a transaction. Read-only sessions go to a replica when one
// is configured.
func (s *PostgresStore) Begin(ctx context.Context, readOnly bool) (Session, error) {
	pool := s.db.Write()
	opts := pgx.TxOptions{AccessMode: pgx.ReadWrite}
	if readOnly {
		pool = s.db.Read()
		opts.AccessMode = pgx.ReadOnly
	}

	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return newSession(pgxTx{tx: tx}, postgresDialect), nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.db.Write().Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Stats() map[string]interface{} {
	return s.db.Stats()
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

type pgxTx struct {
	tx pgx.Tx
}

func (t pgxTx) exec(ctx context.Context, query string, args ...any) (int64, error) {
	cmdTag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

func (t pgxTx) queryRow(ctx context.Context, query string, args ...any) rowScanner {
	return t.tx.QueryRow(ctx, query, args...)
}

func (t pgxTx) query(ctx context.Context, query string, args ...any) (rowIterator, error) {
	return t.tx.Query(ctx, query, args...)
}

func (t pgxTx) commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t pgxTx) rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgettracker/expense-api/internal/config"
	"github.com/budgettracker/expense-api/internal/database"
	"github.com/budgettracker/expense-api/internal/models"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("record not found")
)

// Store hands out one Session per request.
type Store interface {
	Begin(ctx context.Context, readOnly bool) (Session, error)
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Session is a unit of work backed by a single transaction. Close rolls
// back anything not committed and is safe to call after Commit.
type Session interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error)
	GetExpense(ctx context.Context, id, userID int64) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id, userID int64) error

	Commit(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open builds the Store selected by cfg.Driver and ensures the schema exists.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		var db *database.DBManager
		db, err = database.NewDBManager(ctx, database.Config{
			PrimaryDSN:      cfg.PrimaryDSN,
			ReplicaDSNs:     cfg.ReplicaDSNs,
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			MaxConnLifetime: cfg.MaxConnLifetime,
			MaxConnIdleTime: cfg.MaxConnIdleTime,
		})
		if err == nil {
			store = NewPostgresStore(db)
		}
	case config.DriverSQLite:
		store, err = NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return store, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carsharing-backend/internal/repository"

	"github.com/lib/pq"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store exposes pool-bound repositories for plain reads and creates
// transaction scopes for the rental lifecycle.
type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		UserRepository:   NewUserRepository(db),
		CarRepository:    NewCarRepository(db),
		RentalRepository: NewRentalRepository(db),
	}
}

// NewUnitOfWork returns a fresh transaction scope over the store's pool.
func (s *Store) NewUnitOfWork() repository.UnitOfWork {
	return NewUnitOfWork(s.db)
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const (
	pqUniqueViolation = "23505"
	pqCheckViolation  = "23514"

	openRentalIndex = "rentals_one_open_per_user"
)

// pageWindow turns a 1-based page into LIMIT/OFFSET. Both inputs clamp to at
// least 1; the offset is computed in int64 so large pages cannot wrap.
func pageWindow(page, pageSize int32) (limit, offset int64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return int64(pageSize), int64(page-1) * int64(pageSize)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqUniqueViolation && (constraint == "" || pqErr.Constraint == constraint)
}

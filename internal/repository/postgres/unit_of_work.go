package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"
)

// unitOfWork owns at most one *sql.Tx. Lifecycle checks rely on row locks
// taken with SELECT ... FOR UPDATE, so READ COMMITTED is enough.
type unitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) repository.UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}
	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	logger.Debug("Transaction started")
	u.tx = tx
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	logger.Debug("Transaction committed")
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	logger.Debug("Transaction rolled back")
	return nil
}

func (u *unitOfWork) conn() DBTX {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *unitOfWork) Users() repository.UserRepository {
	return NewUserRepository(u.conn())
}

func (u *unitOfWork) Cars() repository.CarRepository {
	return NewCarRepository(u.conn())
}

func (u *unitOfWork) Rentals() repository.RentalRepository {
	return NewRentalRepository(u.conn())
}

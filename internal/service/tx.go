package service

import (
	"context"

	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"
)

// runInTx runs fn inside uow. Any error or panic from fn rolls the
// transaction back and reaches the caller unchanged.
func runInTx(ctx context.Context, uow repository.UnitOfWork, fn func() error) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			rollback(uow)
			panic(p)
		}
	}()

	if err := fn(); err != nil {
		rollback(uow)
		return err
	}
	return uow.Commit()
}

func rollback(uow repository.UnitOfWork) {
	if err := uow.Rollback(); err != nil {
		logger.Error("Failed to roll back transaction", "error", err)
	}
}

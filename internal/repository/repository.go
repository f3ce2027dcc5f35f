package repository

import (
	"context"
	"errors"
	"time"

	"carsharing-backend/internal/domain"
)

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrOpenRentalExists is returned by RentalRepository.Create when the user
// already holds an open rental at the storage level.
var ErrOpenRentalExists = errors.New("user already has an open rental")

// ErrInventoryNegative is returned by CarRepository.Update when storage
// rejects an inventory below zero.
var ErrInventoryNegative = errors.New("car inventory cannot go below zero")

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByIDForUpdate locks the user row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.User, error)
}

type CarRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) (*domain.Car, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Car, error)
}

// RentalFilter narrows rental queries. An empty UserID matches every user and
// a nil IsActive matches open and closed rentals.
type RentalFilter struct {
	UserID   string
	IsActive *bool
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) (bool, error)
	// ListByUser lists rentals of userID, or of every user when userID is empty.
	ListByUser(ctx context.Context, userID string, isActive *bool) ([]domain.Rental, error)
	ListOpenByUser(ctx context.Context, userID string) ([]domain.Rental, error)
	List(ctx context.Context, filter RentalFilter) ([]domain.Rental, error)
	ListAllWithDetails(ctx context.Context, filter RentalFilter, page, pageSize int32) ([]domain.RentalDetails, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.RentalDetails, error)
}

// UnitOfWork is one transaction scope. Begin is a no-op while a transaction
// is active; Commit and Rollback end it and are no-ops when none is active.
// The repositories it hands out run inside the active transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	Users() UserRepository
	Cars() CarRepository
	Rentals() RentalRepository
}

type UnitOfWorkFactory interface {
	NewUnitOfWork() UnitOfWork
}

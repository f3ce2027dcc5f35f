package service

import (
	"context"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository"
)

type RentalService interface {
	RentCar(ctx context.Context, req domain.RentalRequest) (*domain.Rental, error)
	ReturnCar(ctx context.Context, rentalID int32) (*domain.Rental, error)
	GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, filter repository.RentalFilter) ([]domain.Rental, error)
	ListRentalsWithDetails(ctx context.Context, filter repository.RentalFilter, page, pageSize int32) ([]domain.RentalDetails, error)
	ListOverdueRentals(ctx context.Context) ([]domain.RentalDetails, error)
}

// CarService is the read-only view of the car catalog.
type CarService interface {
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	ListCars(ctx context.Context, page, size int32) ([]domain.Car, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"
)

type rentalService struct {
	uowFactory repository.UnitOfWorkFactory
	rentalRepo repository.RentalRepository
}

// NewRentalService wires the lifecycle engine. Rent and return run in a scope
// obtained from uowFactory; reads go straight to rentalRepo.
func NewRentalService(uowFactory repository.UnitOfWorkFactory, rentalRepo repository.RentalRepository) RentalService {
	return &rentalService{
		uowFactory: uowFactory,
		rentalRepo: rentalRepo,
	}
}

func (s *rentalService) RentCar(ctx context.Context, req domain.RentalRequest) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.RentCar", "userID", req.UserID, "carID", req.CarID)
	if err := req.Validate(); err != nil {
		logger.ExitMethodWithError("rentalService.RentCar", err, "userID", req.UserID, "carID", req.CarID)
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork()
	var rental *domain.Rental
	err := runInTx(ctx, uow, func() error {
		if _, err := uow.Users().GetByIDForUpdate(ctx, req.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf("User with id %s not found", req.UserID)
			}
			return fmt.Errorf("resolve user %s: %w", req.UserID, err)
		}

		open, err := uow.Rentals().ListOpenByUser(ctx, req.UserID)
		if err != nil {
			return fmt.Errorf("list open rentals of %s: %w", req.UserID, err)
		}
		if len(open) > 0 {
			return domain.NewConflict("You already have an open rental.")
		}

		car, err := uow.Cars().GetByIDForUpdate(ctx, req.CarID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf("Car with id %d not found", req.CarID)
			}
			return fmt.Errorf("resolve car %d: %w", req.CarID, err)
		}
		if !car.Available() {
			return domain.Conflictf("Car id %d is not available for rent.", car.ID)
		}

		car.Inventory--
		if _, err := uow.Cars().Update(ctx, car); err != nil {
			if errors.Is(err, repository.ErrInventoryNegative) {
				return domain.Conflictf("Car id %d is not available for rent.", car.ID)
			}
			return fmt.Errorf("update car %d: %w", car.ID, err)
		}

		rental = &domain.Rental{
			UserID:     req.UserID,
			CarID:      req.CarID,
			RentalDate: req.RentalDate.UTC(),
			ReturnDate: req.ReturnDate.UTC(),
		}
		if err := uow.Rentals().Create(ctx, rental); err != nil {
			if errors.Is(err, repository.ErrOpenRentalExists) {
				return domain.NewConflict("You already have an open rental.")
			}
			return fmt.Errorf("create rental: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.RentCar", err, "userID", req.UserID, "carID", req.CarID)
		return nil, err
	}

	logger.Info("New rental created", "rentalID", rental.ID, "userID", rental.UserID, "carID", rental.CarID)
	logger.ExitMethod("rentalService.RentCar", "rentalID", rental.ID)
	return rental, nil
}

func (s *rentalService) ReturnCar(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.ReturnCar", "rentalID", rentalID)
	if rentalID <= 0 {
		err := domain.NewInvalid("RentalId must be positive.")
		logger.ExitMethodWithError("rentalService.ReturnCar", err, "rentalID", rentalID)
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork()
	var rental *domain.Rental
	err := runInTx(ctx, uow, func() error {
		rt, err := uow.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf("Can't find a rental by ID: %d", rentalID)
			}
			return fmt.Errorf("resolve rental %d: %w", rentalID, err)
		}
		if !rt.Close(time.Now()) {
			return domain.NewConflict("This rental is already closed.")
		}

		updated, err := uow.Rentals().Update(ctx, rt)
		if err != nil {
			return fmt.Errorf("close rental %d: %w", rentalID, err)
		}
		if !updated {
			return domain.NotFoundf("Can't find a rental by ID: %d", rentalID)
		}

		car, err := uow.Cars().GetByIDForUpdate(ctx, rt.CarID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			logger.Warn("Rental closed without inventory update, car is gone", "rentalID", rt.ID, "carID", rt.CarID)
		case err != nil:
			return fmt.Errorf("resolve car %d: %w", rt.CarID, err)
		default:
			car.Inventory++
			if _, err := uow.Cars().Update(ctx, car); err != nil {
				return fmt.Errorf("update car %d: %w", car.ID, err)
			}
		}

		rental = rt
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.ReturnCar", err, "rentalID", rentalID)
		return nil, err
	}

	logger.Info("Rental closed", "rentalID", rental.ID)
	logger.ExitMethod("rentalService.ReturnCar", "rentalID", rental.ID)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	if rentalID <= 0 {
		return nil, domain.NewInvalid("RentalId must be positive.")
	}
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFoundf("Can't find a rental by ID: %d", rentalID)
		}
		return nil, fmt.Errorf("get rental %d: %w", rentalID, err)
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, filter repository.RentalFilter) ([]domain.Rental, error) {
	rentals, err := s.rentalRepo.ListByUser(ctx, filter.UserID, filter.IsActive)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	return rentals, nil
}

func (s *rentalService) ListRentalsWithDetails(ctx context.Context, filter repository.RentalFilter, page, pageSize int32) ([]domain.RentalDetails, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	items, err := s.rentalRepo.ListAllWithDetails(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list rentals with details: %w", err)
	}
	if items == nil {
		items = []domain.RentalDetails{}
	}
	return items, nil
}

// ListOverdueRentals returns open rentals whose planned return date has passed.
func (s *rentalService) ListOverdueRentals(ctx context.Context) ([]domain.RentalDetails, error) {
	items, err := s.rentalRepo.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list overdue rentals: %w", err)
	}
	return items, nil
}

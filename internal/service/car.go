package service

import (
	"context"
	"errors"
	"fmt"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository"
)

const defaultCarPageSize int32 = 10

type carService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

func (s *carService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	if id <= 0 {
		return nil, domain.NewInvalid("CarId must be positive.")
	}
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFoundf("Can't find a car by this ID: %d", id)
		}
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}
	return car, nil
}

func (s *carService) ListCars(ctx context.Context, page, size int32) ([]domain.Car, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultCarPageSize
	}
	cars, err := s.carRepo.List(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	if cars == nil {
		cars = []domain.Car{}
	}
	return cars, nil
}

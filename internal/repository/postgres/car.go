package postgres

import (
	"context"
	"errors"
	"fmt"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"

	"github.com/lib/pq"
)

type carRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) repository.CarRepository {
	return &carRepository{db: db}
}

const selectCar = `SELECT id, brand, model, type, inventory FROM cars WHERE id = $1`

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	return r.get(ctx, selectCar, id)
}

func (r *carRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error) {
	return r.get(ctx, selectCar+" FOR UPDATE", id)
}

func (r *carRepository) get(ctx context.Context, query string, id int32) (*domain.Car, error) {
	logger.DatabaseCall("carRepository.GetByID", query, "carID", id)
	c := &domain.Car{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Brand, &c.Model, &c.Type, &c.Inventory); err != nil {
		return nil, notFound(err)
	}
	normalizeCarType(c)
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) (*domain.Car, error) {
	query := `UPDATE cars SET brand=$1, model=$2, type=$3, inventory=$4 WHERE id=$5`
	logger.DatabaseCall("carRepository.Update", query, "carID", c.ID, "inventory", c.Inventory)
	res, err := r.db.ExecContext(ctx, query, c.Brand, c.Model, c.Type, c.Inventory, c.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqCheckViolation {
			return nil, fmt.Errorf("update car %d: %w", c.ID, repository.ErrInventoryNegative)
		}
		logger.DatabaseResult("carRepository.Update", 0, err)
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	logger.DatabaseResult("carRepository.Update", rows, nil)
	if rows == 0 {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *carRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Car, error) {
	limit, offset := pageWindow(page, pageSize)
	query := `SELECT id, brand, model, type, inventory FROM cars ORDER BY id LIMIT $1 OFFSET $2`
	logger.DatabaseCall("carRepository.List", query, "page", page, "pageSize", pageSize)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.Brand, &c.Model, &c.Type, &c.Inventory); err != nil {
			return nil, err
		}
		normalizeCarType(&c)
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

// normalizeCarType fixes the casing of known types. Unknown values are kept
// as stored.
func normalizeCarType(c *domain.Car) {
	if t, err := domain.ParseCarType(string(c.Type)); err == nil {
		c.Type = t
	}
}

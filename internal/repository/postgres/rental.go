package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
)

var dialect = goqu.Dialect("postgres")

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const (
	rentalColumns = `id, user_id, car_id, rental_date, return_date, actual_return_date`
	selectRental  = `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
)

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (user_id, car_id, rental_date, return_date, actual_return_date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	logger.DatabaseCall("rentalRepository.Create", query, "userID", rt.UserID, "carID", rt.CarID)
	err := r.db.QueryRowContext(ctx, query, rt.UserID, rt.CarID, rt.RentalDate, rt.ReturnDate, rt.ActualReturnDate).Scan(&rt.ID)
	if err != nil {
		if isUniqueViolation(err, openRentalIndex) {
			return repository.ErrOpenRentalExists
		}
		logger.DatabaseResult("rentalRepository.Create", 0, err)
		return err
	}
	logger.DatabaseResult("rentalRepository.Create", 1, nil, "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	return r.get(ctx, selectRental, id)
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	return r.get(ctx, selectRental+" FOR UPDATE", id)
}

func (r *rentalRepository) get(ctx context.Context, query string, id int32) (*domain.Rental, error) {
	logger.DatabaseCall("rentalRepository.GetByID", query, "rentalID", id)
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rt, nil
}

// Update never overwrites an actual return date that is already set.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) (bool, error) {
	query := `UPDATE rentals SET rental_date=$1, return_date=$2, actual_return_date=COALESCE(actual_return_date, $3) WHERE id=$4`
	logger.DatabaseCall("rentalRepository.Update", query, "rentalID", rt.ID)
	res, err := r.db.ExecContext(ctx, query, rt.RentalDate, rt.ReturnDate, rt.ActualReturnDate, rt.ID)
	if err != nil {
		logger.DatabaseResult("rentalRepository.Update", 0, err)
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	logger.DatabaseResult("rentalRepository.Update", rows, nil)
	return rows > 0, nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID string, isActive *bool) ([]domain.Rental, error) {
	return r.List(ctx, repository.RentalFilter{UserID: userID, IsActive: isActive})
}

func (r *rentalRepository) ListOpenByUser(ctx context.Context, userID string) ([]domain.Rental, error) {
	active := true
	return r.List(ctx, repository.RentalFilter{UserID: userID, IsActive: &active})
}

func (r *rentalRepository) List(ctx context.Context, filter repository.RentalFilter) ([]domain.Rental, error) {
	ds := dialect.From(goqu.T("rentals").As("r")).
		Select(rentalSelect()...).
		Where(filterExpressions(filter)...).
		Order(goqu.I("r.id").Asc()).
		Prepared(true)

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build rental list query: %w", err)
	}
	logger.DatabaseCall("rentalRepository.List", query, "userID", filter.UserID)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ListAllWithDetails(ctx context.Context, filter repository.RentalFilter, page, pageSize int32) ([]domain.RentalDetails, error) {
	limit, offset := pageWindow(page, pageSize)
	ds := detailsDataset().
		Where(filterExpressions(filter)...).
		Order(goqu.I("r.rental_date").Desc(), goqu.I("r.id").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset))

	return r.queryDetails(ctx, "rentalRepository.ListAllWithDetails", ds)
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.RentalDetails, error) {
	ds := detailsDataset().
		Where(
			goqu.I("r.actual_return_date").IsNull(),
			goqu.I("r.return_date").Lt(asOf),
		).
		Order(goqu.I("r.return_date").Asc(), goqu.I("r.id").Asc())

	return r.queryDetails(ctx, "rentalRepository.ListOverdue", ds)
}

func (r *rentalRepository) queryDetails(ctx context.Context, op string, ds *goqu.SelectDataset) ([]domain.RentalDetails, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build rental details query: %w", err)
	}
	logger.DatabaseCall(op, query)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.RentalDetails{}
	for rows.Next() {
		var d domain.RentalDetails
		if err := rows.Scan(&d.ID, &d.UserID, &d.CarID, &d.RentalDate, &d.ReturnDate, &d.ActualReturnDate,
			&d.CarBrand, &d.CarModel, &d.UserName, &d.UserEmail); err != nil {
			return nil, err
		}
		normalizeTimes(&d.Rental)
		items = append(items, d)
	}
	return items, rows.Err()
}

// detailsDataset left joins cars and users so a rental survives a missing
// car or user row.
func detailsDataset() *goqu.SelectDataset {
	cols := append(rentalSelect(),
		goqu.I("c.brand"), goqu.I("c.model"),
		goqu.I("u.user_name"), goqu.I("u.email"),
	)
	return dialect.From(goqu.T("rentals").As("r")).
		LeftJoin(goqu.T("cars").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("r.car_id")))).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.user_id")))).
		Select(cols...)
}

func rentalSelect() []any {
	return []any{
		goqu.I("r.id"), goqu.I("r.user_id"), goqu.I("r.car_id"),
		goqu.I("r.rental_date"), goqu.I("r.return_date"), goqu.I("r.actual_return_date"),
	}
}

func filterExpressions(filter repository.RentalFilter) []exp.Expression {
	var where []exp.Expression
	if filter.UserID != "" {
		where = append(where, goqu.I("r.user_id").Eq(filter.UserID))
	}
	if filter.IsActive != nil {
		if *filter.IsActive {
			where = append(where, goqu.I("r.actual_return_date").IsNull())
		} else {
			where = append(where, goqu.I("r.actual_return_date").IsNotNull())
		}
	}
	return where
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var actual sql.NullTime
	if err := row.Scan(&rt.ID, &rt.UserID, &rt.CarID, &rt.RentalDate, &rt.ReturnDate, &actual); err != nil {
		return nil, err
	}
	if actual.Valid {
		rt.ActualReturnDate = &actual.Time
	}
	normalizeTimes(rt)
	return rt, nil
}

func normalizeTimes(rt *domain.Rental) {
	rt.RentalDate = rt.RentalDate.UTC()
	rt.ReturnDate = rt.ReturnDate.UTC()
	if rt.ActualReturnDate != nil {
		t := rt.ActualReturnDate.UTC()
		rt.ActualReturnDate = &t
	}
}

package postgres_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository"
	"carsharing-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rentalCols = []string{"id", "user_id", "car_id", "rental_date", "return_date", "actual_return_date"}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rental := &domain.Rental{UserID: "u1", CarID: 10, RentalDate: start, ReturnDate: start.Add(48 * time.Hour)}
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs("u1", int32(10), rental.RentalDate, rental.ReturnDate, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), rental.ID)
	})

	t.Run("Open rental index violation", func(t *testing.T) {
		rental := &domain.Rental{UserID: "u1", CarID: 10, RentalDate: start, ReturnDate: start}
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "rentals_one_open_per_user"})

		err := repo.Create(ctx, rental)
		assert.ErrorIs(t, err, repository.ErrOpenRentalExists)
	})

	t.Run("Other failure passes through", func(t *testing.T) {
		rental := &domain.Rental{UserID: "u1", CarID: 10, RentalDate: start, ReturnDate: start}
		mock.ExpectQuery("INSERT INTO rentals").WillReturnError(errors.New("connection reset"))

		err := repo.Create(ctx, rental)
		assert.EqualError(t, err, "connection reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	local := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2026, 3, 1, 13, 0, 0, 0, local)

	t.Run("Open rental", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM rentals WHERE id = $1")).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows(rentalCols).AddRow(1, "u1", 10, start, start.Add(time.Hour), nil))

		rt, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.True(t, rt.IsOpen())
		assert.Equal(t, time.UTC, rt.RentalDate.Location())
		assert.Equal(t, 10, rt.RentalDate.Hour())
	})

	t.Run("Closed rental for update", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM rentals WHERE id = $1 FOR UPDATE")).
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows(rentalCols).AddRow(2, "u1", 10, start, start, start.Add(2*time.Hour)))

		rt, err := repo.GetByIDForUpdate(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, rt.ActualReturnDate)
		assert.False(t, rt.IsOpen())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("FROM rentals").WithArgs(int32(3)).WillReturnRows(sqlmock.NewRows(rentalCols))

		_, err := repo.GetByID(ctx, 3)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	rt := &domain.Rental{ID: 1, UserID: "u1", CarID: 10, RentalDate: now, ReturnDate: now, ActualReturnDate: &now}

	mock.ExpectExec(regexp.QuoteMeta("actual_return_date=COALESCE(actual_return_date, $3)")).
		WithArgs(rt.RentalDate, rt.ReturnDate, now, int32(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.Update(ctx, rt)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec("UPDATE rentals").WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.Update(ctx, rt)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Open rentals of one user", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE (("r"."user_id" = $1) AND ("r"."actual_return_date" IS NULL)) ORDER BY "r"."id" ASC`)).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(rentalCols).AddRow(4, "u1", 10, now, now, nil))

		rentals, err := repo.ListOpenByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, rentals, 1)
		assert.Equal(t, int32(4), rentals[0].ID)
	})

	t.Run("Closed rentals of every user", func(t *testing.T) {
		closed := false
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE ("r"."actual_return_date" IS NOT NULL)`)).
			WillReturnRows(sqlmock.NewRows(rentalCols))

		rentals, err := repo.List(ctx, repository.RentalFilter{IsActive: &closed})
		require.NoError(t, err)
		assert.NotNil(t, rentals)
		assert.Empty(t, rentals)
	})

	t.Run("No filter", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "rentals" AS "r" ORDER BY "r"."id" ASC`)).
			WillReturnRows(sqlmock.NewRows(rentalCols).AddRow(1, "u1", 10, now, now, now).AddRow(2, "u2", 11, now, now, nil))

		rentals, err := repo.ListByUser(ctx, "", nil)
		require.NoError(t, err)
		assert.Len(t, rentals, 2)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListAllWithDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	cols := append(append([]string{}, rentalCols...), "brand", "model", "user_name", "email")
	active := true

	mock.ExpectQuery(`LEFT JOIN "cars" AS "c" .* LEFT JOIN "users" AS "u" .* WHERE \("r"\."actual_return_date" IS NULL\) ORDER BY "r"\."rental_date" DESC, "r"\."id" DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(int64(50), int64(50)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(9, "u1", 10, now, now, nil, "Skoda", "Octavia", "alice", "alice@example.com").
			AddRow(8, "u2", 99, now.Add(-time.Hour), now, nil, nil, nil, nil, nil))

	items, err := repo.ListAllWithDetails(ctx, repository.RentalFilter{IsActive: &active}, 2, 50)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].CarBrand)
	assert.Equal(t, "Skoda", *items[0].CarBrand)
	assert.Equal(t, "alice@example.com", *items[0].UserEmail)
	assert.Nil(t, items[1].CarBrand)
	assert.Nil(t, items[1].UserName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListAllWithDetails_Paging(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	cols := append(append([]string{}, rentalCols...), "brand", "model", "user_name", "email")

	// A zero offset is left out of the generated SQL.
	tests := []struct {
		name           string
		page, pageSize int32
		pattern        string
		args           []driver.Value
	}{
		{"clamped to first page of one", 0, 0, `LIMIT \$1$`, []driver.Value{int64(1)}},
		{"negative input", -3, -10, `LIMIT \$1$`, []driver.Value{int64(1)}},
		{"third page", 3, 20, `LIMIT \$1 OFFSET \$2$`, []driver.Value{int64(20), int64(40)}},
		{"last int32 page does not wrap", 2147483647, 50, `LIMIT \$1 OFFSET \$2$`, []driver.Value{int64(50), int64(107374182300)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(tt.pattern).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(cols))

			items, err := repo.ListAllWithDetails(ctx, repository.RentalFilter{}, tt.page, tt.pageSize)
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRentalRepository_ListOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	cols := append(append([]string{}, rentalCols...), "brand", "model", "user_name", "email")

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (("r"."actual_return_date" IS NULL) AND ("r"."return_date" < $1)) ORDER BY "r"."return_date" ASC, "r"."id" ASC`)).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, "u1", 10, now.Add(-72*time.Hour), now.Add(-24*time.Hour), nil, "Kia", "Rio", "alice", "alice@example.com"))

	items, err := repo.ListOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int32(3), items[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

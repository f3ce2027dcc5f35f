package service

import (
	"context"
	"sort"
	"time"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository"
)

// fakeStore is an in-memory store with snapshot transactions. Begin copies
// the committed state and Commit publishes the copy in place, so readers
// holding the committed *fakeState see it. Rollback drops the copy.
type fakeStore struct {
	state   *fakeState
	commits int
}

type fakeState struct {
	users        map[string]domain.User
	cars         map[int32]domain.Car
	rentals      map[int32]domain.Rental
	nextRentalID int32
	// createErr, when set, makes every rental insert fail.
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: &fakeState{
		users:   map[string]domain.User{},
		cars:    map[int32]domain.Car{},
		rentals: map[int32]domain.Rental{},
	}}
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{
		users:        make(map[string]domain.User, len(s.users)),
		cars:         make(map[int32]domain.Car, len(s.cars)),
		rentals:      make(map[int32]domain.Rental, len(s.rentals)),
		nextRentalID: s.nextRentalID,
		createErr:    s.createErr,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.cars {
		c.cars[k] = v
	}
	for k, v := range s.rentals {
		c.rentals[k] = v
	}
	return c
}

func (s *fakeStore) NewUnitOfWork() repository.UnitOfWork {
	return &fakeUnitOfWork{store: s}
}

func (s *fakeStore) car(id int32) domain.Car {
	return s.state.cars[id]
}

type fakeUnitOfWork struct {
	store  *fakeStore
	staged *fakeState
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.staged == nil {
		u.staged = u.store.state.clone()
	}
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.staged == nil {
		return nil
	}
	*u.store.state = *u.staged
	u.store.commits++
	u.staged = nil
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.staged = nil
	return nil
}

func (u *fakeUnitOfWork) current() *fakeState {
	if u.staged != nil {
		return u.staged
	}
	return u.store.state
}

func (u *fakeUnitOfWork) Users() repository.UserRepository     { return fakeUsers{u.current()} }
func (u *fakeUnitOfWork) Cars() repository.CarRepository       { return fakeCars{u.current()} }
func (u *fakeUnitOfWork) Rentals() repository.RentalRepository { return fakeRentals{u.current()} }

type fakeUsers struct{ s *fakeState }

func (r fakeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	usr, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &usr, nil
}

func (r fakeUsers) GetByIDForUpdate(ctx context.Context, id string) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

type fakeCars struct{ s *fakeState }

func (r fakeCars) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	c, ok := r.s.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r fakeCars) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error) {
	return r.GetByID(ctx, id)
}

func (r fakeCars) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	if _, ok := r.s.cars[car.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	if car.Inventory < 0 {
		return nil, repository.ErrInventoryNegative
	}
	r.s.cars[car.ID] = *car
	return car, nil
}

func (r fakeCars) List(ctx context.Context, page, pageSize int32) ([]domain.Car, error) {
	cars := []domain.Car{}
	for _, c := range r.s.cars {
		cars = append(cars, c)
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	return pageOf(cars, page, pageSize), nil
}

// pageOf mirrors the SQL LIMIT/OFFSET window, clamping both inputs to 1.
func pageOf[T any](items []T, page, pageSize int32) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	offset := int64(page-1) * int64(pageSize)
	if offset >= int64(len(items)) {
		return []T{}
	}
	end := offset + int64(pageSize)
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[offset:end]
}

type fakeRentals struct{ s *fakeState }

func (r fakeRentals) Create(ctx context.Context, rt *domain.Rental) error {
	if r.s.createErr != nil {
		return r.s.createErr
	}
	for _, existing := range r.s.rentals {
		if existing.UserID == rt.UserID && existing.IsOpen() {
			return repository.ErrOpenRentalExists
		}
	}
	r.s.nextRentalID++
	rt.ID = r.s.nextRentalID
	r.s.rentals[rt.ID] = *rt
	return nil
}

func (r fakeRentals) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt, ok := r.s.rentals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rt, nil
}

func (r fakeRentals) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	return r.GetByID(ctx, id)
}

func (r fakeRentals) Update(ctx context.Context, rt *domain.Rental) (bool, error) {
	existing, ok := r.s.rentals[rt.ID]
	if !ok {
		return false, nil
	}
	if existing.ActualReturnDate != nil {
		rt.ActualReturnDate = existing.ActualReturnDate
	}
	r.s.rentals[rt.ID] = *rt
	return true, nil
}

func (r fakeRentals) ListByUser(ctx context.Context, userID string, isActive *bool) ([]domain.Rental, error) {
	return r.List(ctx, repository.RentalFilter{UserID: userID, IsActive: isActive})
}

func (r fakeRentals) ListOpenByUser(ctx context.Context, userID string) ([]domain.Rental, error) {
	active := true
	return r.List(ctx, repository.RentalFilter{UserID: userID, IsActive: &active})
}

func (r fakeRentals) List(ctx context.Context, filter repository.RentalFilter) ([]domain.Rental, error) {
	out := []domain.Rental{}
	for _, rt := range r.s.rentals {
		if filter.UserID != "" && rt.UserID != filter.UserID {
			continue
		}
		if filter.IsActive != nil && rt.IsOpen() != *filter.IsActive {
			continue
		}
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeRentals) ListAllWithDetails(ctx context.Context, filter repository.RentalFilter, page, pageSize int32) ([]domain.RentalDetails, error) {
	rentals, _ := r.List(ctx, filter)
	sort.SliceStable(rentals, func(i, j int) bool { return rentals[i].RentalDate.After(rentals[j].RentalDate) })
	return r.details(pageOf(rentals, page, pageSize)), nil
}

func (r fakeRentals) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.RentalDetails, error) {
	var overdue []domain.Rental
	for _, rt := range r.s.rentals {
		if rt.IsOpen() && rt.ReturnDate.Before(asOf) {
			overdue = append(overdue, rt)
		}
	}
	sort.Slice(overdue, func(i, j int) bool { return overdue[i].ReturnDate.Before(overdue[j].ReturnDate) })
	return r.details(overdue), nil
}

func (r fakeRentals) details(rentals []domain.Rental) []domain.RentalDetails {
	items := make([]domain.RentalDetails, 0, len(rentals))
	for _, rt := range rentals {
		d := domain.RentalDetails{Rental: rt}
		if c, ok := r.s.cars[rt.CarID]; ok {
			d.CarBrand, d.CarModel = &c.Brand, &c.Model
		}
		if u, ok := r.s.users[rt.UserID]; ok {
			d.UserName, d.UserEmail = &u.UserName, &u.Email
		}
		items = append(items, d)
	}
	return items
}

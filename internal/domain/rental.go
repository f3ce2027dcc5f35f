package domain

import "time"

// Rental ties a user to one unit of a car. A nil ActualReturnDate means the
// rental is still open; once set it never changes.
type Rental struct {
	ID               int32
	UserID           string
	CarID            int32
	RentalDate       time.Time
	ReturnDate       time.Time
	ActualReturnDate *time.Time
}

func (r *Rental) IsOpen() bool {
	return r.ActualReturnDate == nil
}

// Close stamps the actual return date. It returns false when the rental was
// already closed and leaves it untouched.
func (r *Rental) Close(at time.Time) bool {
	if !r.IsOpen() {
		return false
	}
	t := at.UTC()
	r.ActualReturnDate = &t
	return true
}

// RentalRequest carries the input of a rent operation.
type RentalRequest struct {
	UserID     string
	CarID      int32
	RentalDate time.Time
	ReturnDate time.Time
}

// Validate checks the request shape without touching any store.
func (r RentalRequest) Validate() error {
	if r.UserID == "" {
		return NewInvalid("UserId is required.")
	}
	if r.CarID <= 0 {
		return NewInvalid("CarId must be positive.")
	}
	if r.RentalDate.IsZero() {
		return NewInvalid("RentalDate is required.")
	}
	if r.ReturnDate.IsZero() {
		return NewInvalid("ReturnDate is required.")
	}
	if r.ReturnDate.Before(r.RentalDate) {
		return NewInvalid("ReturnDate must not be before RentalDate.")
	}
	return nil
}

// RentalDetails is a rental enriched with car and user fields. The optional
// fields stay nil when the joined car or user row does not exist.
type RentalDetails struct {
	Rental
	CarBrand  *string
	CarModel  *string
	UserName  *string
	UserEmail *string
}

package http

import (
	"time"

	"carsharing-backend/internal/domain"
)

type RentalRequestDTO struct {
	UserID     string    `json:"userId"`
	CarID      int32     `json:"carId"`
	RentalDate time.Time `json:"rentalDate"`
	ReturnDate time.Time `json:"returnDate"`
}

type RentalResponseDTO struct {
	RentalID         int32      `json:"rentalId"`
	UserID           string     `json:"userId"`
	CarID            int32      `json:"carId"`
	RentalDate       time.Time  `json:"rentalDate"`
	ReturnDate       time.Time  `json:"returnDate"`
	ActualReturnDate *time.Time `json:"actualReturnDate"`
}

type RentalWithDetailsDTO struct {
	RentalResponseDTO
	CarBrand  *string `json:"carBrand"`
	CarModel  *string `json:"carModel"`
	UserName  *string `json:"userName"`
	UserEmail *string `json:"userEmail"`
}

type CarResponseDTO struct {
	ID    int32  `json:"id"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Type  string `json:"type"`
}

func (d RentalRequestDTO) toDomain() domain.RentalRequest {
	return domain.RentalRequest{
		UserID:     d.UserID,
		CarID:      d.CarID,
		RentalDate: d.RentalDate,
		ReturnDate: d.ReturnDate,
	}
}

func MapDomainRentalToDTO(r *domain.Rental) RentalResponseDTO {
	return RentalResponseDTO{
		RentalID:         r.ID,
		UserID:           r.UserID,
		CarID:            r.CarID,
		RentalDate:       r.RentalDate,
		ReturnDate:       r.ReturnDate,
		ActualReturnDate: r.ActualReturnDate,
	}
}

func MapDomainRentalsToDTO(rentals []domain.Rental) []RentalResponseDTO {
	out := make([]RentalResponseDTO, 0, len(rentals))
	for i := range rentals {
		out = append(out, MapDomainRentalToDTO(&rentals[i]))
	}
	return out
}

func MapDomainRentalDetailsToDTO(items []domain.RentalDetails) []RentalWithDetailsDTO {
	out := make([]RentalWithDetailsDTO, 0, len(items))
	for i := range items {
		d := &items[i]
		out = append(out, RentalWithDetailsDTO{
			RentalResponseDTO: MapDomainRentalToDTO(&d.Rental),
			CarBrand:          d.CarBrand,
			CarModel:          d.CarModel,
			UserName:          d.UserName,
			UserEmail:         d.UserEmail,
		})
	}
	return out
}

func MapDomainCarToDTO(c *domain.Car) CarResponseDTO {
	return CarResponseDTO{
		ID:    c.ID,
		Brand: c.Brand,
		Model: c.Model,
		Type:  string(c.Type),
	}
}

func MapDomainCarsToDTO(cars []domain.Car) []CarResponseDTO {
	out := make([]CarResponseDTO, 0, len(cars))
	for i := range cars {
		out = append(out, MapDomainCarToDTO(&cars[i]))
	}
	return out
}

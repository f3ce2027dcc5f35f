package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"
	"carsharing-backend/internal/service"
)

const defaultDetailsPageSize int32 = 50

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

// RentCar handles POST /api/rental.
func (h *RentalHandler) RentCar(w http.ResponseWriter, r *http.Request) {
	var req RentalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewInvalid("Malformed request body."))
		return
	}

	rental, err := h.rentalSvc.RentCar(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.InfoContext(r.Context(), "Rental created via API", "rentalID", rental.ID, "by", GetUserIDFromContext(r.Context()))

	w.Header().Set("Location", fmt.Sprintf("/api/rental/%d", rental.ID))
	writeJSON(w, http.StatusCreated, MapDomainRentalToDTO(rental))
}

// ListRentals handles GET /api/rental?userId=&isActive=.
func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	filter, err := rentalFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rentals, err := h.rentalSvc.ListRentals(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalsToDTO(rentals))
}

// ListRentalsWithDetails handles GET /api/rental/details.
func (h *RentalHandler) ListRentalsWithDetails(w http.ResponseWriter, r *http.Request) {
	filter, err := rentalFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	page, err := int32Query(q, "page", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pageSize, err := int32Query(q, "pageSize", defaultDetailsPageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.rentalSvc.ListRentalsWithDetails(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalDetailsToDTO(items))
}

// GetRental handles GET /api/rental/{rentalId}.
func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rentalId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalToDTO(rental))
}

// ReturnCar handles PUT /api/rental/{rentalId}/return.
func (h *RentalHandler) ReturnCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rentalId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.rentalSvc.ReturnCar(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalToDTO(rental))
}

func rentalFilter(r *http.Request) (repository.RentalFilter, error) {
	q := r.URL.Query()
	isActive, err := optionalBool(q, "isActive")
	if err != nil {
		return repository.RentalFilter{}, err
	}
	return repository.RentalFilter{UserID: q.Get("userId"), IsActive: isActive}, nil
}

package http

import (
	"net/http"

	"carsharing-backend/internal/service"
)

type CarHandler struct {
	carSvc service.CarService
}

func NewCarHandler(carSvc service.CarService) *CarHandler {
	return &CarHandler{carSvc: carSvc}
}

// ListCars handles GET /api/car?page=&size=.
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := int32Query(q, "page", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	size, err := int32Query(q, "size", 10)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cars, err := h.carSvc.ListCars(r.Context(), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainCarsToDTO(cars))
}

// GetCar handles GET /api/car/{id}.
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	car, err := h.carSvc.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainCarToDTO(car))
}

package http

import (
	"context"
	"net/http"

	"carsharing-backend/internal/config"
	"carsharing-backend/internal/security"
	"carsharing-backend/internal/service"

	"github.com/gorilla/mux"
)

// Pinger reports database reachability for the health route.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires every API route. Route names drive the auth middleware.
func NewRouter(rentalSvc service.RentalService, carSvc service.CarService, tm security.TokenManager, db Pinger) *mux.Router {
	rentals := NewRentalHandler(rentalSvc)
	cars := NewCarHandler(carSvc)
	auth := NewAuthMiddleware(tm)

	router := mux.NewRouter()
	router.Use(RequestID, Logging, Recovery, auth.Handler)

	router.HandleFunc("/health", healthHandler(db)).Methods(http.MethodGet).Name(config.RouteHealth)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rental", rentals.RentCar).Methods(http.MethodPost).Name(config.RouteRentCar)
	api.HandleFunc("/rental", rentals.ListRentals).Methods(http.MethodGet).Name(config.RouteListRentals)
	api.HandleFunc("/rental/details", rentals.ListRentalsWithDetails).Methods(http.MethodGet).Name(config.RouteListRentalDetails)
	api.HandleFunc("/rental/{rentalId:[0-9]+}", rentals.GetRental).Methods(http.MethodGet).Name(config.RouteGetRental)
	api.HandleFunc("/rental/{rentalId:[0-9]+}/return", rentals.ReturnCar).Methods(http.MethodPut).Name(config.RouteReturnCar)

	api.HandleFunc("/car", cars.ListCars).Methods(http.MethodGet).Name(config.RouteListCars)
	api.HandleFunc("/car/{id:[0-9]+}", cars.GetCar).Methods(http.MethodGet).Name(config.RouteGetCar)

	return router
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				writeProblem(w, r, http.StatusServiceUnavailable, "Service unavailable.", "database is unreachable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

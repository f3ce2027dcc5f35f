package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityUser                        // User or Admin role
	SecurityAdmin                       // Admin role only
)

// Route names registered on the HTTP router.
const (
	RouteRentCar           = "rental.create"
	RouteListRentals       = "rental.list"
	RouteListRentalDetails = "rental.details"
	RouteGetRental         = "rental.get"
	RouteReturnCar         = "rental.return"
	RouteListCars          = "car.list"
	RouteGetCar            = "car.get"
	RouteHealth            = "health"
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	RouteHealth: SecurityPublic,

	// Car catalog - Public
	RouteListCars: SecurityPublic,
	RouteGetCar:   SecurityPublic,

	// Rentals
	RouteGetRental:         SecurityUser,
	RouteRentCar:           SecurityAdmin,
	RouteListRentals:       SecurityAdmin,
	RouteListRentalDetails: SecurityAdmin,
	RouteReturnCar:         SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}

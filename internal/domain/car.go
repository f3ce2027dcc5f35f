package domain

import (
	"fmt"
	"strings"
)

type CarType string

const (
	CarTypeSedan     CarType = "Sedan"
	CarTypeSuv       CarType = "Suv"
	CarTypeHatchback CarType = "Hatchback"
	CarTypeUniversal CarType = "Universal"
)

var carTypes = []CarType{CarTypeSedan, CarTypeSuv, CarTypeHatchback, CarTypeUniversal}

// ParseCarType matches s against the known car types ignoring case.
func ParseCarType(s string) (CarType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewInvalid("Car type is required.")
	}
	for _, t := range carTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	allowed := make([]string, len(carTypes))
	for i, t := range carTypes {
		allowed[i] = string(t)
	}
	return "", NewInvalid(fmt.Sprintf("There is no such type of car: '%s'. Allowed: %s.", s, strings.Join(allowed, ", ")))
}

// Car is a catalog entry. Inventory counts the units currently available for rent.
type Car struct {
	ID        int32
	Brand     string
	Model     string
	Type      CarType
	Inventory int32
}

// Available reports whether at least one unit can be rented.
func (c *Car) Available() bool {
	return c.Inventory > 0
}

package domain

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeSedan       Type = "sedan"
	TypeSUV         Type = "suv"
	TypeTruck       Type = "truck"
	TypeSportsCar   Type = "sports_car"
	TypeElectricCar Type = "electric_car"
	TypeVintageCar  Type = "vintage_car"
)

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TypeSedan, TypeSUV, TypeTruck, TypeSportsCar, TypeElectricCar, TypeVintageCar:
		return t, nil
	default:
		return "", fmt.Errorf("unknown vehicle type: %s", raw)
	}
}

// UnlockMiles is the total fleet mileage at which a vehicle of this type
// becomes available.
func (t Type) UnlockMiles() float64 {
	switch t {
	case TypeSUV:
		return 50
	case TypeSportsCar:
		return 100
	case TypeElectricCar:
		return 150
	case TypeTruck:
		return 200
	case TypeVintageCar:
		return 300
	default:
		return 0
	}
}

func (t Type) Label() string {
	switch t {
	case TypeSedan:
		return "Sedan"
	case TypeSUV:
		return "SUV"
	case TypeTruck:
		return "Truck"
	case TypeSportsCar:
		return "Sports Car"
	case TypeElectricCar:
		return "Electric"
	case TypeVintageCar:
		return "Vintage"
	default:
		return string(t)
	}
}

type Vehicle struct {
	ID               string
	Name             string
	Type             Type
	Unlocked         bool
	TimesUsed        int
	TotalMiles       float64
	SpeedRating      int
	ComfortRating    int
	EfficiencyRating int
	Position         int
}

func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("vehicle id is required")
	}
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("vehicle name is required")
	}
	if _, err := ParseType(string(v.Type)); err != nil {
		return err
	}
	for _, r := range []int{v.SpeedRating, v.ComfortRating, v.EfficiencyRating} {
		if r < 1 || r > 5 {
			return fmt.Errorf("vehicle rating must be between 1 and 5")
		}
	}
	if v.TotalMiles < 0 {
		return fmt.Errorf("vehicle mileage must be non-negative")
	}
	return nil
}

// Catalog is the seed fleet. Only the sedan starts unlocked.
func Catalog() []Vehicle {
	return []Vehicle{
		{ID: "classic-sedan", Name: "Classic Sedan", Type: TypeSedan, Unlocked: true, SpeedRating: 3, ComfortRating: 4, EfficiencyRating: 4, Position: 0},
		{ID: "adventure-suv", Name: "Adventure SUV", Type: TypeSUV, SpeedRating: 3, ComfortRating: 5, EfficiencyRating: 3, Position: 1},
		{ID: "lightning-coupe", Name: "Lightning Coupe", Type: TypeSportsCar, SpeedRating: 5, ComfortRating: 3, EfficiencyRating: 2, Position: 2},
		{ID: "eco-cruiser", Name: "Eco Cruiser", Type: TypeElectricCar, SpeedRating: 4, ComfortRating: 4, EfficiencyRating: 5, Position: 3},
		{ID: "workhorse-truck", Name: "Workhorse Truck", Type: TypeTruck, SpeedRating: 2, ComfortRating: 3, EfficiencyRating: 2, Position: 4},
		{ID: "vintage-roadster", Name: "Vintage Roadster", Type: TypeVintageCar, SpeedRating: 3, ComfortRating: 2, EfficiencyRating: 3, Position: 5},
	}
}

func FleetMiles(vehicles []Vehicle) float64 {
	total := 0.0
	for _, v := range vehicles {
		total += v.TotalMiles
	}
	return total
}

// Unlockable returns the locked vehicles whose threshold is covered by
// fleetMiles, in catalog order.
func Unlockable(vehicles []Vehicle, fleetMiles float64) []Vehicle {
	out := []Vehicle{}
	for _, v := range vehicles {
		if v.Unlocked {
			continue
		}
		if fleetMiles >= v.Type.UnlockMiles() {
			out = append(out, v)
		}
	}
	return out
}

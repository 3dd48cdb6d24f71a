package domain

import "math"

// Transport type constants
const (
	TransportMotor TransportType = "MOTOR"
	TransportCar   TransportType = "CAR"
)

// A MOTOR leg carries the driver plus nothing else.
const motorMaxPassengers = 1

type TransportType string

// IsValid checks if the transport type is a known vehicle class.
func (t TransportType) IsValid() bool {
	return t == TransportMotor || t == TransportCar
}

// TransportRate holds the pricing row for one vehicle class.
type TransportRate struct {
	Type      TransportType `json:"type" db:"type"`
	BaseFare  float64       `json:"base_fare" db:"base_fare"`
	RatePerKm float64       `json:"rate_per_km" db:"rate_per_km"`
}

// FareTable maps vehicle classes to their pricing rows.
type FareTable map[TransportType]TransportRate

// DefaultFareTable returns the fallback rates used when the rate store
// has no row for a vehicle class or is unreachable.
func DefaultFareTable() FareTable {
	return FareTable{
		TransportMotor: {Type: TransportMotor, BaseFare: 5000, RatePerKm: 2500},
		TransportCar:   {Type: TransportCar, BaseFare: 10000, RatePerKm: 4000},
	}
}

// SelectVehicle picks the vehicle class for a party. A CAR preference
// always yields CAR; a MOTOR preference is honored only while the party
// fits on the motor, otherwise the leg is upgraded to CAR.
func SelectVehicle(preference TransportType, partyCount int) TransportType {
	if preference == TransportCar {
		return TransportCar
	}
	if partyCount <= motorMaxPassengers {
		return TransportMotor
	}
	return TransportCar
}

// LegEstimate is the priced result for a single travel leg.
type LegEstimate struct {
	VehicleType TransportType `json:"vehicle_type"`
	DistanceKm  float64       `json:"distance_km"`
	BaseFare    float64       `json:"base_fare"`
	RatePerKm   float64       `json:"rate_per_km"`
	Cost        float64       `json:"cost"`
}

// PriceLeg computes the monetary cost of a leg for the given vehicle
// class, rounded to the nearest currency unit. Unknown classes fall back
// to the default rates so pricing never fails mid-pipeline.
func (ft FareTable) PriceLeg(vehicle TransportType, distanceKm float64) LegEstimate {
	rate, ok := ft[vehicle]
	if !ok {
		rate = DefaultFareTable()[vehicle]
	}
	return LegEstimate{
		VehicleType: vehicle,
		DistanceKm:  distanceKm,
		BaseFare:    rate.BaseFare,
		RatePerKm:   rate.RatePerKm,
		Cost:        math.Round(rate.BaseFare + rate.RatePerKm*distanceKm),
	}
}

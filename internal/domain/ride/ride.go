package ride

import (
	"errors"
	"time"
)

// Ride is a snapshot of a booked ride as returned by the ZippGo service.
// Apart from AdvanceTo, applied only after a confirmed server transition,
// a fetched ride is never mutated locally.
type Ride struct {
	ID             string      `json:"id"`
	RiderID        string      `json:"riderId"`
	DriverID       string      `json:"driverId,omitempty"` // empty until accepted
	PickupLocation string      `json:"pickupLocation"`
	DropLocation   string      `json:"dropLocation"`
	VehicleType    VehicleType `json:"vehicleType"`
	Fare           float64     `json:"fare"`
	Status         Status      `json:"status"`
	OTP            string      `json:"otp,omitempty"` // shown to the rider, proves pickup
	BookedAt       time.Time   `json:"bookedAt"`
}

var ErrInvalidStatusTransition = errors.New("invalid ride status transition")

// AdvanceTo moves the snapshot's status forward along the lifecycle graph.
// Transitions outside the table are rejected, including anything out of a
// terminal state.
func (ride *Ride) AdvanceTo(next Status) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if !ride.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}
	ride.Status = next
	return nil
}

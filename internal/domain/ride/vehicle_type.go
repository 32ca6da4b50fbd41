package ride

import (
	"errors"
	"strings"
)

// VehicleType is a bookable vehicle category.
type VehicleType string

const (
	VehicleBike  VehicleType = "Bike"
	VehicleAuto  VehicleType = "Auto"
	VehicleMini  VehicleType = "Mini"
	VehicleSedan VehicleType = "Sedan"
	VehicleSUV   VehicleType = "SUV"
)

var ErrInvalidVehicleType = errors.New("invalid vehicle type")

// ParseVehicleType normalizes and validates a vehicle type string.
func ParseVehicleType(in string) (VehicleType, error) {
	trimmed := strings.TrimSpace(in)
	if strings.EqualFold(trimmed, string(VehicleSUV)) {
		return VehicleSUV, nil
	}
	if trimmed == "" {
		return "", ErrInvalidVehicleType
	}
	vt := VehicleType(strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:]))
	if vt.Valid() {
		return vt, nil
	}
	return "", ErrInvalidVehicleType
}

// Valid reports whether vehicleType is one of the allowed vehicle type constants.
func (vehicleType VehicleType) Valid() bool {
	switch vehicleType {
	case VehicleBike, VehicleAuto, VehicleMini, VehicleSedan, VehicleSUV:
		return true
	default:
		return false
	}
}

// String returns the string representation of the VehicleType.
func (vehicleType VehicleType) String() string {
	return string(vehicleType)
}

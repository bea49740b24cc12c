package account

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// VehicleType classifies a driver's truck by load capacity.
type VehicleType int

const (
	// VehicleUnknown represents an invalid or undefined vehicle type.
	VehicleUnknown VehicleType = iota

	// Truck1T is a 1 ton truck.
	Truck1T

	// Truck1_4T is a 1.4 ton truck.
	Truck1_4T

	// Truck2_5T is a 2.5 ton truck.
	Truck2_5T

	// Truck3_5T is a 3.5 ton truck.
	Truck3_5T

	// Truck5T is a 5 ton truck.
	Truck5T

	// Truck11T is an 11 ton truck.
	Truck11T

	// Truck18T is an 18 ton truck.
	Truck18T

	// Truck25T is a 25 ton truck.
	Truck25T
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		Truck1T:   "TRUCK_1T",
		Truck1_4T: "TRUCK_1_4T",
		Truck2_5T: "TRUCK_2_5T",
		Truck3_5T: "TRUCK_3_5T",
		Truck5T:   "TRUCK_5T",
		Truck11T:  "TRUCK_11T",
		Truck18T:  "TRUCK_18T",
		Truck25T:  "TRUCK_25T",
	}
}

// Validate checks if the VehicleType is one of the eight truck classes.
func (v VehicleType) Validate() error {
	if _, ok := getVehicleTypeStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle type is invalid",
			fmt.Errorf("%d is not a valid vehicle type", v),
		)
	}
	return nil
}

// String returns the persisted name of the vehicle type.
// Invalid values render as "Unknown". Implements fmt.Stringer.
func (v VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[v]; ok {
		return str
	}
	return "Unknown"
}

// VehicleTypeFromString parses a persisted vehicle type name.
func VehicleTypeFromString(name string) (VehicleType, error) {
	for vehicleType, str := range getVehicleTypeStrings() {
		if str == name {
			return vehicleType, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicle type is invalid",
		fmt.Errorf("%q is not a valid vehicle type name", name),
	)
}

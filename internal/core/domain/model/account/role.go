package account

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// DriverRole carries the driver-side identity of a user: the registered
// legal identity the signing vendors verify against, plus the vehicle the
// driver operates. Phone and vehicle ID are unique across all drivers, so
// either one resolves a single driver.
type DriverRole struct {
	id          kernel.UUID
	name        string
	phone       string
	birthday    time.Time
	vehicleID   string
	vehicleType VehicleType
}

// NewDriverRole creates a driver role. birthday carries date precision
// only; the signing vendors receive it as YYYYMMDD.
func NewDriverRole(
	id kernel.UUID,
	name string,
	phone string,
	birthday time.Time,
	vehicleID string,
	vehicleType VehicleType,
) (DriverRole, error) {
	if err := id.Validate(); err != nil {
		return DriverRole{}, err
	}
	if name == "" {
		return DriverRole{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return DriverRole{}, errs.NewValueIsRequiredError("phone")
	}
	if birthday.IsZero() {
		return DriverRole{}, errs.NewValueIsRequiredError("birthday")
	}
	if vehicleID == "" {
		return DriverRole{}, errs.NewValueIsRequiredError("vehicleID")
	}
	if err := vehicleType.Validate(); err != nil {
		return DriverRole{}, err
	}

	return DriverRole{
		id:          id,
		name:        name,
		phone:       phone,
		birthday:    birthday,
		vehicleID:   vehicleID,
		vehicleType: vehicleType,
	}, nil
}

// ID returns the driver role's unique identifier.
func (r DriverRole) ID() kernel.UUID {
	return r.id
}

// Name returns the driver's registered legal name.
func (r DriverRole) Name() string {
	return r.name
}

// Phone returns the driver's registered phone number.
func (r DriverRole) Phone() string {
	return r.phone
}

// Birthday returns the driver's birthdate.
func (r DriverRole) Birthday() time.Time {
	return r.birthday
}

// BirthdayYYYYMMDD returns the birthdate formatted the way the signing
// vendors expect it.
func (r DriverRole) BirthdayYYYYMMDD() string {
	return r.birthday.Format("20060102")
}

// VehicleID returns the driver's vehicle registration number.
func (r DriverRole) VehicleID() string {
	return r.vehicleID
}

// VehicleType returns the driver's truck class.
func (r DriverRole) VehicleType() VehicleType {
	return r.vehicleType
}

// SenderRole carries the shipper-side identity of a user or a company.
// Orders are owned by sender roles, not by users, so company members can
// share one role through their company.
type SenderRole struct {
	id             kernel.UUID
	companyName    string
	companyAddress string
}

// NewSenderRole creates a sender role. Company fields are optional display
// data for lone senders; members resolve them through their company's
// owner instead.
func NewSenderRole(id kernel.UUID, companyName, companyAddress string) (SenderRole, error) {
	if err := id.Validate(); err != nil {
		return SenderRole{}, err
	}

	return SenderRole{
		id:             id,
		companyName:    companyName,
		companyAddress: companyAddress,
	}, nil
}

// ID returns the sender role's unique identifier.
func (r SenderRole) ID() kernel.UUID {
	return r.id
}

// CompanyName returns the role's own display company name. May be empty.
func (r SenderRole) CompanyName() string {
	return r.companyName
}

// CompanyAddress returns the role's own display company address.
// May be empty.
func (r SenderRole) CompanyAddress() string {
	return r.companyAddress
}

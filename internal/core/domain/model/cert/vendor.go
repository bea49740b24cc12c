package cert

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Vendor identifies the remote electronic signature provider a signing
// attempt goes through. Each vendor exposes the same three-phase flow
// (request, poll, verify) with vendor-specific request fields.
type Vendor int

const (
	// VendorUnknown represents an invalid or undefined vendor.
	VendorUnknown Vendor = iota

	// VendorKakao signs through KakaoTalk.
	VendorKakao

	// VendorNaver signs through the Naver app.
	VendorNaver

	// VendorPass signs through the carrier PASS apps.
	VendorPass
)

func getVendorStrings() map[Vendor]string {
	return map[Vendor]string{
		VendorKakao: "KAKAO",
		VendorNaver: "NAVER",
		VendorPass:  "PASS",
	}
}

// Validate checks if the Vendor is one of the three supported providers.
func (v Vendor) Validate() error {
	if _, ok := getVendorStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"vendor is invalid",
			fmt.Errorf("%d is not a valid vendor", v),
		)
	}
	return nil
}

// String returns the persisted name of the vendor.
// Invalid values render as "Unknown". Implements fmt.Stringer.
func (v Vendor) String() string {
	if str, ok := getVendorStrings()[v]; ok {
		return str
	}
	return "Unknown"
}

// VendorFromString parses a persisted vendor name.
func VendorFromString(name string) (Vendor, error) {
	for vendor, str := range getVendorStrings() {
		if str == name {
			return vendor, nil
		}
	}
	return VendorUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vendor is invalid",
		fmt.Errorf("%q is not a valid vendor name", name),
	)
}

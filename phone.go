package bankauth

import "github.com/nyaruka/phonenumbers"

// DefaultPhoneRegion is the region subscriber-typed numbers are parsed
// against when they carry no country code.
const DefaultPhoneRegion = "PL"

// FormatPhoneNumber canonicalizes a subscriber typed phone number into
// the international convention for the given region. Unparseable input
// is returned unchanged so callers can reject it with field validation
// instead of a fault.
func FormatPhoneNumber(raw, region string) string {
	if region == "" {
		region = DefaultPhoneRegion
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return raw
	}

	if !phonenumbers.IsValidNumber(num) {
		return raw
	}

	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

package locale

import (
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

func InferTimezoneFromPhone(phone string) string {
	if country := InferCountryFromPhone(phone); country != nil {
		return country.DefaultTimezone
	}
	return DefaultTimezone
}

// InferCountryFromPhone resolves the country of an international number.
// Numbers the metadata cannot place fall back to calling-code prefixes.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	if parsed, err := phonenumbers.Parse(normalized, ""); err == nil {
		if country, ok := Countries[phonenumbers.GetRegionCodeForNumber(parsed)]; ok {
			return &country
		}
	}

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}

// LocationForPhone resolves the IANA location of a contact number,
// falling back to UTC when the prefix is unknown or the zone database
// lacks the entry.
func LocationForPhone(phone string) *time.Location {
	loc, err := time.LoadLocation(InferTimezoneFromPhone(phone))
	if err != nil {
		return time.UTC
	}
	return loc
}

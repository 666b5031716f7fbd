package locale

import (
	"strings"
)

const (
	DefaultTimezone = "UTC"
	DefaultRegion   = "TN"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "TN", "FR")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // E.164 calling-code prefixes (e.g., ["+216"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "Africa/Tunis")
}

var (
	Countries = map[string]Country{
		"TN": {
			Code:            "TN",
			Name:            "Tunisia",
			PhonePrefixes:   []string{"+216"},
			DefaultTimezone: "Africa/Tunis",
		},
		"FR": {
			Code:            "FR",
			Name:            "France",
			PhonePrefixes:   []string{"+33"},
			DefaultTimezone: "Europe/Paris",
		},
		"BE": {
			Code:            "BE",
			Name:            "Belgium",
			PhonePrefixes:   []string{"+32"},
			DefaultTimezone: "Europe/Brussels",
		},
		"MA": {
			Code:            "MA",
			Name:            "Morocco",
			PhonePrefixes:   []string{"+212"},
			DefaultTimezone: "Africa/Casablanca",
		},
		"DZ": {
			Code:            "DZ",
			Name:            "Algeria",
			PhonePrefixes:   []string{"+213"},
			DefaultTimezone: "Africa/Algiers",
		},
	}

	// SupportedRegions lists the regions tried, in order, when a phone
	// number is given without its international prefix.
	SupportedRegions = []string{"TN", "FR", "BE", "MA", "DZ"}

	TimeZoneTags = map[string][]string{
		"TN": {"Africa/Tunis"},
		"FR": {"Europe/Paris"},
		"BE": {"Europe/Brussels"},
		"MA": {"Africa/Casablanca"},
		"DZ": {"Africa/Algiers"},
	}
)

func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return DefaultRegion
}

package sanitizer

import (
	"strings"

	"sitterhub/pkg/locale"

	"github.com/nyaruka/phonenumbers"
)

func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range locale.SupportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}

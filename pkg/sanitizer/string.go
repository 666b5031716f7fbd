package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeAddress(address string) string {
	return TrimAndNormalize(address)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeText trims free text such as review comments and bios.
// Line breaks inside the text are kept.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

func NormalizeLabel(label string) string {
	normalized := TrimAndNormalize(label)
	return strings.ToLower(normalized)
}

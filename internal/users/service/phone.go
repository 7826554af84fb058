package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone parses raw assuming region when it has no country code and
// returns the E.164 form. Unparsable or invalid numbers report false.
func NormalizePhone(raw, region string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

package validators

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion matches the salon's default time zone.
const DefaultPhoneRegion = "BR"

// IsPhoneValid parses phone as dialed from region and checks it against the
// numbering plan. Numbers with a leading + may belong to any country.
func IsPhoneValid(phone, region string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	num, err := phonenumbers.Parse(phone, normalizeRegion(region))
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// IsPhoneRegionValid reports whether region is a known ISO 3166 region code.
func IsPhoneRegionValid(region string) bool {
	return phonenumbers.GetCountryCodeForRegion(normalizeRegion(region)) != 0
}

// PhoneChecker validates contact phones for one default region.
type PhoneChecker struct {
	Region string
}

func (v PhoneChecker) Valid(phone string) bool {
	return IsPhoneValid(phone, v.Region)
}

func normalizeRegion(region string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return DefaultPhoneRegion
	}
	return region
}

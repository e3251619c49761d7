// Package phone resolves carrier, region and formatting details for a phone
// number using the libphonenumber port.
package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Info describes a parsed phone number.
type Info struct {
	Input         string
	Valid         bool
	Possible      bool
	RegionCode    string
	CountryCode   int32
	National      uint64
	Location      string
	Carrier       string
	Timezones     []string
	Type          string
	E164          string
	International string
	NationalFmt   string
}

var typeNames = map[phonenumbers.PhoneNumberType]string{
	phonenumbers.MOBILE:               "Mobile number",
	phonenumbers.FIXED_LINE:           "Fixed-line number",
	phonenumbers.FIXED_LINE_OR_MOBILE: "Fixed-line or mobile",
	phonenumbers.TOLL_FREE:            "Toll-free number",
	phonenumbers.PREMIUM_RATE:         "Premium rate number",
	phonenumbers.VOIP:                 "VoIP number",
	phonenumbers.PERSONAL_NUMBER:      "Personal number",
	phonenumbers.PAGER:                "Pager",
	phonenumbers.UAN:                  "UAN (Universal Access Number)",
	phonenumbers.VOICEMAIL:            "Voicemail",
}

// Lookup parses number (with defaultRegion applied to national-format input)
// and returns everything the toolkit reports about it.
func Lookup(number, defaultRegion string) (*Info, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("empty phone number")
	}

	parsed, err := phonenumbers.Parse(number, defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("parse phone number: %w", err)
	}

	info := &Info{
		Input:         number,
		Valid:         phonenumbers.IsValidNumber(parsed),
		Possible:      phonenumbers.IsPossibleNumber(parsed),
		RegionCode:    phonenumbers.GetRegionCodeForNumber(parsed),
		CountryCode:   parsed.GetCountryCode(),
		National:      parsed.GetNationalNumber(),
		E164:          phonenumbers.Format(parsed, phonenumbers.E164),
		International: phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
		NationalFmt:   phonenumbers.Format(parsed, phonenumbers.NATIONAL),
	}

	if loc, err := phonenumbers.GetGeocodingForNumber(parsed, "en"); err == nil {
		info.Location = loc
	}
	if carrier, err := phonenumbers.GetCarrierForNumber(parsed, "en"); err == nil {
		info.Carrier = carrier
	}
	if tzs, err := phonenumbers.GetTimezonesForNumber(parsed); err == nil {
		info.Timezones = tzs
	}

	if name, ok := typeNames[phonenumbers.GetNumberType(parsed)]; ok {
		info.Type = name
	} else {
		info.Type = "Unknown type"
	}
	return info, nil
}

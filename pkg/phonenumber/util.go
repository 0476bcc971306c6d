package phonenumber

import (
	"sort"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// UnknownRegion is the region code used when no default region applies. Only
// numbers written in international form can be parsed against it.
const UnknownRegion = phonenumbers.UNKNOWN_REGION

// Number is the opaque phone number value owned by the numbering library.
type Number = *phonenumbers.PhoneNumber

// Util exposes the numbering-plan operations the adapters rely on.
type Util interface {
	Parse(number, defaultRegion string) (Number, error)
	Format(number Number, format Format) string
	FormatOutOfCountryCallingNumber(number Number, regionCallingFrom string) string
	IsValidNumber(number Number) bool
	NumberType(number Number) Type
	RegionCodeForNumber(number Number) string
	CountryCodeForRegion(region string) int
	SupportedRegions() []string
}

type libUtil struct {
	regionsOnce sync.Once
	regions     []string
}

// New returns a Util backed by github.com/nyaruka/phonenumbers.
func New() Util {
	return &libUtil{}
}

var (
	defaultOnce sync.Once
	defaultUtil Util
)

// Default returns the shared Util instance. It holds no mutable state beyond
// lazily computed lookup tables.
func Default() Util {
	defaultOnce.Do(func() {
		defaultUtil = New()
	})
	return defaultUtil
}

func (u *libUtil) Parse(number, defaultRegion string) (Number, error) {
	if defaultRegion == "" {
		defaultRegion = UnknownRegion
	}
	parsed, err := phonenumbers.Parse(number, defaultRegion)
	if err != nil {
		return nil, &ParseError{Input: number, Region: defaultRegion, Err: err}
	}
	return parsed, nil
}

func (u *libUtil) Format(number Number, format Format) string {
	if number == nil {
		return ""
	}
	return phonenumbers.Format(number, format.library())
}

func (u *libUtil) FormatOutOfCountryCallingNumber(number Number, regionCallingFrom string) string {
	if number == nil {
		return ""
	}
	return phonenumbers.FormatOutOfCountryCallingNumber(number, regionCallingFrom)
}

func (u *libUtil) IsValidNumber(number Number) bool {
	if number == nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

func (u *libUtil) NumberType(number Number) Type {
	if number == nil {
		return TypeUnknown
	}
	return typeFromLibrary(phonenumbers.GetNumberType(number))
}

func (u *libUtil) RegionCodeForNumber(number Number) string {
	if number == nil {
		return ""
	}
	return phonenumbers.GetRegionCodeForNumber(number)
}

func (u *libUtil) CountryCodeForRegion(region string) int {
	return phonenumbers.GetCountryCodeForRegion(region)
}

func (u *libUtil) SupportedRegions() []string {
	u.regionsOnce.Do(func() {
		supported := phonenumbers.GetSupportedRegions()
		regions := make([]string, 0, len(supported))
		for region := range supported {
			regions = append(regions, region)
		}
		sort.Strings(regions)
		u.regions = regions
	})
	return append([]string(nil), u.regions...)
}

// Equal reports whether two numbers share the same E.164 representation. Two
// nil numbers are equal.
func Equal(a, b Number) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return phonenumbers.Format(a, phonenumbers.E164) == phonenumbers.Format(b, phonenumbers.E164)
}

package transformer

import (
	"slices"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// CountryNumber is the view value of the country choice widget.
type CountryNumber struct {
	Country string `json:"country"`
	Number  string `json:"number"`
}

// ArrayTransformer maps a number to a country/national-number pair and
// restricts accepted numbers to a list of regions.
type ArrayTransformer struct {
	util           phonenumber.Util
	countryChoices []string
	defaultCountry string
	locale         string
}

// ArrayOption configures an ArrayTransformer.
type ArrayOption func(*ArrayTransformer)

// WithArrayUtil overrides the numbering utility.
func WithArrayUtil(util phonenumber.Util) ArrayOption {
	return func(t *ArrayTransformer) {
		if util != nil {
			t.util = util
		}
	}
}

// WithLocale sets the locale consulted when no default country is
// configured. Both "fr_FR" and "fr-FR" forms are accepted.
func WithLocale(locale string) ArrayOption {
	return func(t *ArrayTransformer) {
		t.locale = strings.TrimSpace(locale)
	}
}

// NewArrayTransformer restricts numbers to countryChoices (region codes). The
// defaultCountry preselects the country for empty values; pass "" to derive it
// from the locale.
func NewArrayTransformer(countryChoices []string, defaultCountry string, options ...ArrayOption) *ArrayTransformer {
	t := &ArrayTransformer{
		util:           phonenumber.Default(),
		countryChoices: append([]string(nil), countryChoices...),
		defaultCountry: strings.TrimSpace(defaultCountry),
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// CountryChoices returns the accepted region codes.
func (t *ArrayTransformer) CountryChoices() []string {
	return append([]string(nil), t.countryChoices...)
}

// Transform returns a CountryNumber for the number.
func (t *ArrayTransformer) Transform(value any) (any, error) {
	return t.TransformNumber(value)
}

// TransformNumber is the typed variant of Transform.
func (t *ArrayTransformer) TransformNumber(value any) (CountryNumber, error) {
	if isNil(value) {
		return CountryNumber{Country: t.DefaultCountry()}, nil
	}
	number, ok := value.(phonenumber.Number)
	if !ok {
		return CountryNumber{}, failed(msgExpectedNumber, nil)
	}

	region := t.util.RegionCodeForNumber(number)
	if !t.allowed(region) {
		return CountryNumber{}, failed(msgInvalidCountry, nil)
	}

	return CountryNumber{
		Country: region,
		Number:  t.util.Format(number, phonenumber.National),
	}, nil
}

// ReverseTransform parses a submitted country/number pair. It accepts a
// CountryNumber (or pointer) and string-keyed maps holding both keys.
func (t *ArrayTransformer) ReverseTransform(value any) (any, error) {
	number, err := t.ReverseTransformNumber(value)
	if err != nil || number == nil {
		return nil, err
	}
	return number, nil
}

// ReverseTransformNumber is the typed variant of ReverseTransform.
func (t *ArrayTransformer) ReverseTransformNumber(value any) (phonenumber.Number, error) {
	if isEmpty(value) {
		return nil, nil
	}

	pair, ok := countryNumberFrom(value)
	if !ok {
		return nil, failed(msgExpectedArray, nil)
	}
	if strings.TrimSpace(pair.Number) == "" {
		return nil, nil
	}

	number, err := t.util.Parse(pair.Number, pair.Country)
	if err != nil {
		return nil, parseFailed(err)
	}
	if !t.allowed(t.util.RegionCodeForNumber(number)) {
		return nil, failed(msgInvalidCountry, nil)
	}
	return number, nil
}

// DefaultCountry returns the configured default country, falling back to the
// region part of the locale. Countries outside the choices resolve to "".
func (t *ArrayTransformer) DefaultCountry() string {
	country := t.defaultCountry
	if country == "" {
		country = strings.ToUpper(t.locale)
	}
	if pos := strings.IndexAny(country, "_-"); pos >= 0 {
		country = country[pos+1:]
	}
	if t.allowed(country) {
		return country
	}
	return ""
}

func (t *ArrayTransformer) allowed(region string) bool {
	return region != "" && slices.Contains(t.countryChoices, region)
}

func countryNumberFrom(value any) (CountryNumber, bool) {
	switch v := value.(type) {
	case CountryNumber:
		return v, true
	case *CountryNumber:
		if v == nil {
			return CountryNumber{}, false
		}
		return *v, true
	case map[string]string:
		country, hasCountry := v["country"]
		number, hasNumber := v["number"]
		if !hasCountry || !hasNumber {
			return CountryNumber{}, false
		}
		return CountryNumber{Country: country, Number: number}, true
	case map[string]any:
		rawCountry, hasCountry := v["country"]
		rawNumber, hasNumber := v["number"]
		if !hasCountry || !hasNumber {
			return CountryNumber{}, false
		}
		country, _ := stringValue(rawCountry)
		number, _ := stringValue(rawNumber)
		return CountryNumber{Country: country, Number: number}, true
	default:
		return CountryNumber{}, false
	}
}

package validation

import "github.com/goliatone/go-phoneform/pkg/phonenumber"

// Number type names accepted by Phone.Type.
const (
	TypeAny            = "any"
	TypeFixedLine      = "fixed_line"
	TypeMobile         = "mobile"
	TypePager          = "pager"
	TypePersonalNumber = "personal_number"
	TypePremiumRate    = "premium_rate"
	TypeSharedCost     = "shared_cost"
	TypeTollFree       = "toll_free"
	TypeUAN            = "uan"
	TypeVoIP           = "voip"
	TypeVoicemail      = "voicemail"
)

// TranslationDomain is the catalog domain violation messages belong to.
const TranslationDomain = "validators"

var defaultMessages = map[string]string{
	TypeFixedLine:      "This value is not a valid fixed-line number.",
	TypeMobile:         "This value is not a valid mobile number.",
	TypePager:          "This value is not a valid pager number.",
	TypePersonalNumber: "This value is not a valid personal number.",
	TypePremiumRate:    "This value is not a valid premium-rate number.",
	TypeSharedCost:     "This value is not a valid shared-cost number.",
	TypeTollFree:       "This value is not a valid toll-free number.",
	TypeUAN:            "This value is not a valid UAN.",
	TypeVoIP:           "This value is not a valid VoIP number.",
	TypeVoicemail:      "This value is not a valid voicemail access number.",
}

// DefaultMessage is reported for TypeAny and unknown types.
const DefaultMessage = "This value is not a valid phone number."

// acceptedTypes lists the numbering-plan types satisfying each constraint
// type. TypeAny has no entry: every valid number passes.
var acceptedTypes = map[string][]phonenumber.Type{
	TypeFixedLine:      {phonenumber.TypeFixedLine, phonenumber.TypeFixedLineOrMobile},
	TypeMobile:         {phonenumber.TypeMobile, phonenumber.TypeFixedLineOrMobile},
	TypePager:          {phonenumber.TypePager},
	TypePersonalNumber: {phonenumber.TypePersonalNumber},
	TypePremiumRate:    {phonenumber.TypePremiumRate},
	TypeSharedCost:     {phonenumber.TypeSharedCost},
	TypeTollFree:       {phonenumber.TypeTollFree},
	TypeUAN:            {phonenumber.TypeUAN},
	TypeVoIP:           {phonenumber.TypeVoIP},
	TypeVoicemail:      {phonenumber.TypeVoicemail},
}

// Phone constrains a value to a valid phone number, optionally of a given
// type. The zero value accepts any valid number written in international form.
type Phone struct {
	// Message overrides the type-specific default message when non-empty.
	Message string
	// Type is one of the Type* constants; unknown values behave as TypeAny.
	Type string
	// DefaultRegion is used to parse numbers without a country calling code.
	// Empty means phonenumber.UnknownRegion.
	DefaultRegion string
}

// GetType returns the effective constraint type.
func (p Phone) GetType() string {
	if _, ok := acceptedTypes[p.Type]; ok {
		return p.Type
	}
	return TypeAny
}

// GetMessage returns the custom message or the default for the type.
func (p Phone) GetMessage() string {
	if p.Message != "" {
		return p.Message
	}
	if message, ok := defaultMessages[p.Type]; ok {
		return message
	}
	return DefaultMessage
}

// Region returns the region used for parsing.
func (p Phone) Region() string {
	if p.DefaultRegion == "" {
		return phonenumber.UnknownRegion
	}
	return p.DefaultRegion
}

func (p Phone) accepts(kind phonenumber.Type) bool {
	allowed, ok := acceptedTypes[p.GetType()]
	if !ok {
		return true
	}
	for _, candidate := range allowed {
		if candidate == kind {
			return true
		}
	}
	return false
}

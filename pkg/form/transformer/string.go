package transformer

import (
	"strings"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// StringTransformer maps a number to a single formatted string.
type StringTransformer struct {
	util          phonenumber.Util
	defaultRegion string
	format        phonenumber.Format
}

// StringOption configures a StringTransformer.
type StringOption func(*StringTransformer)

// WithStringUtil overrides the numbering utility (defaults to
// phonenumber.Default()).
func WithStringUtil(util phonenumber.Util) StringOption {
	return func(t *StringTransformer) {
		if util != nil {
			t.util = util
		}
	}
}

// NewStringTransformer builds a transformer that parses input against
// defaultRegion and displays numbers using format. An empty region falls back
// to phonenumber.UnknownRegion.
func NewStringTransformer(defaultRegion string, format phonenumber.Format, options ...StringOption) *StringTransformer {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = phonenumber.UnknownRegion
	}
	t := &StringTransformer{
		util:          phonenumber.Default(),
		defaultRegion: region,
		format:        format,
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Transform renders a number as a string. National numbers are formatted as
// dialled from the default region so foreign numbers keep their prefix.
func (t *StringTransformer) Transform(value any) (any, error) {
	return t.TransformNumber(value)
}

// TransformNumber is the typed variant of Transform.
func (t *StringTransformer) TransformNumber(value any) (string, error) {
	if isNil(value) {
		return "", nil
	}
	number, ok := value.(phonenumber.Number)
	if !ok {
		return "", failed(msgExpectedNumber, nil)
	}

	if t.format == phonenumber.National {
		return t.util.FormatOutOfCountryCallingNumber(number, t.defaultRegion), nil
	}
	return t.util.Format(number, t.format), nil
}

// ReverseTransform parses submitted text. Empty input yields a nil number.
func (t *StringTransformer) ReverseTransform(value any) (any, error) {
	number, err := t.ReverseTransformNumber(value)
	if err != nil || number == nil {
		return nil, err
	}
	return number, nil
}

// ReverseTransformNumber is the typed variant of ReverseTransform.
func (t *StringTransformer) ReverseTransformNumber(value any) (phonenumber.Number, error) {
	if isNil(value) {
		return nil, nil
	}
	raw, ok := stringValue(value)
	if !ok {
		return nil, failed("Expected a string.", nil)
	}
	if raw == "" {
		return nil, nil
	}

	number, err := t.util.Parse(raw, t.defaultRegion)
	if err != nil {
		return nil, parseFailed(err)
	}
	return number, nil
}

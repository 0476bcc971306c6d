package phonenumber

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Format selects a display representation for a number.
type Format int

const (
	E164 Format = iota
	International
	National
	RFC3966
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("phonenumber: unknown format")

var formatNames = map[Format]string{
	E164:          "E164",
	International: "INTERNATIONAL",
	National:      "NATIONAL",
	RFC3966:       "RFC3966",
}

// ParseFormat resolves a format constant name ("E164", "INTERNATIONAL",
// "NATIONAL", "RFC3966"), ignoring case and surrounding whitespace.
func ParseFormat(name string) (Format, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for format, constant := range formatNames {
		if constant == normalized {
			return format, nil
		}
	}
	return E164, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// String returns the constant name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Valid reports whether f is one of the declared formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// MarshalText encodes the format as its constant name.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes a constant name.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Format) library() phonenumbers.PhoneNumberFormat {
	switch f {
	case International:
		return phonenumbers.INTERNATIONAL
	case National:
		return phonenumbers.NATIONAL
	case RFC3966:
		return phonenumbers.RFC3966
	default:
		return phonenumbers.E164
	}
}

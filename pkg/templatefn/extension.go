// Package templatefn exposes the phone_format helper to html/template and to
// the pongo2 engine in pkg/render/template/gotemplate.
package templatefn

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render/template"
)

// FuncName is the helper name registered in templates.
const FuncName = "phone_format"

// ErrInvalidArgument is returned for unknown formats or values that are not
// phone numbers.
var ErrInvalidArgument = errors.New("templatefn: the format must be either a constant value or name in phonenumber.Format")

// ErrNotANumber is returned when the value to format is not a phone number.
var ErrNotANumber = errors.New("templatefn: value is not a phone number")

type numberProvider interface {
	PhoneNumber() phonenumber.Number
}

// Extension formats numbers for templates.
type Extension struct {
	util phonenumber.Util
}

// New returns an Extension; a nil util selects phonenumber.Default().
func New(util phonenumber.Util) *Extension {
	if util == nil {
		util = phonenumber.Default()
	}
	return &Extension{util: util}
}

// Format renders num in format. num may be a phonenumber.Number, a value
// exposing PhoneNumber() (serializer.Number), or an international string.
// format may be a phonenumber.Format, an integer constant, or a constant name
// such as "NATIONAL"; nil selects E164. Nil numbers render as "".
func (e *Extension) Format(num any, format any) (string, error) {
	resolved, err := resolveFormat(format)
	if err != nil {
		return "", err
	}

	var number phonenumber.Number
	switch v := num.(type) {
	case nil:
		return "", nil
	case phonenumber.Number:
		number = v
	case numberProvider:
		number = v.PhoneNumber()
	case string:
		if strings.TrimSpace(v) == "" {
			return "", nil
		}
		parsed, err := e.util.Parse(v, phonenumber.UnknownRegion)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNotANumber, err)
		}
		number = parsed
	default:
		return "", fmt.Errorf("%w: %T", ErrNotANumber, num)
	}
	if number == nil {
		return "", nil
	}
	return e.util.Format(number, resolved), nil
}

// Funcs returns the helper as a FuncMap-compatible map. The format argument is
// optional in templates: {{ phone_format .Phone }} or
// {{ phone_format .Phone "NATIONAL" }}.
func (e *Extension) Funcs() map[string]any {
	return map[string]any{FuncName: e.call}
}

func (e *Extension) call(num any, format ...any) (string, error) {
	switch len(format) {
	case 0:
		return e.Format(num, nil)
	case 1:
		return e.Format(num, format[0])
	default:
		return "", fmt.Errorf("%s: expected at most one format argument, got %d", FuncName, len(format))
	}
}

// Register installs phone_format on engine as a global function and as a
// filter ({{ phone|phone_format:"NATIONAL" }}).
//
// pongo2 filters are process wide: the filter keeps the util of the first
// Extension registered in the process, while the global function always uses
// e's util. Templates that depend on a custom util should call
// phone_format(...) rather than the filter.
func (e *Extension) Register(engine template.TemplateRenderer) error {
	if engine == nil {
		return errors.New("templatefn: engine is nil")
	}
	if err := engine.GlobalContext(e.Funcs()); err != nil {
		return fmt.Errorf("templatefn: register global: %w", err)
	}
	err := engine.RegisterFilter(FuncName, func(input any, param any) (any, error) {
		return e.Format(input, param)
	})
	if err != nil && !errors.Is(err, template.ErrFilterExists) {
		return fmt.Errorf("templatefn: register filter: %w", err)
	}
	return nil
}

func resolveFormat(format any) (phonenumber.Format, error) {
	switch v := format.(type) {
	case nil:
		return phonenumber.E164, nil
	case phonenumber.Format:
		if v.Valid() {
			return v, nil
		}
	case string:
		if strings.TrimSpace(v) == "" {
			return phonenumber.E164, nil
		}
		parsed, err := phonenumber.ParseFormat(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		return parsed, nil
	default:
		rv := reflect.ValueOf(format)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if f := phonenumber.Format(rv.Int()); f.Valid() {
				return f, nil
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if f := phonenumber.Format(rv.Uint()); f.Valid() {
				return f, nil
			}
		case reflect.Float32, reflect.Float64:
			if fv := rv.Float(); fv == math.Trunc(fv) {
				if f := phonenumber.Format(int(fv)); f.Valid() {
					return f, nil
				}
			}
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, format)
}

package validation

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
)

// NumberProvider is implemented by wrapper types carrying a parsed number,
// such as serializer.Number.
type NumberProvider interface {
	PhoneNumber() phonenumber.Number
}

// Option configures a Validator.
type Option func(*Validator)

// WithUtil overrides the numbering-plan utility.
func WithUtil(util phonenumber.Util) Option {
	return func(v *Validator) {
		if util != nil {
			v.util = util
		}
	}
}

// WithTranslator localizes violation messages. Message templates are used as
// translation keys within TranslationDomain.
func WithTranslator(t render.Translator) Option {
	return func(v *Validator) {
		v.translator = t
	}
}

// WithLocale selects the locale passed to the translator.
func WithLocale(locale string) Option {
	return func(v *Validator) {
		v.locale = locale
	}
}

// Validator checks values against Phone constraints. It is safe for
// concurrent use.
type Validator struct {
	util       phonenumber.Util
	translator render.Translator
	locale     string
}

// New constructs a Validator using phonenumber.Default() unless overridden.
func New(opts ...Option) *Validator {
	v := &Validator{util: phonenumber.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate checks value against constraint. nil and "" always pass. An error
// is returned only when value has an unsupported type.
func (v *Validator) Validate(value any, constraint Phone) (Violations, error) {
	return v.validate("", value, constraint)
}

func (v *Validator) validate(path string, value any, constraint Phone) (Violations, error) {
	value = indirect(value)
	if value == nil {
		return nil, nil
	}

	var (
		number   phonenumber.Number
		reported string
	)
	switch typed := value.(type) {
	case phonenumber.Number:
		if typed == nil {
			return nil, nil
		}
		number = typed
		reported = v.util.Format(number, phonenumber.International)
	case NumberProvider:
		number = typed.PhoneNumber()
		if number == nil {
			return nil, nil
		}
		reported = v.util.Format(number, phonenumber.International)
	default:
		text, ok := scalarString(value)
		if !ok {
			return nil, &UnexpectedTypeError{Value: value, Expected: "string"}
		}
		if text == "" {
			return nil, nil
		}
		reported = text
		parsed, err := v.util.Parse(text, constraint.Region())
		if err != nil {
			return Violations{v.violation(path, reported, constraint)}, nil
		}
		number = parsed
	}

	if !v.util.IsValidNumber(number) || !constraint.accepts(v.util.NumberType(number)) {
		return Violations{v.violation(path, reported, constraint)}, nil
	}
	return nil, nil
}

func (v *Validator) violation(path, value string, constraint Phone) Violation {
	template := constraint.GetMessage()
	params := map[string]string{
		"{{ type }}":  constraint.GetType(),
		"{{ value }}": value,
	}
	return Violation{
		Path:              path,
		Message:           render.TranslateMessage(v.translator, v.locale, template, params),
		MessageTemplate:   template,
		Parameters:        params,
		TranslationDomain: TranslationDomain,
		InvalidValue:      value,
	}
}

// indirect dereferences pointers, mapping nil pointers to nil.
func indirect(value any) any {
	if value == nil {
		return nil
	}
	if _, ok := value.(phonenumber.Number); ok {
		return value
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		if _, ok := rv.Interface().(NumberProvider); ok {
			return rv.Interface()
		}
		if _, ok := rv.Interface().(fmt.Stringer); ok {
			return rv.Interface()
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

func scalarString(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case []byte:
		return string(typed), true
	case fmt.Stringer:
		return typed.String(), true
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(value), true
	}
	return "", false
}

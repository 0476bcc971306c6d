package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/form/transformer"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// Child names of the country_choice widget.
const (
	ChildCountry = "country"
	ChildNumber  = "number"
)

// Child types.
const (
	ChildTypeChoice = "choice"
	ChildTypeText   = "text"
)

// ErrInvalidValue is matched by errors returned from Field.Submit.
var ErrInvalidValue = errors.New("form: invalid phone value")

// InvalidValueError carries the field's invalid message and the
// transformation failure behind it.
type InvalidValueError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("form: %s: %s", e.Field, e.Message)
}

func (e *InvalidValueError) Unwrap() error { return e.Cause }

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// ChildField describes the country or number child of a country_choice field
// after parent options have been merged in.
type ChildField struct {
	Name                    string
	Type                    string
	Required                bool
	Disabled                bool
	ErrorBubbling           bool
	TranslationDomain       string
	ChoiceTranslationDomain bool
	Label                   string
	Placeholder             string
	Attr                    map[string]string
	Choices                 []CountryChoice
}

// Field is a built phone field.
type Field struct {
	Name     string
	Options  Options
	Children []ChildField

	transformer transformer.ViewTransformer
	choices     []CountryChoice
}

// Build resolves options on top of DefaultOptions and builds the field.
func Build(name string, options ...Option) (*Field, error) {
	opts := DefaultOptions()
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	return New(name, opts)
}

// New builds a field from fully specified options.
func New(name string, opts Options) (*Field, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("form: field name is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Util == nil {
		opts.Util = phonenumber.Default()
	}
	if opts.DefaultRegion == "" {
		opts.DefaultRegion = phonenumber.UnknownRegion
	}
	if opts.InvalidMessage == "" {
		opts.InvalidMessage = DefaultInvalidMessage
	}
	if opts.FormatCountryLabels == nil {
		opts.FormatCountryLabels = DefaultLabelFormatter
	}

	field := &Field{Name: name, Options: opts}
	if opts.Widget == WidgetCountryChoice {
		field.buildCountryChoice()
	} else {
		field.transformer = transformer.NewStringTransformer(
			opts.DefaultRegion,
			opts.Format,
			transformer.WithStringUtil(opts.Util),
		)
	}
	return field, nil
}

func (f *Field) buildCountryChoice() {
	opts := f.Options
	f.choices = CountryChoices(opts.Util, opts.CountryOptions.Choices, opts.Locale, opts.FormatCountryLabels)

	country := f.childDefaults(ChildCountry, ChildTypeChoice, opts.CountryOptions)
	country.Required = true
	if opts.CountryOptions.Required != nil {
		country.Required = *opts.CountryOptions.Required
	}
	country.Choices = f.choices

	number := f.childDefaults(ChildNumber, ChildTypeText, opts.NumberOptions)

	f.Children = []ChildField{country, number}
	f.transformer = transformer.NewArrayTransformer(
		regionsOf(f.choices),
		opts.DefaultCountry,
		transformer.WithArrayUtil(opts.Util),
		transformer.WithLocale(opts.Locale),
	)
}

// childDefaults applies the inherited defaults (error bubbling, required,
// disabled, translation domain), then the caller's overrides.
func (f *Field) childDefaults(name, typ string, child ChildOptions) ChildField {
	out := ChildField{
		Name:              name,
		Type:              typ,
		ErrorBubbling:     true,
		Required:          f.Options.Required,
		Disabled:          f.Options.Disabled,
		TranslationDomain: f.Options.TranslationDomain,
		Label:             child.Label,
		Placeholder:       child.Placeholder,
		Attr:              child.Attr,
	}
	if child.Required != nil {
		out.Required = *child.Required
	}
	if child.Disabled != nil {
		out.Disabled = *child.Disabled
	}
	if child.ErrorBubbling != nil {
		out.ErrorBubbling = *child.ErrorBubbling
	}
	if child.TranslationDomain != nil {
		out.TranslationDomain = *child.TranslationDomain
	}
	return out
}

// Compound reports whether the field has children.
func (f *Field) Compound() bool {
	return f.Options.Compound()
}

// Transformer returns the view transformer.
func (f *Field) Transformer() transformer.ViewTransformer {
	return f.transformer
}

// CountryChoices returns the country select entries (nil for single text).
func (f *Field) CountryChoices() []CountryChoice {
	return append([]CountryChoice(nil), f.choices...)
}

// Child returns the named child.
func (f *Field) Child(name string) (ChildField, bool) {
	for _, child := range f.Children {
		if child.Name == name {
			return child, true
		}
	}
	return ChildField{}, false
}

// View converts model data to the view value: a string for single text, a
// transformer.CountryNumber for country choice.
func (f *Field) View(value phonenumber.Number) (any, error) {
	var data any
	if value != nil {
		data = value
	}
	return f.transformer.Transform(data)
}

// Submit converts submitted view data to a number. Empty input yields nil.
// Failures are reported as *InvalidValueError carrying the invalid message.
func (f *Field) Submit(raw any) (phonenumber.Number, error) {
	out, err := f.transformer.ReverseTransform(raw)
	if err != nil {
		return nil, &InvalidValueError{Field: f.Name, Message: f.Options.InvalidMessage, Cause: err}
	}
	if out == nil {
		return nil, nil
	}
	num, ok := out.(phonenumber.Number)
	if !ok {
		return nil, &InvalidValueError{Field: f.Name, Message: f.Options.InvalidMessage, Cause: fmt.Errorf("unexpected %T", out)}
	}
	return num, nil
}

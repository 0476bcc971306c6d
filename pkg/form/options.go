// Package form builds phone fields: a single text input or a compound
// country select plus number input, each backed by a view transformer.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// Widgets supported by phone fields.
const (
	WidgetSingleText    = "single_text"
	WidgetCountryChoice = "country_choice"
)

// BlockPrefix is the view "type" of phone fields.
const BlockPrefix = "phone"

// DefaultInvalidMessage is reported when submitted data cannot be transformed.
const DefaultInvalidMessage = "This value is not a valid phone number."

// ErrUnknownWidget is returned by Options.Validate.
var ErrUnknownWidget = errors.New("form: unknown phone widget")

// LabelFormatter renders a country choice label from the localized country
// name and its calling code.
type LabelFormatter func(name string, callingCode int) string

// DefaultLabelFormatter renders "France (+33)".
func DefaultLabelFormatter(name string, callingCode int) string {
	return fmt.Sprintf("%s (+%d)", name, callingCode)
}

// ChildOptions customise the country or number child of a country_choice
// field. Pointer fields override the values inherited from the parent.
type ChildOptions struct {
	// Choices restricts the country select to these region codes. Regions
	// without a calling code are ignored; an empty result offers every
	// supported region. Only meaningful for the country child.
	Choices           []string
	Required          *bool
	Disabled          *bool
	ErrorBubbling     *bool
	TranslationDomain *string
	Label             string
	Placeholder       string
	Attr              map[string]string
}

// Options configure a phone field. Use DefaultOptions and Option functions
// rather than the zero value: the zero Format is E164, not International.
type Options struct {
	Widget              string
	DefaultRegion       string
	Format              phonenumber.Format
	InvalidMessage      string
	ErrorBubbling       bool
	DefaultCountry      string
	CountryOptions      ChildOptions
	NumberOptions       ChildOptions
	FormatCountryLabels LabelFormatter
	Required            bool
	Disabled            bool
	TranslationDomain   string
	Locale              string
	Label               string
	Util                phonenumber.Util
}

// DefaultOptions returns the defaults: single text widget, unknown default
// region, international format, required.
func DefaultOptions() Options {
	return Options{
		Widget:              WidgetSingleText,
		DefaultRegion:       phonenumber.UnknownRegion,
		Format:              phonenumber.International,
		InvalidMessage:      DefaultInvalidMessage,
		FormatCountryLabels: DefaultLabelFormatter,
		Required:            true,
	}
}

// Compound reports whether the widget renders child fields.
func (o Options) Compound() bool {
	return o.Widget != WidgetSingleText
}

// Validate rejects unknown widgets and formats.
func (o Options) Validate() error {
	switch o.Widget {
	case WidgetSingleText, WidgetCountryChoice:
	default:
		return fmt.Errorf("%w: %q (expected %q or %q)", ErrUnknownWidget, o.Widget, WidgetSingleText, WidgetCountryChoice)
	}
	if !o.Format.Valid() {
		return fmt.Errorf("form: %w: %d", phonenumber.ErrUnknownFormat, int(o.Format))
	}
	return nil
}

// Option mutates Options.
type Option func(*Options)

// WithWidget selects WidgetSingleText or WidgetCountryChoice.
func WithWidget(widget string) Option {
	return func(o *Options) { o.Widget = strings.TrimSpace(widget) }
}

// WithDefaultRegion sets the region used to parse single text input.
func WithDefaultRegion(region string) Option {
	return func(o *Options) { o.DefaultRegion = strings.ToUpper(strings.TrimSpace(region)) }
}

// WithFormat sets the single text display format.
func WithFormat(format phonenumber.Format) Option {
	return func(o *Options) { o.Format = format }
}

// WithInvalidMessage overrides the message reported for untransformable input.
func WithInvalidMessage(message string) Option {
	return func(o *Options) { o.InvalidMessage = message }
}

// WithErrorBubbling reports the field's errors on its parent.
func WithErrorBubbling(enabled bool) Option {
	return func(o *Options) { o.ErrorBubbling = enabled }
}

// WithDefaultCountry preselects a country in the country_choice widget.
func WithDefaultCountry(region string) Option {
	return func(o *Options) { o.DefaultCountry = strings.ToUpper(strings.TrimSpace(region)) }
}

// WithCountryOptions customises the country child.
func WithCountryOptions(child ChildOptions) Option {
	return func(o *Options) { o.CountryOptions = child }
}

// WithNumberOptions customises the number child.
func WithNumberOptions(child ChildOptions) Option {
	return func(o *Options) { o.NumberOptions = child }
}

// WithCountryLabelFormatter overrides DefaultLabelFormatter.
func WithCountryLabelFormatter(fn LabelFormatter) Option {
	return func(o *Options) {
		if fn != nil {
			o.FormatCountryLabels = fn
		}
	}
}

// WithRequired marks the field (and its children) as required.
func WithRequired(required bool) Option {
	return func(o *Options) { o.Required = required }
}

// WithDisabled disables the field (and its children).
func WithDisabled(disabled bool) Option {
	return func(o *Options) { o.Disabled = disabled }
}

// WithTranslationDomain sets the domain used for labels.
func WithTranslationDomain(domain string) Option {
	return func(o *Options) { o.TranslationDomain = domain }
}

// WithLocale sets the locale used for country names and the default country.
func WithLocale(locale string) Option {
	return func(o *Options) { o.Locale = strings.TrimSpace(locale) }
}

// WithLabel sets the field label.
func WithLabel(label string) Option {
	return func(o *Options) { o.Label = label }
}

// WithUtil overrides the numbering-plan utility.
func WithUtil(util phonenumber.Util) Option {
	return func(o *Options) { o.Util = util }
}

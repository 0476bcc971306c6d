package form

import (
	"fmt"

	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// FromModel builds a phone field from a model.Field, typically one produced
// by metadata guessing and widget resolution. The widget, default region,
// format, label and required/disabled flags are read from the model; opts are
// applied last.
func FromModel(field model.Field, opts ...Option) (*Field, error) {
	if !field.IsPhone() {
		return nil, fmt.Errorf("form: field %q is not a phone field", field.Name)
	}

	options := DefaultOptions()
	options.Required = field.Required
	options.Disabled = field.Disabled
	options.Label = field.Label

	switch widget := field.UIHints["widget"]; widget {
	case WidgetSingleText, WidgetCountryChoice:
		options.Widget = widget
	}
	for _, rule := range field.Validations {
		if rule.Kind == model.ValidationRulePhone && rule.Params[metadataDefaultRegion] != "" {
			options.DefaultRegion = rule.Params[metadataDefaultRegion]
		}
	}
	if region := field.Metadata[metadataDefaultRegion]; region != "" {
		options.DefaultRegion = region
	}
	if name := field.Metadata["format"]; name != "" {
		format, err := phonenumber.ParseFormat(name)
		if err != nil {
			return nil, fmt.Errorf("form: field %q: %w", field.Name, err)
		}
		options.Format = format
	}
	if country, ok := field.Child(ChildCountry); ok {
		for _, option := range country.Options {
			options.CountryOptions.Choices = append(options.CountryOptions.Choices, option.Value)
		}
		if def, ok := country.Default.(string); ok {
			options.DefaultCountry = def
		}
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return New(field.Name, options)
}

package form

import (
	"strconv"

	"github.com/goliatone/go-phoneform/pkg/form/transformer"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
)

// Translation keys attached to country_choice children.
const (
	CountryLabelKey       = "phone.country.label"
	NumberLabelKey        = "phone.number.label"
	NumberPlaceholderKey  = "phone.number.placeholder"
	defaultCountryLabel   = "Country"
	defaultNumberLabel    = "Phone number"
	defaultPlaceholder    = "Enter a phone number"
	metadataDefaultRegion = "defaultRegion"
)

// View is the template-facing representation of a field. Vars follow the
// form-theme conventions (name, full_name, id, value, widget, type, ...).
type View struct {
	Vars     map[string]any `json:"vars"`
	Children []*View        `json:"children,omitempty"`
}

// Child returns the named child view.
func (v *View) Child(name string) *View {
	for _, child := range v.Children {
		if child.Vars["name"] == name {
			return child
		}
	}
	return nil
}

// BuildView renders value into a View. errs are attached to the field.
func (f *Field) BuildView(value phonenumber.Number, errs ...string) (*View, error) {
	viewValue, err := f.View(value)
	if err != nil {
		return nil, err
	}

	view := &View{Vars: map[string]any{
		"name":               f.Name,
		"full_name":          f.Name,
		"id":                 f.Name,
		"label":              f.label(),
		"widget":             f.Options.Widget,
		"type":               BlockPrefix,
		"compound":           f.Compound(),
		"required":           f.Options.Required,
		"disabled":           f.Options.Disabled,
		"error_bubbling":     f.Options.ErrorBubbling,
		"translation_domain": f.Options.TranslationDomain,
		"invalid_message":    f.Options.InvalidMessage,
		"errors":             append([]string(nil), errs...),
		"value":              viewValue,
	}}
	if !f.Compound() {
		view.Vars["attr"] = map[string]string{"inputmode": "tel", "autocomplete": "tel"}
		return view, nil
	}

	pair, _ := viewValue.(transformer.CountryNumber)
	for _, child := range f.Children {
		childValue := pair.Number
		if child.Name == ChildCountry {
			childValue = pair.Country
		}
		view.Children = append(view.Children, f.childView(child, childValue))
	}
	return view, nil
}

func (f *Field) childView(child ChildField, value string) *View {
	vars := map[string]any{
		"name":               child.Name,
		"full_name":          f.Name + "[" + child.Name + "]",
		"id":                 f.Name + "_" + child.Name,
		"type":               child.Type,
		"value":              value,
		"required":           child.Required,
		"disabled":           child.Disabled,
		"error_bubbling":     child.ErrorBubbling,
		"translation_domain": child.TranslationDomain,
		"label":              child.Label,
		"placeholder":        child.Placeholder,
		"attr":               child.Attr,
		"errors":             []string{},
	}
	if child.Type == ChildTypeChoice {
		vars["choice_translation_domain"] = child.ChoiceTranslationDomain
		choices := make([]map[string]any, 0, len(child.Choices))
		for _, choice := range child.Choices {
			choices = append(choices, map[string]any{
				"value":    choice.Region,
				"label":    choice.Label,
				"selected": choice.Region == value,
			})
		}
		vars["choices"] = choices
	} else {
		attr := map[string]string{"inputmode": "tel", "autocomplete": "tel-national"}
		for k, v := range child.Attr {
			attr[k] = v
		}
		vars["attr"] = attr
	}
	return &View{Vars: vars}
}

func (f *Field) label() string {
	if f.Options.Label != "" {
		return f.Options.Label
	}
	return model.DefaultLabeler(f.Name)
}

// Model exports the field as a model.Field so generic renderers, widget
// resolution and MapErrorPayload can work with it.
func (f *Field) Model() model.Field {
	opts := f.Options
	out := model.Field{
		Name:     f.Name,
		Type:     model.FieldTypeString,
		Format:   model.FormatPhone,
		Required: opts.Required,
		Disabled: opts.Disabled,
		Label:    f.label(),
		Metadata: map[string]string{
			metadataDefaultRegion: opts.DefaultRegion,
			"format":              opts.Format.String(),
			"invalidMessage":      opts.InvalidMessage,
		},
		UIHints: map[string]string{
			"widget": opts.Widget,
			"input":  model.FormatPhone,
		},
	}
	if opts.ErrorBubbling {
		out.Metadata[render.MetadataErrorBubbling] = "true"
	}
	if opts.TranslationDomain != "" {
		out.Metadata["translationDomain"] = opts.TranslationDomain
	}
	if opts.Required {
		out.Validations = append(out.Validations, model.ValidationRule{Kind: model.ValidationRuleRequired})
	}
	out.Validations = append(out.Validations, model.ValidationRule{
		Kind:   model.ValidationRulePhone,
		Params: map[string]string{"type": "any", metadataDefaultRegion: opts.DefaultRegion},
	})

	if !f.Compound() {
		out.UIHints["inputType"] = "tel"
		return out
	}

	out.Type = model.FieldTypeObject
	for _, child := range f.Children {
		out.Nested = append(out.Nested, f.childModel(child))
	}
	return out
}

func (f *Field) childModel(child ChildField) model.Field {
	out := model.Field{
		Name:        child.Name,
		Type:        model.FieldTypeString,
		Required:    child.Required,
		Disabled:    child.Disabled,
		Label:       child.Label,
		Placeholder: child.Placeholder,
		Metadata: map[string]string{
			render.MetadataErrorBubbling: strconv.FormatBool(child.ErrorBubbling),
		},
		UIHints: map[string]string{},
	}
	if child.TranslationDomain != "" {
		out.Metadata["translationDomain"] = child.TranslationDomain
	}
	for k, v := range child.Attr {
		out.UIHints["attr."+k] = v
	}

	switch child.Name {
	case ChildCountry:
		if out.Label == "" {
			out.Label = defaultCountryLabel
			out.UIHints["labelKey"] = CountryLabelKey
		}
		out.UIHints["widget"] = "select"
		out.Metadata["choiceTranslationDomain"] = strconv.FormatBool(child.ChoiceTranslationDomain)
		if at, ok := f.transformer.(*transformer.ArrayTransformer); ok {
			if country := at.DefaultCountry(); country != "" {
				out.Default = country
			}
		}
		for _, choice := range child.Choices {
			out.Options = append(out.Options, model.FieldOption{Value: choice.Region, Label: choice.Label})
		}
	case ChildNumber:
		if out.Label == "" {
			out.Label = defaultNumberLabel
			out.UIHints["labelKey"] = NumberLabelKey
		}
		if out.Placeholder == "" {
			out.Placeholder = defaultPlaceholder
			out.UIHints["placeholderKey"] = NumberPlaceholderKey
		}
		out.UIHints["widget"] = "text"
		out.UIHints["inputType"] = "tel"
	}
	return out
}

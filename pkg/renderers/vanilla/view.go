package vanilla

import (
	"fmt"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/form/transformer"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
)

type numberProvider interface {
	PhoneNumber() phonenumber.Number
}

func numberOf(value any) phonenumber.Number {
	switch v := value.(type) {
	case phonenumber.Number:
		return v
	case numberProvider:
		return v.PhoneNumber()
	}
	return nil
}

// localizeChildren fills empty child labels and placeholders from the
// localized field model.
func localizeChildren(view *form.View, phone *form.Field, opts render.RenderOptions) {
	fieldModel := phone.Model()
	render.LocalizeField(&fieldModel, opts)
	for _, nested := range fieldModel.Nested {
		child := view.Child(nested.Name)
		if child == nil {
			continue
		}
		if isBlank(child.Vars["label"]) {
			child.Vars["label"] = nested.Label
		}
		if isBlank(child.Vars["placeholder"]) && nested.Placeholder != "" {
			child.Vars["placeholder"] = nested.Placeholder
		}
	}
}

func restoreSubmitted(view *form.View, value any) {
	switch v := value.(type) {
	case nil:
	case string:
		if len(view.Children) == 0 {
			view.Vars["value"] = v
			return
		}
		setChildValue(view, form.ChildNumber, v)
	case transformer.CountryNumber:
		restorePair(view, v.Country, v.Number)
	case map[string]string:
		restorePair(view, v["country"], v["number"])
	case map[string]any:
		restorePair(view, stringOf(v["country"]), stringOf(v["number"]))
	}
}

func restorePair(view *form.View, country, number string) {
	if len(view.Children) == 0 {
		view.Vars["value"] = number
		return
	}
	if country != "" {
		setChildValue(view, form.ChildCountry, country)
	}
	setChildValue(view, form.ChildNumber, number)
	view.Vars["value"] = transformer.CountryNumber{Country: country, Number: number}
}

func setChildValue(view *form.View, name, value string) {
	child := view.Child(name)
	if child == nil {
		return
	}
	child.Vars["value"] = value
	choices, ok := child.Vars["choices"].([]map[string]any)
	if !ok {
		return
	}
	for _, choice := range choices {
		choice["selected"] = choice["value"] == value
	}
}

func stringOf(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func isBlank(value any) bool {
	s, _ := value.(string)
	return s == ""
}

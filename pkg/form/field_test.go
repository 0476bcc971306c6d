package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/form/transformer"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

func mustParse(t *testing.T, raw, region string) phonenumber.Number {
	t.Helper()
	num, err := phonenumber.Default().Parse(raw, region)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return num
}

func ptr[T any](v T) *T { return &v }

func TestOptions_Validate(t *testing.T) {
	opts := form.DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if opts.Compound() {
		t.Fatal("single text should not be compound")
	}

	opts.Widget = "radio"
	if err := opts.Validate(); !errors.Is(err, form.ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}

	if _, err := form.Build("phone", form.WithWidget("radio")); !errors.Is(err, form.ErrUnknownWidget) {
		t.Fatalf("Build: expected ErrUnknownWidget, got %v", err)
	}
	if _, err := form.Build(" "); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestSingleText_ViewAndSubmit(t *testing.T) {
	field, err := form.Build("phone", form.WithDefaultRegion("fr"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	view, err := field.View(mustParse(t, "+33612345678", ""))
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view != "+33 6 12 34 56 78" {
		t.Fatalf("unexpected view value %v", view)
	}
	if view, _ := field.View(nil); view != "" {
		t.Fatalf("expected empty view for nil, got %v", view)
	}

	num, err := field.Submit("06 12 34 56 78")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !phonenumber.Equal(num, mustParse(t, "+33612345678", "")) {
		t.Fatalf("unexpected number %v", num)
	}

	if num, err := field.Submit(""); err != nil || num != nil {
		t.Fatalf("empty submit: %v %v", num, err)
	}

	_, err = field.Submit("not a phone")
	var invalid *form.InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if invalid.Message != form.DefaultInvalidMessage || invalid.Field != "phone" {
		t.Fatalf("unexpected error %+v", invalid)
	}
	if !errors.Is(err, form.ErrInvalidValue) || !errors.Is(err, transformer.ErrTransformationFailed) {
		t.Fatalf("error chain incomplete: %v", err)
	}
}

func TestSingleText_NationalFormatDialledFromDefaultRegion(t *testing.T) {
	field, err := form.Build("phone",
		form.WithDefaultRegion("US"),
		form.WithFormat(phonenumber.National),
		form.WithInvalidMessage("Bad number."),
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	view, err := field.View(mustParse(t, "+33612345678", ""))
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view != "011 33 6 12 34 56 78" {
		t.Fatalf("unexpected view value %v", view)
	}

	_, err = field.Submit(42)
	var invalid *form.InvalidValueError
	if !errors.As(err, &invalid) || invalid.Message != "Bad number." {
		t.Fatalf("expected custom invalid message, got %v", err)
	}
}

func countryField(t *testing.T, opts ...form.Option) *form.Field {
	t.Helper()
	base := []form.Option{
		form.WithWidget(form.WidgetCountryChoice),
		form.WithCountryOptions(form.ChildOptions{Choices: []string{"FR", "US", "GB"}}),
	}
	field, err := form.Build("phone", append(base, opts...)...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return field
}

func TestCountryChoice_Children(t *testing.T) {
	field := countryField(t,
		form.WithRequired(false),
		form.WithDisabled(true),
		form.WithTranslationDomain("forms"),
		form.WithNumberOptions(form.ChildOptions{Required: ptr(true), Label: "Mobile"}),
	)

	if !field.Compound() {
		t.Fatal("country choice should be compound")
	}

	country, ok := field.Child(form.ChildCountry)
	if !ok {
		t.Fatal("missing country child")
	}
	number, _ := field.Child(form.ChildNumber)

	got := []form.ChildField{country, number}
	want := []form.ChildField{
		{
			Name: "country", Type: form.ChildTypeChoice,
			Required: true, Disabled: true, ErrorBubbling: true,
			TranslationDomain: "forms",
			Choices:           field.CountryChoices(),
		},
		{
			Name: "number", Type: form.ChildTypeText,
			Required: true, Disabled: true, ErrorBubbling: true,
			TranslationDomain: "forms", Label: "Mobile",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}

	var regions []string
	for _, choice := range field.CountryChoices() {
		regions = append(regions, choice.Region)
	}
	if diff := cmp.Diff([]string{"FR", "GB", "US"}, regions); diff != "" {
		t.Fatalf("choice order mismatch (-want +got):\n%s", diff)
	}
}

func TestCountryChoice_ViewAndSubmit(t *testing.T) {
	field := countryField(t, form.WithLocale("fr_FR"))

	view, err := field.View(nil)
	if err != nil {
		t.Fatalf("view nil: %v", err)
	}
	if diff := cmp.Diff(transformer.CountryNumber{Country: "FR"}, view); diff != "" {
		t.Fatalf("default view mismatch (-want +got):\n%s", diff)
	}

	view, err = field.View(mustParse(t, "+12015550123", ""))
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if diff := cmp.Diff(transformer.CountryNumber{Country: "US", Number: "(201) 555-0123"}, view); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}

	if _, err := field.View(mustParse(t, "+4930123456", "")); !errors.Is(err, transformer.ErrTransformationFailed) {
		t.Fatalf("expected failure for country outside choices, got %v", err)
	}

	num, err := field.Submit(map[string]any{"country": "FR", "number": "06 12 34 56 78"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !phonenumber.Equal(num, mustParse(t, "+33612345678", "")) {
		t.Fatalf("unexpected number %v", num)
	}

	if num, err := field.Submit(transformer.CountryNumber{Country: "FR"}); err != nil || num != nil {
		t.Fatalf("blank number: %v %v", num, err)
	}

	_, err = field.Submit(map[string]string{"country": "FR", "number": "+49 30 123456"})
	var invalid *form.InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError for foreign number, got %v", err)
	}
	var failed *transformer.TransformationFailedError
	if !errors.As(err, &failed) || failed.Message != "Invalid country." {
		t.Fatalf("expected Invalid country cause, got %v", err)
	}
}

func TestBuildView(t *testing.T) {
	field := countryField(t, form.WithDefaultCountry("GB"))

	view, err := field.BuildView(mustParse(t, "+33612345678", ""), "Server error")
	if err != nil {
		t.Fatalf("build view: %v", err)
	}
	if view.Vars["widget"] != form.WidgetCountryChoice || view.Vars["type"] != "phone" || view.Vars["compound"] != true {
		t.Fatalf("unexpected parent vars %#v", view.Vars)
	}
	if diff := cmp.Diff([]string{"Server error"}, view.Vars["errors"]); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	country := view.Child("country")
	number := view.Child("number")
	if country == nil || number == nil {
		t.Fatalf("missing children %#v", view.Children)
	}
	if country.Vars["value"] != "FR" || country.Vars["full_name"] != "phone[country]" {
		t.Fatalf("unexpected country vars %#v", country.Vars)
	}
	if number.Vars["value"] != "06 12 34 56 78" || number.Vars["id"] != "phone_number" {
		t.Fatalf("unexpected number vars %#v", number.Vars)
	}

	choices, _ := country.Vars["choices"].([]map[string]any)
	selected := 0
	for _, choice := range choices {
		if choice["selected"] == true {
			selected++
			if choice["value"] != "FR" {
				t.Fatalf("wrong choice selected %#v", choice)
			}
		}
	}
	if selected != 1 {
		t.Fatalf("expected exactly one selected choice, got %d", selected)
	}

	single, _ := form.Build("mobile")
	singleView, err := single.BuildView(nil)
	if err != nil {
		t.Fatalf("single view: %v", err)
	}
	if singleView.Vars["compound"] != false || singleView.Vars["value"] != "" || singleView.Vars["label"] != "Mobile" {
		t.Fatalf("unexpected single vars %#v", singleView.Vars)
	}
}

func TestField_Model(t *testing.T) {
	single, err := form.Build("mobilePhone", form.WithDefaultRegion("FR"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := model.Field{
		Name:     "mobilePhone",
		Type:     model.FieldTypeString,
		Format:   model.FormatPhone,
		Required: true,
		Label:    "Mobile Phone",
		Metadata: map[string]string{
			"defaultRegion":  "FR",
			"format":         "INTERNATIONAL",
			"invalidMessage": form.DefaultInvalidMessage,
		},
		UIHints: map[string]string{"widget": "single_text", "input": "phone", "inputType": "tel"},
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleRequired},
			{Kind: model.ValidationRulePhone, Params: map[string]string{"type": "any", "defaultRegion": "FR"}},
		},
	}
	if diff := cmp.Diff(want, single.Model()); diff != "" {
		t.Fatalf("single model mismatch (-want +got):\n%s", diff)
	}

	compound := countryField(t, form.WithDefaultCountry("US"), form.WithErrorBubbling(true)).Model()
	if compound.Type != model.FieldTypeObject || len(compound.Nested) != 2 {
		t.Fatalf("unexpected compound model %#v", compound)
	}
	if compound.Metadata["errorBubbling"] != "true" {
		t.Fatalf("expected error bubbling metadata, got %#v", compound.Metadata)
	}
	country, _ := compound.Child("country")
	if country.Default != "US" || len(country.Options) != 3 || country.UIHints["labelKey"] != form.CountryLabelKey {
		t.Fatalf("unexpected country model %#v", country)
	}
	number, _ := compound.Child("number")
	if number.Metadata["errorBubbling"] != "true" || number.UIHints["placeholderKey"] != form.NumberPlaceholderKey {
		t.Fatalf("unexpected number model %#v", number)
	}
}

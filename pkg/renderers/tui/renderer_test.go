package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	selectCfgs   []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func phoneModel(t *testing.T, opts ...form.Option) model.Field {
	t.Helper()
	field, err := form.Build("phone", opts...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return field.Model()
}

func newTestRenderer(t *testing.T, driver PromptDriver, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithPromptDriver(driver)}, opts...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderer_SingleTextPhone(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada", "+331234", "+33 6 12 34 56 78"}}
	r := newTestRenderer(t, driver, WithTheme(Theme{ErrorPrefix: "! "}))

	formModel := model.FormModel{Fields: []model.Field{
		{Name: "name", Type: model.FieldTypeString, Required: true},
		phoneModel(t),
	}}

	out, err := r.Render(context.Background(), formModel, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(`{"name":"Ada","phone":"+33612345678"}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"! This value is not a valid phone number."}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_CountryChoicePhone(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}, inputs: []string{"07400 123456"}}
	r := newTestRenderer(t, driver)

	formModel := model.FormModel{Fields: []model.Field{
		phoneModel(t,
			form.WithWidget(form.WidgetCountryChoice),
			form.WithCountryOptions(form.ChildOptions{Choices: []string{"FR", "GB"}}),
		),
	}}

	out, err := r.Render(context.Background(), formModel, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(`{"phone":"+447400123456"}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if len(driver.selectCfgs) != 1 {
		t.Fatalf("expected one select prompt, got %d", len(driver.selectCfgs))
	}
	if diff := cmp.Diff([]string{"France (+33)", "United Kingdom (+44)"}, driver.selectCfgs[0].Options); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"FR 33", "GB 44"}, driver.selectCfgs[0].Keywords); diff != "" {
		t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywordFilter(t *testing.T) {
	filter := keywordFilter([]string{"FR 33", "GB 44"})
	cases := []struct {
		filter string
		value  string
		index  int
		want   bool
	}{
		{filter: "", value: "France (+33)", index: 0, want: true},
		{filter: "fran", value: "France (+33)", index: 0, want: true},
		{filter: "gb", value: "United Kingdom (+44)", index: 1, want: true},
		{filter: "+44", value: "United Kingdom (+44)", index: 1, want: true},
		{filter: "44", value: "France (+33)", index: 0, want: false},
		{filter: "gb", value: "Unknown", index: 5, want: false},
	}
	for _, tc := range cases {
		if got := filter(tc.filter, tc.value, tc.index); got != tc.want {
			t.Fatalf("filter(%q, %q, %d): want %v, got %v", tc.filter, tc.value, tc.index, tc.want, got)
		}
	}
}

func TestRenderer_PhoneTypeConstraint(t *testing.T) {
	driver := &stubDriver{inputs: []string{"+1 800 234 5678", "+33612345678"}}
	r := newTestRenderer(t, driver, WithOutputFormat(OutputFormatPrettyText))

	field := phoneModel(t)
	field.Validations = []model.ValidationRule{{
		Kind:   model.ValidationRulePhone,
		Params: map[string]string{"type": "mobile"},
	}}

	out, err := r.Render(context.Background(), model.FormModel{Fields: []model.Field{field}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("phone=+33612345678\n", string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"This value is not a valid mobile number."}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_OptionalPhoneAndServerErrors(t *testing.T) {
	driver := &stubDriver{inputs: []string{""}, confirm: []bool{true}}
	r := newTestRenderer(t, driver, WithOutputFormat(OutputFormatFormURLEncoded))

	formModel := model.FormModel{Fields: []model.Field{
		phoneModel(t, form.WithRequired(false)),
		{Name: "subscribe", Type: model.FieldTypeBoolean},
	}}

	out, err := r.Render(context.Background(), formModel, render.RenderOptions{
		Errors:     map[string][]string{"phone": {"Already taken."}},
		FormErrors: []string{"Please review the form."},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("phone=&subscribe=true", string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Please review the form.", "Already taken."}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_RequiredPhoneReprompts(t *testing.T) {
	catalog := render.NewCatalog()
	catalog.Add("fr", map[string]string{BlankMessage: "Cette valeur ne doit pas être vide."})

	driver := &stubDriver{inputs: []string{" ", "0612345678"}}
	r := newTestRenderer(t, driver)

	out, err := r.Render(context.Background(), model.FormModel{Fields: []model.Field{
		phoneModel(t, form.WithDefaultRegion("FR")),
	}}, render.RenderOptions{Locale: "fr", Translator: catalog})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(`{"phone":"+33612345678"}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Cette valeur ne doit pas être vide."}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_SubmitTransformerAndAbort(t *testing.T) {
	driver := &stubDriver{inputs: []string{"+33612345678"}}
	r := newTestRenderer(t, driver, WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
		return map[string]any{"contact": values}, nil
	}))

	out, err := r.Render(context.Background(), model.FormModel{Fields: []model.Field{phoneModel(t)}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(`{"contact":{"phone":"+33612345678"}}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, model.FormModel{}, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestState_Paths(t *testing.T) {
	state := NewState(map[string]any{"contact.phone": "+33612345678"}, nil)
	if value, ok := state.GetValue("contact.phone"); !ok || value != "+33612345678" {
		t.Fatalf("expected flat key lookup, got %v %v", value, ok)
	}

	if err := state.SetValue("address.city", "Paris"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if value, ok := state.GetValue("address.city"); !ok || value != "Paris" {
		t.Fatalf("expected nested lookup, got %v %v", value, ok)
	}
	if err := state.SetValue("address.city.zip", "75001"); err == nil {
		t.Fatal("expected error when descending into a scalar")
	}
}

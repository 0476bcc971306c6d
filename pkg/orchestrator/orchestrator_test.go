package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/orchestrator"
	"github.com/goliatone/go-phoneform/pkg/render"
)

type signup struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile" phone:"type=mobile,region=FR"`
}

type captureRenderer struct {
	name string
	form model.FormModel
	opts render.RenderOptions
}

func (c *captureRenderer) Name() string        { return c.name }
func (c *captureRenderer) ContentType() string { return "text/plain" }
func (c *captureRenderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	c.form = form
	c.opts = opts
	return []byte(c.name), nil
}

func mustRegistry(t *testing.T, renderers ...render.Renderer) *render.Registry {
	t.Helper()
	registry, err := render.NewRegistry(renderers...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return registry
}

func TestGenerate_DefaultVanillaFromStruct(t *testing.T) {
	orch := orchestrator.New()

	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Value:       &signup{},
		OperationID: "signup",
		Endpoint:    "/signup",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(out)
	for _, fragment := range []string{
		`action="/signup"`,
		`data-operation="signup"`,
		`data-widget="single_text"`,
		`name="mobile"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, html)
		}
	}
	if diff := cmp.Diff([]string{"vanilla"}, orch.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_RendererSelectionAndDecorators(t *testing.T) {
	first := &captureRenderer{name: "alpha"}
	second := &captureRenderer{name: "beta"}

	var decorated bool
	orch := orchestrator.New(
		orchestrator.WithRegistry(mustRegistry(t, first, second)),
		orchestrator.WithDefaultRenderer("beta"),
		orchestrator.WithDecorators(model.DecoratorFunc(func(form *model.FormModel) error {
			decorated = true
			form.Summary = "Decorated"
			return nil
		})),
	)

	out, err := orch.Generate(context.Background(), orchestrator.Request{Value: signup{}})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "beta" || !decorated {
		t.Fatalf("expected default renderer beta with decorators, got %q (decorated=%v)", out, decorated)
	}
	if second.form.Summary != "Decorated" {
		t.Fatalf("expected decorated summary, got %q", second.form.Summary)
	}
	if got := second.form.Fields[0].UIHints["widget"]; got != form.WidgetSingleText {
		t.Fatalf("expected widget resolution, got %q", got)
	}

	out, err = orch.Generate(context.Background(), orchestrator.Request{Value: signup{}, Renderer: "alpha"})
	if err != nil || string(out) != "alpha" {
		t.Fatalf("explicit renderer: %q %v", out, err)
	}

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Value: signup{}, Renderer: "gamma"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestGenerate_FormIsNotMutated(t *testing.T) {
	capture := &captureRenderer{name: "capture"}
	orch := orchestrator.New(orchestrator.WithRegistry(mustRegistry(t, capture)))

	field, err := form.Build("phone")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	source := model.FormModel{Fields: []model.Field{field.Model()}}
	delete(source.Fields[0].UIHints, "widget")

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Form: &source, Method: "PUT"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := source.Fields[0].UIHints["widget"]; ok {
		t.Fatal("caller form model should not be decorated in place")
	}
	if capture.form.Method != "PUT" || capture.form.Fields[0].UIHints["widget"] != form.WidgetSingleText {
		t.Fatalf("unexpected rendered form: %+v", capture.form)
	}
}

func TestGenerate_Errors(t *testing.T) {
	orch := orchestrator.New()

	if _, err := orch.Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatal("expected error without value or form")
	}
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Value: "nope"}); err == nil {
		t.Fatal("expected error for non-struct value")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, orchestrator.Request{Value: signup{}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSubmit(t *testing.T) {
	orch := orchestrator.New()
	formModel, err := orch.Form(orchestrator.Request{Value: signup{}})
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	t.Run("valid national number", func(t *testing.T) {
		sub, err := orch.Submit(context.Background(), formModel, map[string]any{"mobile": "06 12 34 56 78"}, render.RenderOptions{})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !sub.Valid() {
			t.Fatalf("expected valid submission, got %+v", sub.Errors)
		}
		e164 := sub.E164()["mobile"]
		if e164 == nil || *e164 != "+33612345678" {
			t.Fatalf("unexpected E.164 value %v", e164)
		}
	})

	t.Run("wrong number type", func(t *testing.T) {
		sub, err := orch.Submit(context.Background(), formModel, map[string]any{"mobile": "+1 800 234 5678"}, render.RenderOptions{})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		want := map[string][]string{"mobile": {"This value is not a valid mobile number."}}
		if diff := cmp.Diff(want, sub.Errors.Fields); diff != "" {
			t.Fatalf("errors mismatch (-want +got):\n%s", diff)
		}
		if sub.Values["mobile"] != "+1 800 234 5678" {
			t.Fatalf("expected raw value to be kept, got %v", sub.Values["mobile"])
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		sub, err := orch.Submit(context.Background(), formModel, map[string]any{"mobile": "call me"}, render.RenderOptions{})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		want := map[string][]string{"mobile": {form.DefaultInvalidMessage}}
		if diff := cmp.Diff(want, sub.Errors.Fields); diff != "" {
			t.Fatalf("errors mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("optional blank", func(t *testing.T) {
		sub, err := orch.Submit(context.Background(), formModel, map[string]any{}, render.RenderOptions{})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !sub.Valid() || sub.E164()["mobile"] != nil {
			t.Fatalf("expected blank optional phone to bind to nil, got %+v", sub)
		}
	})
}

func TestSubmit_RequiredFieldsTranslated(t *testing.T) {
	catalog, err := render.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	field, err := form.Build("phone")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	formModel := model.FormModel{Fields: []model.Field{
		{Name: "name", Type: model.FieldTypeString, Required: true},
		field.Model(),
	}}

	orch := orchestrator.New()
	opts := render.RenderOptions{Locale: "fr", Translator: catalog}
	sub, err := orch.Submit(context.Background(), formModel, map[string]any{"name": " "}, opts)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	blank := "Cette valeur ne doit pas être vide."
	want := map[string][]string{"name": {blank}, "phone": {blank}}
	if diff := cmp.Diff(want, sub.Errors.Fields); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	redisplay := sub.RenderOptions(opts)
	if diff := cmp.Diff(want, redisplay.Errors); diff != "" {
		t.Fatalf("render options errors mismatch (-want +got):\n%s", diff)
	}
	if redisplay.Locale != "fr" {
		t.Fatalf("expected base options to be kept, got %+v", redisplay)
	}
}

package templatefn_test

import (
	"errors"
	"html/template"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-phoneform/pkg/serializer"
	"github.com/goliatone/go-phoneform/pkg/templatefn"
)

func TestExtension_Format(t *testing.T) {
	ext := templatefn.New(nil)
	num, err := phonenumber.Default().Parse("+33612345678", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		name   string
		num    any
		format any
		want   string
	}{
		{name: "default E164", num: num, want: "+33612345678"},
		{name: "constant", num: num, format: phonenumber.International, want: "+33 6 12 34 56 78"},
		{name: "int constant", num: num, format: 2, want: "06 12 34 56 78"},
		{name: "float constant", num: num, format: 3.0, want: "tel:+33-6-12-34-56-78"},
		{name: "name", num: num, format: "NATIONAL", want: "06 12 34 56 78"},
		{name: "lower case name", num: num, format: "rfc3966", want: "tel:+33-6-12-34-56-78"},
		{name: "string number", num: "+33612345678", format: "INTERNATIONAL", want: "+33 6 12 34 56 78"},
		{name: "serializer number", num: serializer.NewNumber(num), format: "E164", want: "+33612345678"},
		{name: "nil number", num: nil, format: "E164", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ext.Format(tt.num, tt.format)
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtension_FormatErrors(t *testing.T) {
	ext := templatefn.New(phonenumber.New())
	num, _ := phonenumber.Default().Parse("+33612345678", "")

	for _, format := range []any{"LOCAL", 7, phonenumber.Format(9), 1.5, true} {
		if _, err := ext.Format(num, format); !errors.Is(err, templatefn.ErrInvalidArgument) {
			t.Fatalf("format %v: expected ErrInvalidArgument, got %v", format, err)
		}
	}
	if _, err := ext.Format(42, nil); !errors.Is(err, templatefn.ErrNotANumber) {
		t.Fatalf("expected ErrNotANumber, got %v", err)
	}
	if _, err := ext.Format("0612345678", nil); !errors.Is(err, templatefn.ErrNotANumber) {
		t.Fatalf("expected ErrNotANumber for national string, got %v", err)
	}
}

func TestExtension_FuncsWithHTMLTemplate(t *testing.T) {
	ext := templatefn.New(nil)
	num, _ := phonenumber.Default().Parse("+18002345678", "")

	tmpl := template.Must(template.New("contact").Funcs(ext.Funcs()).Parse(
		`{{ phone_format .Number }}|{{ phone_format .Number "NATIONAL" }}`,
	))

	var out strings.Builder
	if err := tmpl.Execute(&out, map[string]any{"Number": num}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if want := "+18002345678|(800) 234-5678"; out.String() != want {
		t.Fatalf("want %q, got %q", want, out.String())
	}
}

func TestExtension_RegisterOnEngine(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"phone.tpl": {Data: []byte(`{{ phone_format(mobile, "INTERNATIONAL") }}|{{ mobile|phone_format:"NATIONAL" }}`)},
	}))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	ext := templatefn.New(nil)
	if err := ext.Register(engine); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Filters are process wide; registering twice is not an error.
	if err := ext.Register(engine); err != nil {
		t.Fatalf("second register: %v", err)
	}

	mobile, err := serializer.ParseNumber("+33612345678")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := engine.RenderTemplate("phone", map[string]any{"mobile": mobile})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "+33 6 12 34 56 78|06 12 34 56 78"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestExtension_RegisterOnEngineRawNumber(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"raw.tpl": {Data: []byte(`{{ phone_format(mobile, "NATIONAL") }}|{{ mobile|phone_format:"INTERNATIONAL" }}|{{ contact.phone|phone_format }}`)},
	}))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if err := templatefn.New(nil).Register(engine); err != nil {
		t.Fatalf("register: %v", err)
	}

	mobile, err := phonenumber.Default().Parse("+33612345678", phonenumber.UnknownRegion)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := engine.RenderTemplate("raw", map[string]any{
		"mobile":  mobile,
		"contact": map[string]any{"phone": mobile},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "06 12 34 56 78|+33 6 12 34 56 78|+33612345678"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

type taggedUtil struct {
	phonenumber.Util
}

func (u taggedUtil) Format(num phonenumber.Number, format phonenumber.Format) string {
	return "tagged:" + u.Util.Format(num, format)
}

func TestExtension_RegisterFilterIsProcessWide(t *testing.T) {
	newEngine := func() *gotemplate.Engine {
		engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
			"both.tpl": {Data: []byte(`{{ phone_format(mobile) }}|{{ mobile|phone_format }}`)},
		}))
		if err != nil {
			t.Fatalf("engine: %v", err)
		}
		return engine
	}

	// The default util owns the filter before the custom one registers.
	if err := templatefn.New(nil).Register(newEngine()); err != nil {
		t.Fatalf("register default: %v", err)
	}
	engine := newEngine()
	if err := templatefn.New(taggedUtil{Util: phonenumber.Default()}).Register(engine); err != nil {
		t.Fatalf("register tagged: %v", err)
	}

	got, err := engine.RenderTemplate("both", map[string]any{"mobile": "+33612345678"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "tagged:+33612345678|+33612345678"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-phoneform/internal/config"
	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/orchestrator"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
	"github.com/goliatone/go-phoneform/pkg/renderers/tui"
	"github.com/goliatone/go-phoneform/pkg/renderers/vanilla"
	"github.com/goliatone/go-phoneform/pkg/serializer"
	"github.com/goliatone/go-phoneform/pkg/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("phone-cli: %v", err)
	}
}

type options struct {
	configPath  string
	number      string
	region      string
	format      string
	kind        string
	locale      string
	renderer    string
	outputFmt   string
	output      string
	interactive bool
}

// result is printed for -number lookups.
type result struct {
	Input      string                `json:"input"`
	Valid      bool                  `json:"valid"`
	E164       *string               `json:"e164"`
	Formatted  string                `json:"formatted,omitempty"`
	Region     string                `json:"region,omitempty"`
	Type       string                `json:"type,omitempty"`
	Violations validation.Violations `json:"violations,omitempty"`
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("phone-cli", flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "optional YAML config file")
	fs.StringVar(&opts.number, "number", "", "phone number to validate and format")
	fs.StringVar(&opts.region, "region", "", "default region for numbers without a calling code")
	fs.StringVar(&opts.format, "format", "", "output format: E164, INTERNATIONAL, NATIONAL or RFC3966")
	fs.StringVar(&opts.kind, "type", validation.TypeAny, "required number type, e.g. mobile")
	fs.StringVar(&opts.locale, "locale", "", "locale for messages and country names")
	fs.StringVar(&opts.renderer, "renderer", "vanilla", "renderer for the phone form: vanilla or tui")
	fs.StringVar(&opts.outputFmt, "tui-output", string(tui.OutputFormatJSON), "tui answer format: json, form or pretty")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for a number in the terminal (same as -renderer tui)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.region != "" {
		cfg.Phone.DefaultRegion = opts.region
	}
	if opts.format != "" {
		cfg.Phone.Format = opts.format
	}
	if opts.locale != "" {
		cfg.Phone.Locale = opts.locale
	}

	catalog, err := render.DefaultCatalog()
	if err != nil {
		return err
	}

	var out []byte
	if opts.number != "" {
		out, err = lookup(opts, cfg.Phone, catalog)
	} else {
		out, err = generate(ctx, opts, cfg.Phone, catalog)
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		_, err = fmt.Fprintf(stdout, "Output written to %s\n", opts.output)
		return err
	}
	_, err = fmt.Fprintln(stdout, strings.TrimRight(string(out), "\n"))
	return err
}

// lookup validates and formats a single number.
func lookup(opts options, phone config.PhoneConfig, translator render.Translator) ([]byte, error) {
	format, err := phonenumber.ParseFormat(phone.Format)
	if err != nil {
		return nil, err
	}
	util := phonenumber.Default()

	validator := validation.New(
		validation.WithUtil(util),
		validation.WithTranslator(translator),
		validation.WithLocale(phone.Locale),
	)
	constraint := validation.Phone{Type: opts.kind, DefaultRegion: phone.Region()}
	violations, err := validator.Validate(opts.number, constraint)
	if err != nil {
		return nil, err
	}

	res := result{Input: opts.number, Valid: len(violations) == 0, Violations: violations}
	if num, err := util.Parse(opts.number, phone.Region()); err == nil {
		res.E164 = serializer.NewHandler(util).Serialize(num)
		res.Region = util.RegionCodeForNumber(num)
		res.Type = util.NumberType(num).String()
		if format == phonenumber.National {
			res.Formatted = util.FormatOutOfCountryCallingNumber(num, phone.Region())
		} else {
			res.Formatted = util.Format(num, format)
		}
	}
	return json.MarshalIndent(res, "", "  ")
}

// generate renders a one-field phone form, or prompts for it with the tui
// renderer.
func generate(ctx context.Context, opts options, phone config.PhoneConfig, translator render.Translator) ([]byte, error) {
	fieldOptions, err := phone.FieldOptions()
	if err != nil {
		return nil, err
	}
	field, err := form.Build("phone", fieldOptions...)
	if err != nil {
		return nil, err
	}
	fieldModel := field.Model()
	if opts.kind != "" && opts.kind != validation.TypeAny {
		for i, rule := range fieldModel.Validations {
			if rule.Kind == model.ValidationRulePhone {
				fieldModel.Validations[i].Params["type"] = opts.kind
			}
		}
	}

	vanillaRenderer, err := vanilla.New(vanilla.WithInlineStyles(true))
	if err != nil {
		return nil, err
	}
	tuiRenderer, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(opts.outputFmt)))
	if err != nil {
		return nil, err
	}
	registry, err := render.NewRegistry(vanillaRenderer, tuiRenderer)
	if err != nil {
		return nil, err
	}

	rendererName := opts.renderer
	if opts.interactive {
		rendererName = tuiRenderer.Name()
	}

	gen := orchestrator.New(orchestrator.WithRegistry(registry))
	return gen.Generate(ctx, orchestrator.Request{
		Form:        &model.FormModel{Fields: []model.Field{fieldModel}},
		OperationID: "phone",
		Method:      "POST",
		Renderer:    rendererName,
		RenderOptions: render.RenderOptions{
			Locale:     phone.Locale,
			Translator: translator,
		},
	})
}

package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-phoneform/components/countries"
	"github.com/goliatone/go-phoneform/internal/config"
	"github.com/goliatone/go-phoneform/internal/metrics"
	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/model"
	"github.com/goliatone/go-phoneform/pkg/orchestrator"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
	"github.com/goliatone/go-phoneform/pkg/render"
	"github.com/goliatone/go-phoneform/pkg/renderers/vanilla"
	"github.com/goliatone/go-phoneform/pkg/serializer"
)

// Route paths.
const (
	PathValidate = "/api/phone/validate"
	PathFormat   = "/api/phone/format"
	PathForm     = "/form"
	PathAssets   = "/assets"
	PathHealth   = "/healthz"
)

// Option customises NewRouter.
type Option func(*routerOptions)

type routerOptions struct {
	logger     *slog.Logger
	registry   *prometheus.Registry
	translator render.Translator
	util       phonenumber.Util
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *routerOptions) { o.logger = logger }
}

// WithPrometheusRegistry registers metrics on reg instead of a fresh
// registry.
func WithPrometheusRegistry(reg *prometheus.Registry) Option {
	return func(o *routerOptions) { o.registry = reg }
}

// WithTranslator overrides the embedded message catalog.
func WithTranslator(t render.Translator) Option {
	return func(o *routerOptions) { o.translator = t }
}

// WithUtil overrides the numbering-plan utility.
func WithUtil(util phonenumber.Util) Option {
	return func(o *routerOptions) { o.util = util }
}

type handlers struct {
	phone        config.PhoneConfig
	util         phonenumber.Util
	translator   render.Translator
	serializer   *serializer.Handler
	metrics      *metrics.Metrics
	orchestrator *orchestrator.Orchestrator
	form         model.FormModel
	widget       string
}

// NewRouter builds the service routes for cfg.
func NewRouter(cfg *config.Config, opts ...Option) (http.Handler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("server: config is required")
	}
	o := routerOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.util == nil {
		o.util = phonenumber.Default()
	}
	if o.translator == nil {
		catalog, err := render.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("server: load catalog: %w", err)
		}
		o.translator = catalog
	}

	h, err := newHandlers(cfg, o)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(o.logger))
	r.Use(middleware.Recoverer)
	if cfg.Metrics.Enabled {
		r.Use(h.metrics.Middleware)
		r.Method(http.MethodGet, cfg.Metrics.Path, h.metrics.Handler())
	}

	r.Get(PathHealth, h.health)
	r.Post(PathValidate, h.validatePhone)
	r.Post(PathFormat, h.formatPhone)
	r.Get(PathForm, h.showForm)
	r.Post(PathForm, h.submitForm)
	r.Handle(PathAssets+"/*", http.StripPrefix(PathAssets+"/", http.FileServer(http.FS(vanilla.AssetsFS()))))

	component := countries.New(
		countries.WithRegions(cfg.Phone.Countries),
		countries.WithDefaultLocale(cfg.Phone.Locale),
		countries.WithUtil(o.util),
	)
	if _, err := component.RegisterRoutes(r, "/"); err != nil {
		return nil, fmt.Errorf("server: register countries: %w", err)
	}
	return r, nil
}

func newHandlers(cfg *config.Config, o routerOptions) (*handlers, error) {
	fieldOptions, err := cfg.Phone.FieldOptions()
	if err != nil {
		return nil, err
	}
	fieldOptions = append(fieldOptions, form.WithUtil(o.util))
	phone, err := form.Build("phone", fieldOptions...)
	if err != nil {
		return nil, fmt.Errorf("server: build phone field: %w", err)
	}

	renderer, err := vanilla.New(vanilla.WithUtil(o.util), vanilla.WithInlineStyles(true))
	if err != nil {
		return nil, fmt.Errorf("server: vanilla renderer: %w", err)
	}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		return nil, fmt.Errorf("server: renderer registry: %w", err)
	}

	return &handlers{
		phone:        cfg.Phone,
		util:         o.util,
		translator:   o.translator,
		serializer:   serializer.NewHandler(o.util),
		metrics:      metrics.New(o.registry),
		orchestrator: orchestrator.New(orchestrator.WithRegistry(registry), orchestrator.WithUtil(o.util)),
		widget:       phone.Options.Widget,
		form: model.FormModel{
			OperationID: "submitContact",
			Endpoint:    PathForm,
			Method:      http.MethodPost,
			Summary:     "Contact",
			Fields: []model.Field{
				{Name: "name", Type: model.FieldTypeString, Label: "Name", Required: true},
				phone.Model(),
			},
		},
	}, nil
}

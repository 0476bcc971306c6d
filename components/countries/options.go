package countries

import (
	"net/http"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	LocaleParam     string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	DefaultLocale   string
	Guard           GuardFunc

	// Regions restricts the list; empty offers every supported region.
	Regions        []string
	Util           phonenumber.Util
	LabelFormatter form.LabelFormatter
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/phone-countries",
		SearchParam:     "q",
		LimitParam:      "limit",
		LocaleParam:     "locale",
		DefaultLimit:    50,
		MaxLimit:        300,
		EmptySearchMode: EmptySearchTop,
		DefaultLocale:   "en",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaults.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaults.MaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = defaults.EmptySearchMode
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaults.RoutePath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaults.SearchParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = defaults.LimitParam
	}
	if opts.LocaleParam == "" {
		opts.LocaleParam = defaults.LocaleParam
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = defaults.DefaultLocale
	}
	if opts.Util == nil {
		opts.Util = phonenumber.Default()
	}
	if opts.Regions != nil {
		opts.Regions = append([]string{}, opts.Regions...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithLocaleParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LocaleParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithDefaultLocale(locale string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLocale = locale
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRegions(regions []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if regions == nil {
			o.Regions = nil
			return
		}
		o.Regions = append([]string{}, regions...)
	}
}

func WithUtil(util phonenumber.Util) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Util = util
	}
}

func WithLabelFormatter(fn form.LabelFormatter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LabelFormatter = fn
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

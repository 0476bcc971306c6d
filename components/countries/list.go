package countries

import (
	"strings"
	"sync"

	"github.com/goliatone/go-phoneform/pkg/form"
)

// Option is a single entry of the JSON response.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// list caches country choices per locale; building one walks every region.
type list struct {
	opts  Options
	mu    sync.Mutex
	cache map[string][]form.CountryChoice
}

func newList(opts Options) *list {
	return &list{opts: opts, cache: make(map[string][]form.CountryChoice)}
}

func (l *list) choices(locale string) []form.CountryChoice {
	locale = strings.TrimSpace(locale)
	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[locale]; ok {
		return cached
	}
	choices := form.CountryChoices(l.opts.Util, l.opts.Regions, locale, l.opts.LabelFormatter)
	l.cache[locale] = choices
	return choices
}

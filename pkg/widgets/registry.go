// Package widgets resolves which widget renders a field. Phone fields resolve
// to the single text or country choice widget; their children resolve to
// select and text.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-phoneform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetSingleText    = "single_text"
	WidgetCountryChoice = "country_choice"
	WidgetSelect        = "select"
	WidgetText          = "text"
)

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	trimmed := strings.TrimSpace(name)
	if r == nil || matcher == nil || trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Explicit hints
// (Metadata["widget"] then UIHints["widget"]) win over matchers.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator: every resolved widget is written to
// UIHints["widget"] unless one is already present.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	form.Fields = r.decorateFields(form.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Field) []model.Field {
	if len(fields) == 0 {
		return fields
	}
	decorated := make([]model.Field, len(fields))
	for idx, field := range fields {
		decorated[idx] = r.decorateField(field)
	}
	return decorated
}

func (r *Registry) decorateField(field model.Field) model.Field {
	if widget, ok := r.Resolve(field); ok {
		if field.UIHints == nil {
			field.UIHints = make(map[string]string)
		}
		if field.UIHints["widget"] == "" {
			field.UIHints["widget"] = widget
		}
	}
	if field.Items != nil {
		item := r.decorateField(*field.Items)
		field.Items = &item
	}
	field.Nested = r.decorateFields(field.Nested)
	return field
}

func explicitWidget(field model.Field) string {
	if widget := strings.TrimSpace(field.Metadata["widget"]); widget != "" {
		return widget
	}
	return strings.TrimSpace(field.UIHints["widget"])
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCountryChoice, 90, func(field model.Field) bool {
		if !field.IsPhone() || field.Type != model.FieldTypeObject {
			return false
		}
		_, hasCountry := field.Child("country")
		_, hasNumber := field.Child("number")
		return hasCountry && hasNumber
	})

	r.Register(WidgetSingleText, 80, func(field model.Field) bool {
		return field.IsPhone() && field.Type == model.FieldTypeString
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		if field.Type == model.FieldTypeArray || field.Type == model.FieldTypeObject {
			return false
		}
		return len(field.Enum) > 0 || len(field.Options) > 0
	})

	r.Register(WidgetText, 10, func(field model.Field) bool {
		return field.Type == model.FieldTypeString
	})
}

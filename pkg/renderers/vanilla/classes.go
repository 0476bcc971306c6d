package vanilla

import "strings"

// ChromeClass is a typed identifier for the semantic CSS classes emitted by
// the renderer.
type ChromeClass string

const (
	ClassForm     ChromeClass = "phoneform-form"
	ClassHeader   ChromeClass = "phoneform-header"
	ClassField    ChromeClass = "phoneform-field"
	ClassFieldset ChromeClass = "phoneform-fieldset"
	ClassActions  ChromeClass = "phoneform-actions"
	ClassErrors   ChromeClass = "phoneform-errors"
	ClassError    ChromeClass = "phoneform-error"
)

// Classes overrides the chrome classes. Empty entries keep the defaults.
type Classes struct {
	Form     string
	Header   string
	Field    string
	Fieldset string
	Actions  string
	Errors   string
	Error    string
}

// DefaultClasses returns the classes used when no override is configured.
func DefaultClasses() Classes {
	return Classes{
		Form:     string(ClassForm),
		Header:   string(ClassHeader),
		Field:    string(ClassField),
		Fieldset: string(ClassFieldset),
		Actions:  string(ClassActions),
		Errors:   string(ClassErrors),
		Error:    string(ClassError),
	}
}

func (c Classes) merge(override Classes) Classes {
	pick := func(base, value string) string {
		if value = sanitizeClassList(value); value != "" {
			return value
		}
		return base
	}
	return Classes{
		Form:     pick(c.Form, override.Form),
		Header:   pick(c.Header, override.Header),
		Field:    pick(c.Field, override.Field),
		Fieldset: pick(c.Fieldset, override.Fieldset),
		Actions:  pick(c.Actions, override.Actions),
		Errors:   pick(c.Errors, override.Errors),
		Error:    pick(c.Error, override.Error),
	}
}

func (c Classes) context() map[string]any {
	return map[string]any{
		"form":     c.Form,
		"header":   c.Header,
		"field":    c.Field,
		"fieldset": c.Fieldset,
		"actions":  c.Actions,
		"errors":   c.Errors,
		"error":    c.Error,
	}
}

// sanitizeClassList drops reserved phoneform- tokens from caller supplied
// class lists so hints cannot impersonate chrome classes.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "phoneform-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func joinClasses(base, extra string) string {
	if extra = sanitizeClassList(extra); extra != "" {
		return base + " " + extra
	}
	return base
}

package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Violation describes a value that failed the Phone constraint.
type Violation struct {
	// Path is the dotted property path (empty for a bare value).
	Path string `json:"path,omitempty"`
	// Message is the translated message with parameters substituted.
	Message string `json:"message"`
	// MessageTemplate is the untranslated message, used as translation key.
	MessageTemplate string `json:"messageTemplate"`
	// Parameters holds the "{{ type }}" and "{{ value }}" placeholders.
	Parameters map[string]string `json:"parameters,omitempty"`
	// TranslationDomain is always TranslationDomain.
	TranslationDomain string `json:"translationDomain"`
	// InvalidValue is the reported value: the input string, or the
	// international format when a parsed number was validated.
	InvalidValue string `json:"invalidValue"`
}

// Violations is a list of constraint violations.
type Violations []Violation

// Error joins messages so a non-empty Violations can be returned as an error.
func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		if violation.Path != "" {
			parts = append(parts, violation.Path+": "+violation.Message)
			continue
		}
		parts = append(parts, violation.Message)
	}
	return strings.Join(parts, "; ")
}

// ByPath groups messages by property path, the payload shape
// render.MapErrorPayload expects.
func (v Violations) ByPath() map[string][]string {
	if len(v) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, violation := range v {
		out[violation.Path] = append(out[violation.Path], violation.Message)
	}
	return out
}

// Paths returns the sorted distinct paths with violations.
func (v Violations) Paths() []string {
	seen := make(map[string]struct{}, len(v))
	out := make([]string, 0, len(v))
	for _, violation := range v {
		if _, ok := seen[violation.Path]; ok {
			continue
		}
		seen[violation.Path] = struct{}{}
		out = append(out, violation.Path)
	}
	sort.Strings(out)
	return out
}

// UnexpectedTypeError is returned when a value cannot be treated as a phone
// number at all (maps, slices, structs without String()).
type UnexpectedTypeError struct {
	Value    any
	Expected string
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("validation: expected argument of type %q, %T given", e.Expected, e.Value)
}

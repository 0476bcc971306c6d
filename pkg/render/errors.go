package render

import (
	"strings"

	"github.com/goliatone/go-phoneform/pkg/model"
)

// MetadataErrorBubbling marks fields whose errors are reported on their
// parent. The country/number children of a country choice phone field set it
// so their failures surface on the phone field itself.
const MetadataErrorBubbling = "errorBubbling"

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by dotted field paths.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises error payloads (validation violations keyed by
// property path, or JSON pointer paths from API responses) into dotted field
// identifiers. Errors on bubbling fields move to their parent; unknown paths
// become form-level errors so messages are not lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	index := make(map[string]fieldEntry)
	indexFields(form.Fields, "", index)

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		target, ok := resolveErrorPath(rawPath, index)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[target] = normalizeMessages(append(mapping.Fields[target], normalized...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

type fieldEntry struct {
	parent   string
	bubbling bool
}

func indexFields(fields []model.Field, prefix string, dest map[string]fieldEntry) {
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		path := joinPath(prefix, name)
		dest[path] = fieldEntry{
			parent:   prefix,
			bubbling: field.Metadata[MetadataErrorBubbling] == "true",
		}
		indexFields(field.Nested, path, dest)
		if field.Items != nil && len(field.Items.Nested) > 0 {
			indexFields(field.Items.Nested, path, dest)
		}
	}
}

func resolveErrorPath(raw string, index map[string]fieldEntry) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := index[candidate]; ok {
			return bubble(candidate, index)
		}
	}
	return "", false
}

func bubble(path string, index map[string]fieldEntry) (string, bool) {
	for {
		entry, ok := index[path]
		if !ok || !entry.bubbling {
			return path, true
		}
		if entry.parent == "" {
			return "", false
		}
		path = entry.parent
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parsePathSegments accepts dotted paths, JSON pointers ("/phone/number"),
// JSONPath-ish prefixes ("$.phone") and bracket indexes ("phones[0]").
func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$./")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":    {},
	"request": {},
	"payload": {},
	"data":    {},
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return segments
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}

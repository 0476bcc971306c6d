package render

import (
	"strings"

	"github.com/goliatone/go-phoneform/pkg/model"
)

const (
	fieldLabelKeyHint       = "labelKey"
	fieldDescriptionKeyHint = "descriptionKey"
	fieldPlaceholderKeyHint = "placeholderKey"
	fieldHelpTextKeyHint    = "helpTextKey"
)

// LocalizeFormModel mutates the supplied form model in place, translating any
// configured `*Key` hints into their localized string values.
func LocalizeFormModel(form *model.FormModel, opts RenderOptions) {
	if form == nil {
		return
	}
	for i := range form.Fields {
		LocalizeField(&form.Fields[i], opts)
	}
}

// LocalizeField translates the `*Key` hints of a single field and its
// children. Translation failures are routed through opts.OnMissing.
func LocalizeField(field *model.Field, opts RenderOptions) {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	localizeField(field, opts.Locale, opts.Translator, onMissing)
}

func localizeField(field *model.Field, locale string, t Translator, onMissing MissingTranslationHandler) {
	if field == nil {
		return
	}

	if key := strings.TrimSpace(mapString(field.UIHints, fieldLabelKeyHint)); key != "" {
		field.Label = translate(locale, key, strings.TrimSpace(field.Label), t, onMissing)
	}
	if key := strings.TrimSpace(mapString(field.UIHints, fieldDescriptionKeyHint)); key != "" {
		field.Description = translate(locale, key, strings.TrimSpace(field.Description), t, onMissing)
	}
	if key := strings.TrimSpace(mapString(field.UIHints, fieldPlaceholderKeyHint)); key != "" {
		field.Placeholder = translate(locale, key, strings.TrimSpace(field.Placeholder), t, onMissing)
	}
	if key := strings.TrimSpace(mapString(field.UIHints, fieldHelpTextKeyHint)); key != "" {
		field.UIHints = ensureMap(field.UIHints)
		field.UIHints["helpText"] = translate(locale, key, strings.TrimSpace(field.UIHints["helpText"]), t, onMissing)
	}

	for i := range field.Nested {
		localizeField(&field.Nested[i], locale, t, onMissing)
	}
	if field.Items != nil {
		localizeField(field.Items, locale, t, onMissing)
	}
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	args := []any{map[string]any{"default": fallback}}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, args, err)
}

func ensureMap(in map[string]string) map[string]string {
	if in != nil {
		return in
	}
	return make(map[string]string)
}

func mapString(values map[string]string, key string) string {
	if values == nil || key == "" {
		return ""
	}
	return values[key]
}

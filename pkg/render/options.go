package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the field model.
type RenderOptions struct {
	// Values pre-populates rendered controls using dotted field paths (e.g.
	// "phone.country"). For phone fields the view value produced by the field
	// transformer is expected here.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field path, as
	// returned by MapErrorPayload.
	Errors map[string][]string
	// FormErrors carries messages that do not belong to a single field.
	FormErrors []string
	// Locale selects the translation locale (for example "fr-FR").
	Locale string
	// Translator resolves `*Key` hints and validation messages.
	Translator Translator
	// OnMissing customises the fallback when a key cannot be translated.
	OnMissing MissingTranslationHandler
}

package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Translator resolves a message key for a locale. Implementations receive the
// optional args passed by callers; maps of placeholders (for example
// {"{{ value }}": "+33..."}) are substituted by Translate helpers.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to render when a key cannot be
// translated. args carries the caller arguments; err is the translator error
// (ErrMissingTranslator when no translator is configured).
type MissingTranslationHandler func(locale, key string, args []any, err error) string

var (
	// ErrMissingTranslator is reported when translation is requested without a
	// configured Translator.
	ErrMissingTranslator = errors.New("render: translator is not configured")
	// ErrMissingTranslation is reported by Catalog for unknown keys.
	ErrMissingTranslation = errors.New("render: missing translation")
)

// missingTranslationDefault returns the "default" argument when present, else
// the key itself.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		values, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if fallback := strings.TrimSpace(anyToString(values["default"])); fallback != "" {
			return fallback
		}
	}
	return key
}

// TranslateMessage translates key and substitutes params in the result. When
// translation fails the untranslated key is used, so messages that double as
// keys (validation messages) still render.
func TranslateMessage(t Translator, locale, key string, params map[string]string) string {
	message := key
	if t != nil {
		if translated, err := t.Translate(locale, key, params); err == nil && strings.TrimSpace(translated) != "" {
			message = translated
		}
	}
	return substitute(message, params)
}

func substitute(message string, params map[string]string) string {
	if len(params) == 0 {
		return message
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(params)*2)
	for _, key := range keys {
		pairs = append(pairs, key, params[key])
	}
	return strings.NewReplacer(pairs...).Replace(message)
}

//go:embed translations/*.yaml
var embeddedTranslations embed.FS

// Catalog is an in-memory Translator backed by YAML message files named
// <domain>.<locale>.yaml, each holding a flat key -> message map.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{messages: make(map[string]map[string]string)}
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// DefaultCatalog returns the catalog loaded from the embedded translations.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		catalog := NewCatalog()
		if err := catalog.LoadFS(embeddedTranslations, "translations"); err != nil {
			defaultCatalogErr = err
			return
		}
		defaultCatalog = catalog
	})
	return defaultCatalog, defaultCatalogErr
}

// LoadFS loads every *.yaml file under dir.
func (c *Catalog) LoadFS(fsys fs.FS, dir string) error {
	if fsys == nil {
		return errors.New("render: catalog fs is nil")
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("render: read translations: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		locale, ok := localeFromFilename(entry.Name())
		if !ok {
			return fmt.Errorf("render: translation file %q must be named <domain>.<locale>.yaml", entry.Name())
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("render: read %s: %w", entry.Name(), err)
		}
		if err := c.LoadYAML(locale, data); err != nil {
			return fmt.Errorf("render: load %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// LoadYAML merges a flat key -> message YAML document into locale.
func (c *Catalog) LoadYAML(locale string, data []byte) error {
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return err
	}
	c.Add(locale, messages)
	return nil
}

// Add merges messages into locale. Later values win.
func (c *Catalog) Add(locale string, messages map[string]string) {
	key := normalizeLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages[key] == nil {
		c.messages[key] = make(map[string]string, len(messages))
	}
	for k, v := range messages {
		c.messages[key][k] = v
	}
}

// Locales returns the loaded locales, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate looks key up for locale, falling back to the base language
// ("fr-CA" -> "fr"). Placeholder maps in args are substituted.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeCandidates(locale) {
		if message, ok := c.messages[candidate][key]; ok {
			return substituteArgs(message, args), nil
		}
	}
	return "", fmt.Errorf("%w: %q (%s)", ErrMissingTranslation, key, locale)
}

func substituteArgs(message string, args []any) string {
	for _, arg := range args {
		switch params := arg.(type) {
		case map[string]string:
			message = substitute(message, params)
		case map[string]any:
			converted := make(map[string]string, len(params))
			for k, v := range params {
				converted[k] = anyToString(v)
			}
			message = substitute(message, converted)
		}
	}
	return message
}

func localeFromFilename(name string) (string, bool) {
	parts := strings.Split(strings.TrimSuffix(name, ".yaml"), ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return strings.ToLower(locale)
	}
	return tag.String()
}

func localeCandidates(locale string) []string {
	normalized := normalizeLocale(locale)
	candidates := []string{normalized}
	if tag, err := language.Parse(normalized); err == nil {
		if base, _ := tag.Base(); base.String() != normalized {
			candidates = append(candidates, base.String())
		}
	}
	return candidates
}

func anyToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is configured or negotiated.
const DefaultLanguage = "en"

// Translator resolves message templates from a catalogue loaded once at
// construction. It is safe for concurrent use.
type Translator struct {
	catalogue     map[string]map[string]any
	defaultLang   string
	namespace     string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger

	langs   []string
	matcher language.Matcher
}

// NewTranslator loads the catalogue from adapter and applies options.
func NewTranslator(ctx context.Context, adapter Adapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(t)
	}

	catalogue, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, entries := range catalogue {
		if lang == "" {
			return nil, fmt.Errorf("empty language code found")
		}
		if entries == nil {
			return nil, fmt.Errorf("nil messages map for language: %s", lang)
		}
	}
	t.catalogue = catalogue
	t.buildMatcher()

	t.logger.InfoContext(ctx, "messages loaded", slog.Any("languages", t.SupportedLanguages()))
	return t, nil
}

// buildMatcher registers the default language first so that it is the
// matcher's fallback.
func (t *Translator) buildMatcher() {
	t.langs = t.langs[:0]
	tags := make([]language.Tag, 0, len(t.catalogue)+1)
	add := func(lang string) {
		tag, err := language.Parse(lang)
		if err != nil {
			t.logger.Warn("skipping unparsable language tag", slog.String("lang", lang))
			return
		}
		t.langs = append(t.langs, lang)
		tags = append(tags, tag)
	}

	add(t.defaultLang)
	for _, lang := range t.SupportedLanguages() {
		if lang != t.defaultLang {
			add(lang)
		}
	}
	t.matcher = language.NewMatcher(tags)
}

// SupportedLanguages returns the catalogue languages in sorted order.
func (t *Translator) SupportedLanguages() []string {
	langs := make([]string, 0, len(t.catalogue))
	for lang := range t.catalogue {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// DefaultLanguage returns the configured default language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// MatchLanguage negotiates an Accept-Language header against the catalogue
// languages. Unparsable headers and poor matches yield the default language.
func (t *Translator) MatchLanguage(accept string) string {
	if accept == "" || len(t.langs) == 0 {
		return t.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(t.langs) {
		return t.defaultLang
	}
	return t.langs[idx]
}

// Lookup returns the template for key. The language is tried as given, then
// by its base ("de" for "de-AT"), then the default language.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	for _, candidate := range t.candidates(lang) {
		entries, ok := t.catalogue[candidate]
		if !ok {
			continue
		}
		if v, ok := find(entries, key); ok {
			switch s := v.(type) {
			case string:
				return s, true
			case fmt.Stringer:
				return s.String(), true
			}
		}
	}
	return "", false
}

func (t *Translator) candidates(lang string) []string {
	out := make([]string, 0, 3)
	if lang != "" {
		out = append(out, lang)
		if base, _, ok := strings.Cut(lang, "-"); ok && base != "" {
			out = append(out, base)
		}
	}
	if !slices.Contains(out, t.defaultLang) {
		out = append(out, t.defaultLang)
	}
	return out
}

// find walks a dot-separated key through nested maps.
func find(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	head, rest, ok := strings.Cut(key, ".")
	if !ok {
		return nil, false
	}
	next, ok := m[head].(map[string]any)
	if !ok {
		return nil, false
	}
	return find(next, rest)
}

// HasMessage reports whether any language defines a template for the message
// id under the configured namespace.
func (t *Translator) HasMessage(id string) bool {
	key := t.namespace + id
	for _, entries := range t.catalogue {
		if _, ok := find(entries, key); ok {
			return true
		}
	}
	return false
}

// HasTranslation reports whether lang itself defines key.
func (t *Translator) HasTranslation(lang, key string) bool {
	entries, ok := t.catalogue[lang]
	if !ok {
		return false
	}
	_, ok = find(entries, key)
	return ok
}

// Placeholders have the form %{name}.
var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// T looks up key and substitutes named arguments given as key, value pairs:
//
//	t.T("en", "welcome", "name", "John") // "Hello, John!"
//
// A missing key yields the key itself, or "" when fallback to key is off.
func (t *Translator) T(lang, key string, args ...string) string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}

	tmpl, ok := t.Lookup(lang, key)
	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}

	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}

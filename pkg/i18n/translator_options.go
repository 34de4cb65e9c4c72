package i18n

import "log/slog"

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when a template is missing in
// the requested one and when negotiation fails.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithNamespace prefixes message ids before lookup, e.g. "validation." so
// that id "required" resolves "validation.required".
func WithNamespace(ns string) Option {
	return func(t *Translator) {
		if ns != "" && ns[len(ns)-1] != '.' {
			ns += "."
		}
		t.namespace = ns
	}
}

// WithFallbackToKey controls whether T returns the key for missing entries.
// Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every missing template.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.logMissing = log
	}
}

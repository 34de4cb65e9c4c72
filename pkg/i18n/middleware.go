package i18n

import (
	"net/http"
	"slices"
	"strings"
)

// LangQueryParam overrides Accept-Language negotiation when it names a
// supported language.
const LangQueryParam = "lang"

// RequestLanguage picks the language for r: the "lang" query parameter when
// supported, otherwise the Accept-Language match.
func (t *Translator) RequestLanguage(r *http.Request) string {
	if q := strings.TrimSpace(r.URL.Query().Get(LangQueryParam)); q != "" {
		if slices.Contains(t.langs, q) {
			return q
		}
	}
	return t.MatchLanguage(r.Header.Get("Accept-Language"))
}

// Middleware stores the request language in the request context, see
// GetLocale.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), t.RequestLanguage(r))))
		})
	}
}

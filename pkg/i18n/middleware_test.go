package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	var got string
	handler := i18n.Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.GetLocale(r.Context())
	}))

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"accept header", "/", "de-DE,de;q=0.9", "de"},
		{"query overrides header", "/?lang=pt-BR", "de", "pt-BR"},
		{"unsupported query ignored", "/?lang=xx", "de", "de"},
		{"nothing", "/", "", "en"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.target, nil)
		if tt.accept != "" {
			req.Header.Set("Accept-Language", tt.accept)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestGetLocaleDefault(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(req.Context()))
}

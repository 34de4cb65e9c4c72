package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/internal/api"
	"github.com/dmitrymomot/formkit/internal/catalog"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const contactYAML = `
form: contact
groups:
  - name: account
    abbrev: acc
    fields:
      - name: email
        abbrev: em
        validators: [required, email]
      - name: language
        abbrev: la
        validators:
          - inList: {values: [en, de]}
`

type submissionResponse struct {
	Data  api.Submission   `json:"data"`
	Error *api.ErrorDetail `json:"error"`
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg, err := schema.Load(context.Background(), []byte(contactYAML))
	require.NoError(t, err)
	tr, err := catalog.NewTranslator(context.Background(), nil, "en")
	require.NoError(t, err)

	h, err := api.NewHandler(map[string]*form.FormConfig{"contact": cfg}, tr)
	require.NoError(t, err)
	return h
}

func serve(h http.Handler, req *http.Request) (*httptest.ResponseRecorder, submissionResponse) {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var resp submissionResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	return rr, resp
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	_, err := api.NewHandler(nil, nil)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rr.Body.String())
}

func TestListForms(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/forms", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"forms":["contact"],"languages":["de","en"]}}`, rr.Body.String())
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		rr, resp := serve(h, postForm("/forms/contact", url.Values{
			"f.acc.0.em": {"jane@example.com"},
			"f.acc.0.la": {"de"},
		}))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, resp.Data.Valid)
		assert.Equal(t, "contact", resp.Data.Form)
		assert.Empty(t, resp.Data.Errors)
		assert.Equal(t, []string{"jane@example.com"}, resp.Data.Values["f.acc.0.em"])
	})

	t.Run("invalid in negotiated language", func(t *testing.T) {
		t.Parallel()
		req := postForm("/forms/contact", url.Values{
			"f.acc.0.em": {"nope"},
			"f.acc.0.la": {"fr"},
		})
		req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
		rr, resp := serve(h, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.False(t, resp.Data.Valid)
		assert.Equal(t, "de", resp.Data.Lang)
		require.Len(t, resp.Data.Errors, 2)
		assert.Equal(t, api.FieldError{
			Key:      "f.acc.0.em",
			Group:    "account",
			Instance: "0",
			Field:    "email",
			ID:       "email",
			Message:  "Email muss eine gültige E-Mail-Adresse sein",
		}, resp.Data.Errors[0])
		assert.Equal(t, "inList", resp.Data.Errors[1].ID)
		assert.Equal(t, "Language muss einer dieser Werte sein: en; de", resp.Data.Errors[1].Message)
	})

	t.Run("lang query parameter", func(t *testing.T) {
		t.Parallel()
		req := postForm("/forms/contact?lang=en", url.Values{"f.acc.0.la": {"en"}})
		req.Header.Set("Accept-Language", "de")
		rr, resp := serve(h, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "en", resp.Data.Lang)
		require.Len(t, resp.Data.Errors, 1)
		assert.Equal(t, "Email is required", resp.Data.Errors[0].Message)
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/forms/contact",
			strings.NewReader(`{"f.acc.0.em":"jane@example.com","f.acc.0.la":"en"}`))
		req.Header.Set("Content-Type", "application/json")
		rr, resp := serve(h, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, resp.Data.Valid)
	})
}

func TestSubmitErrors(t *testing.T) {
	t.Parallel()

	h := newHandler(t)
	tests := []struct {
		name   string
		req    func() *http.Request
		status int
		code   string
	}{
		{
			name:   "unknown form",
			req:    func() *http.Request { return postForm("/forms/missing", url.Values{}) },
			status: http.StatusNotFound,
			code:   "not_found",
		},
		{
			name: "unsupported media type",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader("hello"))
				req.Header.Set("Content-Type", "text/plain")
				return req
			},
			status: http.StatusUnsupportedMediaType,
			code:   "unsupported_media_type",
		},
		{
			name: "missing content type",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader("a=b"))
			},
			status: http.StatusUnsupportedMediaType,
			code:   "unsupported_media_type",
		},
		{
			name: "malformed json",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader(`{"a":`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name:   "method not allowed",
			req:    func() *http.Request { return httptest.NewRequest(http.MethodGet, "/forms/contact", nil) },
			status: http.StatusMethodNotAllowed,
			code:   "method_not_allowed",
		},
		{
			name:   "unknown route",
			req:    func() *http.Request { return httptest.NewRequest(http.MethodGet, "/nope", nil) },
			status: http.StatusNotFound,
			code:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rr, resp := serve(h, tt.req())

			assert.Equal(t, tt.status, rr.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

const billingYAML = `
form: billing
groups:
  - name: main
    abbrev: m
    fields:
      - name: vat
        abbrev: v
        validators: [vatId]
`

func TestSubmitUntranslatedMessage(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register("vatId", func(map[string]any) (validator.Validator, error) {
		return validator.NewFunc("vatId", func(*validator.Context) bool { return false }, ""), nil
	}))
	cfg, err := schema.Load(context.Background(), []byte(billingYAML), schema.WithRegistry(reg))
	require.NoError(t, err)
	tr, err := catalog.NewTranslator(context.Background(), nil, "en")
	require.NoError(t, err)
	h, err := api.NewHandler(map[string]*form.FormConfig{"billing": cfg}, tr)
	require.NoError(t, err)

	rr, resp := serve(h, postForm("/forms/billing", url.Values{"f.m.0.v": {"DE123"}}))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal_error", resp.Error.Code)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	cfg, err := schema.Load(context.Background(), []byte(contactYAML))
	require.NoError(t, err)
	tr, err := catalog.NewTranslator(context.Background(), nil, "en")
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	h, err := api.NewHandler(map[string]*form.FormConfig{"contact": cfg}, tr, api.WithRegistry(reg))
	require.NoError(t, err)

	serve(h, postForm("/forms/contact", url.Values{"f.acc.0.em": {"jane@example.com"}}))
	serve(h, postForm("/forms/contact", url.Values{"f.acc.0.em": {"nope"}}))
	serve(h, postForm("/forms/contact", url.Values{"f.acc.0.em": {""}}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `formkit_submissions_total{form="contact",valid="true"} 1`)
	assert.Contains(t, rr.Body.String(), `formkit_submissions_total{form="contact",valid="false"} 2`)
}

package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func multipartRequest(t *testing.T, fields map[string]string, files map[string][]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for k, names := range files {
		for _, name := range names {
			part, err := w.CreateFormFile(k, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("content of " + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		body := url.Values{"f.acc.0.em": {"ann@example.com"}, "f.acc.0.tags": {"a", "b"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/?ignored=1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := binder.FromRequest(req)
		require.NoError(t, err)
		assert.Equal(t, []string{"f.acc.0.em", "f.acc.0.tags"}, got.Keys())
		values, ok := got.Values("f.acc.0.tags")
		assert.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, values)
	})

	t.Run("query string", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?f.acc.0.em=x", nil)
		got, err := binder.FromRequest(req)
		require.NoError(t, err)
		values, _ := got.Values("f.acc.0.em")
		assert.Equal(t, []string{"x"}, values)
	})

	t.Run("multipart with files", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t,
			map[string]string{"f.acc.0.em": "ann@example.com"},
			map[string][]string{
				"f.acc.0.av.attachment": {"../../etc/avatar.png"},
				"f.acc.0.docs":          {"a.pdf", "b.pdf"},
			},
		)

		got, err := binder.FromRequest(req)
		require.NoError(t, err)

		values, _ := got.Values("f.acc.0.em")
		assert.Equal(t, []string{"ann@example.com"}, values)

		att, ok := got.Attachment("f.acc.0.av.attachment")
		require.True(t, ok)
		fh, ok := att.(*multipart.FileHeader)
		require.True(t, ok)
		assert.Equal(t, "avatar.png", fh.Filename)

		docs, ok := got.Attachment("f.acc.0.docs")
		require.True(t, ok)
		assert.Len(t, docs, 2)
		assert.Contains(t, got.Keys(), "f.acc.0.docs")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
			`{"f.acc.0.em": "ann@example.com", "f.acc.0.age": 42, "f.acc.0.ok": true, "f.acc.0.tags": ["a", 1.5], "f.acc.0.nil": null}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		got, err := binder.FromRequest(req)
		require.NoError(t, err)
		for key, want := range map[string][]string{
			"f.acc.0.em":   {"ann@example.com"},
			"f.acc.0.age":  {"42"},
			"f.acc.0.ok":   {"true"},
			"f.acc.0.tags": {"a", "1.5"},
			"f.acc.0.nil":  {},
		} {
			values, ok := got.Values(key)
			assert.True(t, ok, key)
			assert.Equal(t, want, values, key)
		}
	})

	t.Run("control characters are dropped", func(t *testing.T) {
		t.Parallel()
		got := binder.FromValues(url.Values{"k": {"a\x00b\x1fc\td\ne"}})
		values, _ := got.Values("k")
		assert.Equal(t, []string{"abc\td\ne"}, values)
	})

	t.Run("binds into a form", func(t *testing.T) {
		t.Parallel()
		cfg := &form.FormConfig{Name: "upload", Groups: []form.GroupConfig{{
			Name:   "profile",
			Abbrev: "p",
			Fields: []form.FieldConfig{
				form.MustFieldConfig(validator.FieldConfig{Name: "name", Abbrev: "n"}, validator.NewRequired()),
				form.MustFieldConfig(validator.FieldConfig{Name: "avatar", Abbrev: "a"}),
			},
		}}}
		f, err := form.New(cfg)
		require.NoError(t, err)

		req, err := binder.FromRequest(multipartRequest(t,
			map[string]string{"f.p.0.n": "Ann"},
			map[string][]string{"f.p.0.a.attachment": {"me.jpg"}},
		))
		require.NoError(t, err)
		require.True(t, f.Init(req))

		avatar, err := f.Field("f.p.0.a")
		require.NoError(t, err)
		fh, ok := avatar.Attachment().(*multipart.FileHeader)
		require.True(t, ok)
		assert.Equal(t, "me.jpg", fh.Filename)
	})
}

func TestFromRequestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		want        error
	}{
		{name: "missing content type", body: "a=b", want: binder.ErrMissingContentType},
		{name: "unsupported", contentType: "text/plain", body: "a", want: binder.ErrUnsupportedMediaType},
		{name: "malformed content type", contentType: "multipart/form-data; boundary", want: binder.ErrInvalidForm},
		{name: "missing boundary", contentType: "multipart/form-data", want: binder.ErrInvalidForm},
		{name: "boundary too long", contentType: "multipart/form-data; boundary=" + strings.Repeat("x", 71), want: binder.ErrInvalidForm},
		{name: "boundary with bad character", contentType: `multipart/form-data; boundary="a<b"`, want: binder.ErrInvalidForm},
		{name: "truncated multipart", contentType: "multipart/form-data; boundary=xyz", body: "--xyz\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\nb", want: binder.ErrInvalidForm},
		{name: "empty json", contentType: "application/json", want: binder.ErrFailedToParseJSON},
		{name: "json array", contentType: "application/json", body: `["a"]`, want: binder.ErrFailedToParseJSON},
		{name: "nested json", contentType: "application/json", body: `{"a": {"b": 1}}`, want: binder.ErrFailedToParseJSON},
		{name: "trailing json", contentType: "application/json", body: `{"a": "b"} {"c": "d"}`, want: binder.ErrFailedToParseJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			_, err := binder.FromRequest(req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("json size limit", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a": "`+strings.Repeat("x", 64)+`"}`))
		req.Header.Set("Content-Type", "application/json")
		_, err := binder.FromRequest(req, binder.WithMaxJSONSize(16))
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})
}

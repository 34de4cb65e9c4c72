package binder

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/dmitrymomot/formkit/pkg/form"
)

const (
	// DefaultMaxMemory is the part of a multipart body kept in memory (10 MB).
	DefaultMaxMemory = 10 << 20
	// DefaultMaxJSONSize caps JSON bodies (1 MB).
	DefaultMaxJSONSize = 1 << 20
)

// Option configures FromRequest.
type Option func(*options)

type options struct {
	maxMemory   int64
	maxJSONSize int64
}

// WithMaxMemory sets the in-memory part of multipart parsing; larger files
// are spooled to disk by net/http.
func WithMaxMemory(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithMaxJSONSize caps the size of JSON bodies.
func WithMaxJSONSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxJSONSize = n
		}
	}
}

// FromRequest extracts the submitted parameters of r as a form.Request.
//
// Supported bodies are application/x-www-form-urlencoded, multipart/form-data
// and application/json objects. A GET or HEAD request without a body content
// type is read from its query string. Uploaded files become attachments
// under the key they were sent with: a *multipart.FileHeader, or a
// []*multipart.FileHeader when several files share the key. Values are
// stripped of control characters other than tab and newlines.
func FromRequest(r *http.Request, opts ...Option) (*form.MapRequest, error) {
	o := options{maxMemory: DefaultMaxMemory, maxJSONSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			return FromValues(r.URL.Query()), nil
		}
		return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded, multipart/form-data or application/json", ErrMissingContentType)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed content type: %v", ErrInvalidForm, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return FromValues(r.PostForm), nil
	case "multipart/form-data":
		return fromMultipart(r, params["boundary"], o.maxMemory)
	case "application/json":
		return fromJSON(r, o.maxJSONSize)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// FromValues wraps already parsed parameters, cleaning every value.
func FromValues(values url.Values) *form.MapRequest {
	params := make(map[string][]string, len(values))
	for key, vs := range values {
		cleaned := make([]string, len(vs))
		for i, v := range vs {
			cleaned[i] = cleanValue(v)
		}
		params[key] = cleaned
	}
	return form.NewMapRequest(params)
}

// cleanValue drops NUL and other control characters, keeping tabs and line
// breaks that textareas legitimately submit.
func cleanValue(s string) string {
	if strings.IndexFunc(s, isUnsafe) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isUnsafe(r) {
			return -1
		}
		return r
	}, s)
}

func isUnsafe(r rune) bool {
	return unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r'
}

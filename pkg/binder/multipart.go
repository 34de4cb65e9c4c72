package binder

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func fromMultipart(r *http.Request, boundary string, maxMemory int64) (*form.MapRequest, error) {
	if boundary == "" {
		return nil, fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
	}
	if !validBoundary(boundary) {
		return nil, fmt.Errorf("%w: invalid boundary parameter", ErrInvalidForm)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	if r.MultipartForm == nil {
		return form.NewMapRequest(nil), nil
	}

	req := FromValues(r.MultipartForm.Value)
	for key, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		for _, fh := range headers {
			fh.Filename = sanitizeFilename(fh.Filename)
		}
		if len(headers) == 1 {
			req.WithAttachment(key, headers[0])
		} else {
			req.WithAttachment(key, headers)
		}
	}
	return req, nil
}

// validBoundary checks the RFC 2046 boundary grammar: 1 to 70 characters
// from bchars, not ending in a space.
func validBoundary(b string) bool {
	if len(b) == 0 || len(b) > 70 || strings.HasSuffix(b, " ") {
		return false
	}
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}

// sanitizeFilename strips directory components and NUL bytes so a client
// supplied name can never address a path.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}

package form

import (
	"maps"
	"slices"
)

// Request is the submitted data a form binds from. Implementations come
// from the request-binding layer, see package binder.
type Request interface {
	// Keys returns every submitted key, value and attachment keys alike.
	Keys() []string
	Values(key string) ([]string, bool)
	Attachment(key string) (any, bool)
}

// MapRequest is a Request over plain maps.
type MapRequest struct {
	Params map[string][]string
	Files  map[string]any
}

// NewMapRequest creates a MapRequest over params.
func NewMapRequest(params map[string][]string) *MapRequest {
	return &MapRequest{Params: params}
}

// WithAttachment stores an attachment under key and returns r.
func (r *MapRequest) WithAttachment(key string, v any) *MapRequest {
	if r.Files == nil {
		r.Files = make(map[string]any)
	}
	r.Files[key] = v
	return r
}

// Keys returns the union of value and attachment keys in sorted order.
func (r *MapRequest) Keys() []string {
	seen := make(map[string]struct{}, len(r.Params)+len(r.Files))
	for k := range r.Params {
		seen[k] = struct{}{}
	}
	for k := range r.Files {
		seen[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

func (r *MapRequest) Values(key string) ([]string, bool) {
	v, ok := r.Params[key]
	return v, ok
}

func (r *MapRequest) Attachment(key string) (any, bool) {
	v, ok := r.Files[key]
	return v, ok
}

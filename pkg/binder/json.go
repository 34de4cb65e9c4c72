package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// fromJSON reads a flat object mapping keys to scalars or arrays of scalars.
// Numbers keep their literal text; null yields an empty value list.
func fromJSON(r *http.Request, maxSize int64) (*form.MapRequest, error) {
	if err := r.Context().Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > maxSize {
		return nil, fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, maxSize)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}

	values := make(map[string][]string, len(raw))
	for key, v := range raw {
		list, err := jsonValues(v)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrFailedToParseJSON, key, err)
		}
		values[key] = list
	}
	return FromValues(values), nil
}

func jsonValues(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, err := jsonScalar(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := jsonScalar(x)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func jsonScalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}

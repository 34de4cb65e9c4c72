package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser turns file content into a catalogue: language code to a nested map
// of message templates.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	// SupportsFileExtension accepts the extension with or without the
	// leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile picks a parser by file extension, or returns nil.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// splitLanguages checks that every top-level entry is a map of templates.
func splitLanguages(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		entries, ok := normalize(val).(map[string]any)
		if !ok {
			return nil, &invalidStructureError{lang: lang, got: val}
		}
		result[lang] = entries
	}
	return result, nil
}

// normalize converts map[any]any produced by some decoders into
// map[string]any, recursively.
func normalize(v any) any {
	switch m := v.(type) {
	case map[string]any:
		for k, item := range m {
			m[k] = normalize(item)
		}
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, item := range m {
			if ks, ok := k.(string); ok {
				out[ks] = normalize(item)
			}
		}
		return out
	default:
		return v
	}
}

type invalidStructureError struct {
	lang string
	got  any
}

func (e *invalidStructureError) Error() string {
	return "invalid structure for language '" + e.lang + "': expected map"
}

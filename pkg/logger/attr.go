package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". If err is nil, it returns an
// empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Form records the form name under the key "form".
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// FormGroup records the group name under the key "group". It is not called
// Group because Group builds slog groups.
func FormGroup(name string) slog.Attr {
	return slog.String("group", name)
}

// Instance records a group instance key under the key "instance".
func Instance(key string) slog.Attr {
	return slog.String("instance", key)
}

// FieldKey records a fully qualified field key under the key "field_key".
func FieldKey(key string) slog.Attr {
	return slog.String("field_key", key)
}

// ValidatorID records a validator id under the key "validator".
// If id is empty, it returns an empty Attr.
func ValidatorID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("validator", id)
}

// Valid records a validity flag under the key "valid".
func Valid(ok bool) slog.Attr {
	return slog.Bool("valid", ok)
}

// Count records a counter under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Language records a language tag under the key "lang".
func Language(tag string) slog.Attr {
	return slog.String("lang", tag)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

package form

import (
	"fmt"
	"strings"
)

// KeyFormat is the grammar of field keys:
//
//	prefix SEP groupAbbrev SEP instanceKey SEP fieldAbbrev [SEP suffix]
//
// where suffix is the absent or the attachment marker.
type KeyFormat struct {
	Prefix           string `yaml:"prefix"`
	Separator        string `yaml:"separator"`
	AbsentSuffix     string `yaml:"absent_suffix"`
	AttachmentSuffix string `yaml:"attachment_suffix"`
}

// DefaultKeyFormat produces keys such as "f.contact.0.email".
var DefaultKeyFormat = KeyFormat{
	Prefix:           "f",
	Separator:        ".",
	AbsentSuffix:     "absent",
	AttachmentSuffix: "attachment",
}

// Marker tells which reserved suffix a parsed key carried.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerAbsent
	MarkerAttachment
)

func (m Marker) String() string {
	switch m {
	case MarkerAbsent:
		return "absent"
	case MarkerAttachment:
		return "attachment"
	default:
		return "none"
	}
}

// Key is a parsed field key.
type Key struct {
	Group    string
	Instance string
	Field    string
}

// WithDefaults fills empty parts of k from DefaultKeyFormat.
func (k KeyFormat) WithDefaults() KeyFormat {
	if k.Prefix == "" {
		k.Prefix = DefaultKeyFormat.Prefix
	}
	if k.Separator == "" {
		k.Separator = DefaultKeyFormat.Separator
	}
	if k.AbsentSuffix == "" {
		k.AbsentSuffix = DefaultKeyFormat.AbsentSuffix
	}
	if k.AttachmentSuffix == "" {
		k.AttachmentSuffix = DefaultKeyFormat.AttachmentSuffix
	}
	return k
}

// Check verifies that the parts are non-empty, free of the separator, and
// that the two markers differ.
func (k KeyFormat) Check() error {
	if k.Separator == "" {
		return fmt.Errorf("%w: empty separator", ErrInvalidKeyFormat)
	}
	parts := []struct{ name, value string }{
		{"prefix", k.Prefix},
		{"absent suffix", k.AbsentSuffix},
		{"attachment suffix", k.AttachmentSuffix},
	}
	for _, p := range parts {
		if !k.ValidPart(p.value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidKeyFormat, p.name, p.value)
		}
	}
	if k.AbsentSuffix == k.AttachmentSuffix {
		return fmt.Errorf("%w: absent and attachment suffixes are both %q", ErrInvalidKeyFormat, k.AbsentSuffix)
	}
	return nil
}

// ValidPart reports whether s can be used as an abbreviation or instance key.
func (k KeyFormat) ValidPart(s string) bool {
	return s != "" && !strings.Contains(s, k.Separator)
}

// Build joins the parts into a base field key.
func (k KeyFormat) Build(group, instance, field string) string {
	return strings.Join([]string{k.Prefix, group, instance, field}, k.Separator)
}

// Absent returns the absent-marker key of a base key.
func (k KeyFormat) Absent(base string) string {
	return base + k.Separator + k.AbsentSuffix
}

// Attachment returns the attachment-marker key of a base key.
func (k KeyFormat) Attachment(base string) string {
	return base + k.Separator + k.AttachmentSuffix
}

// Parse splits raw into its parts. Keys that do not start with the prefix,
// have the wrong number of parts, or end in an unknown suffix are rejected
// with ErrMalformedKey.
func (k KeyFormat) Parse(raw string) (Key, Marker, error) {
	parts := strings.Split(raw, k.Separator)
	if len(parts) < 4 || len(parts) > 5 || parts[0] != k.Prefix {
		return Key{}, MarkerNone, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
	}
	for _, p := range parts {
		if p == "" {
			return Key{}, MarkerNone, fmt.Errorf("%w: %q has an empty part", ErrMalformedKey, raw)
		}
	}

	marker := MarkerNone
	if len(parts) == 5 {
		switch parts[4] {
		case k.AbsentSuffix:
			marker = MarkerAbsent
		case k.AttachmentSuffix:
			marker = MarkerAttachment
		default:
			return Key{}, MarkerNone, fmt.Errorf("%w: %q has unknown suffix %q", ErrMalformedKey, raw, parts[4])
		}
	}
	return Key{Group: parts[1], Instance: parts[2], Field: parts[3]}, marker, nil
}

package form

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/msgctx"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Field is one bound field of a group instance: raw values, an optional
// attachment, and the outcome of the last validation.
type Field struct {
	cfg   *FieldConfig
	group *Group
	key   string

	values     []string
	attachment any

	valid   bool
	message *validator.Message
}

func newField(cfg *FieldConfig, group *Group, key string) *Field {
	return &Field{
		cfg:    cfg,
		group:  group,
		key:    key,
		values: slices.Clone(cfg.Defaults),
		valid:  true,
	}
}

// Key returns the fully qualified field key.
func (f *Field) Key() string { return f.key }

func (f *Field) Name() string { return f.cfg.Name }

func (f *Field) Abbrev() string { return f.cfg.Abbrev }

// DisplayName returns the configured display name or the field name.
func (f *Field) DisplayName() string { return f.cfg.Label() }

func (f *Field) Config() *FieldConfig { return f.cfg }

func (f *Field) Group() *Group { return f.group }

// Values returns a copy of the raw values.
func (f *Field) Values() []string { return slices.Clone(f.values) }

// Value returns the first raw value, or "".
func (f *Field) Value() string {
	if len(f.values) == 0 {
		return ""
	}
	return f.values[0]
}

// SetValues replaces the raw values.
func (f *Field) SetValues(values ...string) {
	f.values = slices.Clone(values)
}

// AddValue appends a raw value pushed by a binder. Strings and string slices
// are taken as is, nil is ignored and anything else is formatted with
// fmt.Sprint.
func (f *Field) AddValue(v any) {
	switch x := v.(type) {
	case nil:
	case string:
		f.values = append(f.values, x)
	case []string:
		f.values = append(f.values, x...)
	case fmt.Stringer:
		f.values = append(f.values, x.String())
	default:
		f.values = append(f.values, fmt.Sprint(x))
	}
}

func (f *Field) Attachment() any { return f.attachment }

func (f *Field) SetAttachment(v any) { f.attachment = v }

// IsValid reports the outcome of the last validation. It is true until a
// validation fails.
func (f *Field) IsValid() bool { return f.valid }

// Message returns the failure message, if any.
func (f *Field) Message() (validator.Message, bool) {
	if f.message == nil {
		return validator.Message{}, false
	}
	return *f.message, true
}

// SetMessage marks the field invalid with m.
func (f *Field) SetMessage(m validator.Message) {
	f.valid = false
	f.message = &m
}

// Init resets the field. With a non-nil request it binds the submitted data
// and validates.
func (f *Field) Init(req Request) bool {
	f.Reset()
	if req == nil {
		return true
	}
	f.bind(req)
	return f.Validate()
}

// Reset makes the field valid and drops its message. Values are kept.
func (f *Field) Reset() {
	f.valid = true
	f.message = nil
}

// Validate runs the field's chain once and records the outcome.
func (f *Field) Validate() bool {
	f.Reset()
	ctx := validator.NewContext(f, f.group, f.group.messages)
	if validator.Run(ctx, f.cfg.Validators) {
		return true
	}
	f.valid = false
	if m, ok := ctx.Message(); ok {
		f.message = &m
	}
	return false
}

// MessageContext returns a context resolving this field's keys (field,
// fieldName, displayName, value and so on) over the group context. It
// supplies template parameters when rendering.
func (f *Field) MessageContext() *msgctx.MessageContext {
	return validator.NewContext(f, f.group, f.group.messages).Messages()
}

// bind takes the values of the base key, or of the absent-marker key when the
// base key was not submitted. Attachments come from the attachment-marker
// key; a textual value sent there is kept as the attachment too.
func (f *Field) bind(req Request) {
	keys := f.group.form.keys

	values, ok := req.Values(f.key)
	if !ok {
		values, ok = req.Values(keys.Absent(f.key))
	}
	if ok {
		f.values = slices.Clone(values)
	} else {
		f.values = nil
	}

	attKey := keys.Attachment(f.key)
	f.attachment = nil
	if v, ok := req.Attachment(attKey); ok {
		f.attachment = v
	} else if v, ok := req.Attachment(f.key); ok {
		f.attachment = v
	} else if text, ok := req.Values(attKey); ok && len(text) > 0 {
		f.attachment = text[0]
	}
}

package validator

import "maps"

// Validator is the unit of validation.
type Validator interface {
	// Init binds the validator to a field definition. It runs once at
	// configuration time; an error aborts configuration.
	Init(cfg FieldConfig) error
	// ID is the stable identifier used to look up message templates.
	ID() string
	// Validate reports whether the value under test is acceptable. It must
	// call ctx.SetMessage before returning false.
	Validate(ctx *Context) bool
	// Clone returns an independent copy for per-field Init state.
	Clone() Validator
}

// FieldConfig is the read-only schema of a field handed to Init.
type FieldConfig struct {
	Name        string
	Abbrev      string
	DisplayName string
	Defaults    []string
	Attrs       map[string]string
}

// Label returns the display name, falling back to the field name.
func (c FieldConfig) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// Field is the view of a form field available during validation.
type Field interface {
	Key() string
	Name() string
	DisplayName() string
	Values() []string
	Attachment() any
}

// FieldLookup resolves sibling fields by name within the owning group.
type FieldLookup interface {
	Lookup(name string) (Field, bool)
}

// Message is an error message selected by a validator: a template id, an
// English fallback text, and template parameters.
type Message struct {
	ID     string
	Text   string
	Params map[string]any
}

func (m Message) IsZero() bool {
	return m.ID == "" && m.Text == "" && len(m.Params) == 0
}

// MessageID returns the template id.
func (m Message) MessageID() string { return m.ID }

// FallbackText returns the text used when no template matches the id.
func (m Message) FallbackText() string { return m.Text }

// Param returns a template parameter.
func (m Message) Param(name string) (any, bool) {
	v, ok := m.Params[name]
	return v, ok
}

func (m Message) String() string {
	if m.Text != "" {
		return m.Text
	}
	return m.ID
}

func (m Message) clone() Message {
	m.Params = maps.Clone(m.Params)
	return m
}

// Run evaluates chain with AND semantics: the first failing validator's
// message is copied into ctx and false is returned. An empty chain passes.
func Run(ctx *Context, chain []Validator) bool {
	for _, v := range chain {
		child := ctx.Child()
		if !v.Validate(child) {
			if m, ok := child.Message(); ok {
				ctx.SetMessage(m)
			}
			return false
		}
	}
	return true
}

// Option configures the shared settings of built-in validators.
type Option func(*base)

// WithMessageID overrides the message id recorded on failure. The validator
// ID itself is unchanged.
func WithMessageID(id string) Option {
	return func(b *base) {
		b.messageID = id
	}
}

type base struct {
	id        string
	messageID string
}

func newBase(id string, opts []Option) base {
	b := base{id: id}
	for _, opt := range opts {
		if opt != nil {
			opt(&b)
		}
	}
	return b
}

func (b *base) ID() string { return b.id }

func (b *base) fail(ctx *Context, text string, params map[string]any) bool {
	id := b.messageID
	if id == "" {
		id = b.id
	}
	ctx.SetMessage(Message{ID: id, Text: text, Params: params})
	return false
}

func initAll(cfg FieldConfig, children []Validator) error {
	for _, child := range children {
		if child == nil {
			return ErrNilValidator
		}
		if err := child.Init(cfg); err != nil {
			return err
		}
	}
	return nil
}

func cloneAll(children []Validator) []Validator {
	if children == nil {
		return nil
	}
	out := make([]Validator, len(children))
	for i, child := range children {
		if child != nil {
			out[i] = child.Clone()
		}
	}
	return out
}

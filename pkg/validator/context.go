package validator

import "github.com/dmitrymomot/formkit/pkg/msgctx"

// Keys resolved dynamically by a validation Context, plus the keys
// published by combinators.
const (
	KeyField       = "field"
	KeyFieldName   = "fieldName"
	KeyFieldKey    = "fieldKey"
	KeyDisplayName = "displayName"
	KeyValue       = "value"
	KeyValues      = "values"
	KeyValueIndex  = "valueIndex"
	KeyAllMessages = "allMessages"
	// KeyBound is the violated bound of length and range, a nested Message.
	KeyBound = "bound"
)

// Context is the per-call bundle passed to Validate. It is ephemeral and
// owned by a single evaluation.
type Context struct {
	field    Field
	fields   FieldLookup
	value    string
	index    int
	message  *Message
	messages *msgctx.MessageContext
}

// NewContext creates the root context for validating field. The value under
// test is the field's first raw value. parent, when non-nil, is the context
// consulted for keys the validation context cannot resolve.
func NewContext(field Field, fields FieldLookup, parent msgctx.Parent) *Context {
	c := &Context{field: field, fields: fields, index: -1}
	if field != nil {
		if values := field.Values(); len(values) > 0 {
			c.value = values[0]
		}
	}
	c.messages = msgctx.New(msgctx.WithParent(parent), msgctx.WithResolver(msgctx.ResolverFunc(c.resolve)))
	return c
}

func (c *Context) derive(value string, index int) *Context {
	child := &Context{field: c.field, fields: c.fields, value: value, index: index}
	child.messages = msgctx.New(msgctx.WithParent(c.messages), msgctx.WithResolver(msgctx.ResolverFunc(child.resolve)))
	return child
}

// Child derives a fresh context for the same field and value with an empty
// message slot. Its MessageContext has c's MessageContext as parent.
func (c *Context) Child() *Context {
	return c.derive(c.value, c.index)
}

// ForValue derives a child context testing the i-th raw value of the field.
// The index is exposed under KeyValueIndex.
func (c *Context) ForValue(i int) *Context {
	var value string
	if values := c.Values(); i >= 0 && i < len(values) {
		value = values[i]
	}
	child := c.derive(value, i)
	child.messages.Put(KeyValueIndex, i)
	return child
}

func (c *Context) Field() Field { return c.field }

// Lookup resolves a sibling field by name.
func (c *Context) Lookup(name string) (Field, bool) {
	if c.fields == nil {
		return nil, false
	}
	return c.fields.Lookup(name)
}

// Value returns the raw value under test.
func (c *Context) Value() string { return c.value }

// Values returns every raw value of the field.
func (c *Context) Values() []string {
	if c.field == nil {
		return nil
	}
	return c.field.Values()
}

// ValueIndex returns the index of the value under test, or -1 when the field
// is tested as a whole.
func (c *Context) ValueIndex() int { return c.index }

// Message returns the recorded message, if any.
func (c *Context) Message() (Message, bool) {
	if c.message == nil {
		return Message{}, false
	}
	return c.message.clone(), true
}

// SetMessage records the failure message, replacing any previous one.
func (c *Context) SetMessage(m Message) {
	m = m.clone()
	c.message = &m
}

func (c *Context) ClearMessage() {
	c.message = nil
}

// Messages returns the MessageContext of this evaluation level.
func (c *Context) Messages() *msgctx.MessageContext { return c.messages }

func (c *Context) resolve(key string) (any, bool) {
	switch key {
	case KeyValue:
		return c.value, true
	}
	if c.field == nil {
		return nil, false
	}
	switch key {
	case KeyField:
		return c.field, true
	case KeyFieldName:
		return c.field.Name(), true
	case KeyFieldKey:
		return c.field.Key(), true
	case KeyDisplayName:
		return c.field.DisplayName(), true
	case KeyValues:
		return c.field.Values(), true
	default:
		return nil, false
	}
}

package validator

import "slices"

// AllOf passes when every child passes. The first failing child's message is
// copied to the outer context and the remaining children are skipped.
type AllOf struct {
	base
	children []Validator
}

func NewAllOf(children ...Validator) *AllOf {
	return &AllOf{base: newBase("allOf", nil), children: children}
}

func (v *AllOf) Init(cfg FieldConfig) error { return initAll(cfg, v.children) }

func (v *AllOf) Validate(ctx *Context) bool { return Run(ctx, v.children) }

func (v *AllOf) Clone() Validator {
	c := *v
	c.children = cloneAll(v.children)
	return &c
}

func (v *AllOf) Children() []Validator { return slices.Clone(v.children) }

// AnyOf passes as soon as one child passes. When every child fails, their
// messages are available in order under KeyAllMessages and AnyOf records its
// own message carrying them as the "allMessages" parameter.
type AnyOf struct {
	base
	children []Validator
}

func NewAnyOf(children ...Validator) *AnyOf {
	return newAnyOf(children, nil)
}

// NewAnyOfWith is NewAnyOf with options for the combinator's own message.
func NewAnyOfWith(children []Validator, opts ...Option) *AnyOf {
	return newAnyOf(children, opts)
}

func newAnyOf(children []Validator, opts []Option) *AnyOf {
	return &AnyOf{base: newBase("anyOf", opts), children: children}
}

func (v *AnyOf) Init(cfg FieldConfig) error { return initAll(cfg, v.children) }

func (v *AnyOf) Validate(ctx *Context) bool {
	collected := newCollector(ctx)
	for _, child := range v.children {
		cctx := ctx.Child()
		if child.Validate(cctx) {
			return true
		}
		collected.add(cctx)
	}
	return v.fail(ctx, "none of the alternatives is satisfied", map[string]any{
		KeyAllMessages: collected.messages(),
	})
}

func (v *AnyOf) Clone() Validator {
	c := *v
	c.children = cloneAll(v.children)
	return &c
}

func (v *AnyOf) Children() []Validator { return slices.Clone(v.children) }

// collector publishes an empty allMessages list on creation and appends
// failing child messages to it.
type collector struct {
	ctx  *Context
	list []Message
}

func newCollector(ctx *Context) *collector {
	ctx.Messages().Put(KeyAllMessages, []Message{})
	return &collector{ctx: ctx, list: []Message{}}
}

func (c *collector) add(child *Context) {
	m, ok := child.Message()
	if !ok {
		return
	}
	c.list = append(c.list, m)
	c.ctx.Messages().Put(KeyAllMessages, c.messages())
}

func (c *collector) messages() []Message {
	return slices.Clone(c.list)
}

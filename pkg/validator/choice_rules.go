package validator

import (
	"slices"
	"strings"
)

// InList requires a non-empty value to be one of the allowed values.
type InList struct {
	rule
	allowed    []string
	ignoreCase bool
}

func NewInList(allowed []string, opts ...Option) *InList {
	return &InList{rule: newRule("inList", opts), allowed: allowed}
}

// NewInListFold is NewInList with case-insensitive comparison.
func NewInListFold(allowed []string, opts ...Option) *InList {
	v := NewInList(allowed, opts...)
	v.ignoreCase = true
	return v
}

func (v *InList) Init(cfg FieldConfig) error {
	v.bind(cfg)
	return nil
}

func (v *InList) Validate(ctx *Context) bool {
	value := ctx.Value()
	if value == "" {
		return true
	}
	for _, allowed := range v.allowed {
		if value == allowed || (v.ignoreCase && strings.EqualFold(value, allowed)) {
			return true
		}
	}
	return v.reject(ctx, "must be one of: "+strings.Join(v.allowed, ", "), map[string]any{
		"allowed": slices.Clone(v.allowed),
	})
}

func (v *InList) Clone() Validator {
	c := *v
	c.allowed = slices.Clone(v.allowed)
	return &c
}

// EqualsField requires the value to equal the first value of a sibling field,
// typically a confirmation input. Empty values are compared too.
type EqualsField struct {
	rule
	other string
}

func NewEqualsField(other string, opts ...Option) *EqualsField {
	return &EqualsField{rule: newRule("equalsField", opts), other: other}
}

func (v *EqualsField) Init(cfg FieldConfig) error {
	v.bind(cfg)
	return nil
}

func (v *EqualsField) Validate(ctx *Context) bool {
	if ctx.Value() == firstValue(ctx, v.other) {
		return true
	}
	label := v.other
	if f, ok := ctx.Lookup(v.other); ok && f.DisplayName() != "" {
		label = f.DisplayName()
	}
	return v.reject(ctx, "must match "+label, map[string]any{"other": label})
}

func (v *EqualsField) Clone() Validator {
	c := *v
	return &c
}

// Func adapts a function into a leaf validator. When fn rejects the value
// without recording a message, Func records one with the given text.
type Func struct {
	rule
	fn   func(ctx *Context) bool
	text string
}

func NewFunc(id string, fn func(ctx *Context) bool, text string, opts ...Option) *Func {
	return &Func{rule: newRule(id, opts), fn: fn, text: text}
}

func (v *Func) Init(cfg FieldConfig) error {
	if v.fn == nil {
		return ErrNilValidator
	}
	v.bind(cfg)
	return nil
}

func (v *Func) Validate(ctx *Context) bool {
	if v.fn(ctx) {
		return true
	}
	if _, ok := ctx.Message(); !ok {
		return v.reject(ctx, v.text, nil)
	}
	return false
}

func (v *Func) Clone() Validator {
	c := *v
	return &c
}

package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// rule is the shared state of leaf validators: identity plus the field label
// captured at Init.
type rule struct {
	base
	label string
}

func newRule(id string, opts []Option) rule {
	return rule{base: newBase(id, opts)}
}

func (r *rule) bind(cfg FieldConfig) {
	r.label = cfg.Label()
}

func (r *rule) reject(ctx *Context, text string, params map[string]any) bool {
	if params == nil {
		params = make(map[string]any, 1)
	}
	params["field"] = r.label
	return r.fail(ctx, text, params)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Required rejects values that are empty after trimming whitespace.
type Required struct {
	rule
}

func NewRequired(opts ...Option) *Required {
	return &Required{rule: newRule("required", opts)}
}

func (v *Required) Init(cfg FieldConfig) error {
	v.bind(cfg)
	return nil
}

func (v *Required) Validate(ctx *Context) bool {
	if !blank(ctx.Value()) {
		return true
	}
	return v.reject(ctx, "field is required", nil)
}

func (v *Required) Clone() Validator {
	c := *v
	return &c
}

// Length bounds the number of characters of a non-empty value. A zero Max
// leaves the upper bound open.
type Length struct {
	rule
	min, max int
}

func NewLength(min, max int, opts ...Option) *Length {
	return &Length{rule: newRule("length", opts), min: min, max: max}
}

func (v *Length) Init(cfg FieldConfig) error {
	if v.min < 0 || (v.max > 0 && v.max < v.min) {
		return fmt.Errorf("invalid length bounds [%d, %d]", v.min, v.max)
	}
	v.bind(cfg)
	return nil
}

func (v *Length) Validate(ctx *Context) bool {
	value := ctx.Value()
	if value == "" {
		return true
	}
	n := utf8.RuneCountInString(value)
	params := map[string]any{"min": v.min, "max": v.max, "length": n}
	switch {
	case n < v.min:
		params[KeyBound] = Message{ID: "length.min", Text: fmt.Sprintf("at least %d", v.min), Params: map[string]any{"min": v.min}}
		return v.reject(ctx, fmt.Sprintf("must be at least %d characters long", v.min), params)
	case v.max > 0 && n > v.max:
		params[KeyBound] = Message{ID: "length.max", Text: fmt.Sprintf("at most %d", v.max), Params: map[string]any{"max": v.max}}
		return v.reject(ctx, fmt.Sprintf("must be at most %d characters long", v.max), params)
	}
	return true
}

func (v *Length) Clone() Validator {
	c := *v
	return &c
}

// Pattern requires a non-empty value to match a regular expression. The
// expression is compiled by Init.
type Pattern struct {
	rule
	expr string
	re   *regexp.Regexp
}

func NewPattern(expr string, opts ...Option) *Pattern {
	return &Pattern{rule: newRule("pattern", opts), expr: expr}
}

func (v *Pattern) Init(cfg FieldConfig) error {
	re, err := regexp.Compile(v.expr)
	if err != nil {
		return fmt.Errorf("compile pattern %q: %w", v.expr, err)
	}
	v.re = re
	v.bind(cfg)
	return nil
}

func (v *Pattern) Validate(ctx *Context) bool {
	value := ctx.Value()
	if value == "" {
		return true
	}
	if v.re != nil && v.re.MatchString(value) {
		return true
	}
	return v.reject(ctx, "has an invalid format", map[string]any{"pattern": v.expr})
}

func (v *Pattern) Clone() Validator {
	c := *v
	return &c
}

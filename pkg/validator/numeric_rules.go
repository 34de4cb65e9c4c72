package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Range requires a non-empty value to be a number within [min, max].
type Range struct {
	rule
	min, max float64
}

func NewRange(min, max float64, opts ...Option) *Range {
	return &Range{rule: newRule("range", opts), min: min, max: max}
}

func (v *Range) Init(cfg FieldConfig) error {
	if v.max < v.min {
		return fmt.Errorf("invalid range [%v, %v]", v.min, v.max)
	}
	v.bind(cfg)
	return nil
}

func (v *Range) Validate(ctx *Context) bool {
	value := strings.TrimSpace(ctx.Value())
	if value == "" {
		return true
	}
	params := map[string]any{"min": v.min, "max": v.max, KeyBound: v.bound()}
	n, err := strconv.ParseFloat(value, 64)
	// ParseFloat accepts "NaN" and "Inf", which are not submitted numbers
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return v.reject(ctx, "must be a number", params)
	}
	if n < v.min || n > v.max {
		return v.reject(ctx, fmt.Sprintf("must be between %v and %v", v.min, v.max), params)
	}
	return true
}

// bound describes the accepted interval. ±math.MaxFloat64 is an open end.
func (v *Range) bound() Message {
	bounds := map[string]any{"min": v.min, "max": v.max}
	lower, upper := v.min > -math.MaxFloat64, v.max < math.MaxFloat64
	switch {
	case lower && upper:
		return Message{ID: "range.between", Text: fmt.Sprintf("between %v and %v", v.min, v.max), Params: bounds}
	case lower:
		return Message{ID: "range.min", Text: fmt.Sprintf("at least %v", v.min), Params: bounds}
	case upper:
		return Message{ID: "range.max", Text: fmt.Sprintf("at most %v", v.max), Params: bounds}
	default:
		return Message{ID: "range.number", Text: "a number"}
	}
}

func (v *Range) Clone() Validator {
	c := *v
	return &c
}

// Integer requires a non-empty value to be a base-10 integer.
type Integer struct {
	rule
}

func NewInteger(opts ...Option) *Integer {
	return &Integer{rule: newRule("integer", opts)}
}

func (v *Integer) Init(cfg FieldConfig) error {
	v.bind(cfg)
	return nil
}

func (v *Integer) Validate(ctx *Context) bool {
	value := strings.TrimSpace(ctx.Value())
	if value == "" {
		return true
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return true
	}
	return v.reject(ctx, "must be an integer", nil)
}

func (v *Integer) Clone() Validator {
	c := *v
	return &c
}

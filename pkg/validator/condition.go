package validator

import "strings"

// Condition is a boolean predicate consulted by If and When. Implementations
// must be synchronous and free of side effects; they are shared between
// cloned validators.
type Condition interface {
	IsSatisfied(ctx *Context) bool
}

// ConditionFunc adapts a function into a Condition.
type ConditionFunc func(ctx *Context) bool

// IsSatisfied delegates to the underlying function.
func (fn ConditionFunc) IsSatisfied(ctx *Context) bool {
	return fn(ctx)
}

// FieldEquals holds when the sibling field's first value equals value.
func FieldEquals(name, value string) Condition {
	return ConditionFunc(func(ctx *Context) bool {
		return firstValue(ctx, name) == value
	})
}

// FieldPresent holds when the sibling field has a non-blank first value.
func FieldPresent(name string) Condition {
	return ConditionFunc(func(ctx *Context) bool {
		return strings.TrimSpace(firstValue(ctx, name)) != ""
	})
}

// ValueEquals holds when the value under test equals value.
func ValueEquals(value string) Condition {
	return ConditionFunc(func(ctx *Context) bool {
		return ctx.Value() == value
	})
}

// KeyEquals holds when the MessageContext entry for key renders as value.
func KeyEquals(key, value string) Condition {
	return ConditionFunc(func(ctx *Context) bool {
		v, ok := ctx.Messages().Lookup(key)
		return ok && v.String() == value
	})
}

// Not negates c.
func Not(c Condition) Condition {
	return ConditionFunc(func(ctx *Context) bool {
		return !c.IsSatisfied(ctx)
	})
}

func firstValue(ctx *Context, name string) string {
	f, ok := ctx.Lookup(name)
	if !ok {
		return ""
	}
	if values := f.Values(); len(values) > 0 {
		return values[0]
	}
	return ""
}

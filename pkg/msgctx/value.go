package msgctx

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind discriminates the shape of a Value.
type Kind uint8

const (
	// KindNil marks a missing value.
	KindNil Kind = iota
	// KindScalar marks a single value.
	KindScalar
	// KindSequence marks an ordered sequence of values.
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	default:
		return "nil"
	}
}

// Value is the result of a context lookup: nothing, a scalar, or an ordered
// sequence.
type Value struct {
	kind   Kind
	scalar any
	items  []any
}

// Scalar wraps a single value. A nil argument yields the nil Value.
func Scalar(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{kind: KindScalar, scalar: v}
}

// Sequence wraps items as an ordered sequence. The items are copied.
func Sequence(items ...any) Value {
	out := make([]any, len(items))
	copy(out, items)
	return Value{kind: KindSequence, items: out}
}

// Decorate converts a raw stored value into a Value. Slices and arrays become
// sequences (byte slices stay scalar), everything else is a scalar.
func Decorate(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case []byte:
		return Scalar(v)
	case []any:
		return Sequence(v...)
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return Value{kind: KindSequence, items: items}
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range rv.Len() {
			items[i] = rv.Index(i).Interface()
		}
		return Value{kind: KindSequence, items: items}
	default:
		return Scalar(raw)
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) IsSequence() bool { return v.kind == KindSequence }

// Any returns the scalar, a copy of the sequence items, or nil.
func (v Value) Any() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		return v.Items()
	default:
		return nil
	}
}

// Items returns the sequence items. A scalar is returned as a one-element
// slice and the nil Value as nil.
func (v Value) Items() []any {
	switch v.kind {
	case KindScalar:
		return []any{v.scalar}
	case KindSequence:
		out := make([]any, len(v.items))
		copy(out, v.items)
		return out
	default:
		return nil
	}
}

// Len reports the number of items: 0 for nil, 1 for a scalar.
func (v Value) Len() int {
	switch v.kind {
	case KindScalar:
		return 1
	case KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Strings renders every item with fmt.Sprint.
func (v Value) Strings() []string {
	items := v.Items()
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fmt.Sprint(item)
	}
	return out
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return fmt.Sprint(v.scalar)
	case KindSequence:
		return "[" + strings.Join(v.Strings(), ", ") + "]"
	default:
		return ""
	}
}

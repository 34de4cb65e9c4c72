package msgctx

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Reader is the read side of a context.
type Reader interface {
	Get(key string) Value
}

// Parent is what a MessageContext delegates to on a local miss. Put with a
// nil value is forwarded to it on local removal.
type Parent interface {
	Reader
	Put(key string, value any)
}

// Resolver supplies dynamic values for keys absent from the local map.
// It is consulted before the parent chain.
type Resolver interface {
	Resolve(key string) (any, bool)
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(key string) (any, bool)

// Resolve delegates to the underlying function.
func (fn ResolverFunc) Resolve(key string) (any, bool) {
	return fn(key)
}

// MessageContext is a hierarchical key/value store.
type MessageContext struct {
	local    map[string]any
	parent   Parent
	resolver Resolver
}

// Option configures a MessageContext.
type Option func(*MessageContext)

// WithParent sets the context consulted on local misses. Nil is ignored.
func WithParent(parent Parent) Option {
	return func(c *MessageContext) {
		if parent != nil {
			c.parent = parent
		}
	}
}

// WithResolver sets the dynamic value resolver. Nil is ignored.
func WithResolver(r Resolver) Option {
	return func(c *MessageContext) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithValues seeds the local map. Nil values are skipped.
func WithValues(values map[string]any) Option {
	return func(c *MessageContext) {
		for k, v := range values {
			if v != nil {
				c.local[k] = v
			}
		}
	}
}

// New creates an empty MessageContext.
func New(opts ...Option) *MessageContext {
	c := &MessageContext{local: make(map[string]any)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get resolves key locally, then through the resolver, then through the
// parent chain. The nil Value is returned when nothing matches.
func (c *MessageContext) Get(key string) Value {
	if raw, ok := c.local[key]; ok {
		return Decorate(raw)
	}
	if c.resolver != nil {
		if raw, ok := c.resolver.Resolve(key); ok && raw != nil {
			return Decorate(raw)
		}
	}
	if c.parent != nil {
		return Decorate(c.parent.Get(key))
	}
	return Value{}
}

// Lookup is Get with a presence flag.
func (c *MessageContext) Lookup(key string) (Value, bool) {
	v := c.Get(key)
	return v, !v.IsNil()
}

// Put stores value under key in the local map. A nil value (or the nil
// Value) removes key locally and forwards the removal to the parent.
func (c *MessageContext) Put(key string, value any) {
	if v, ok := value.(Value); ok && v.IsNil() {
		value = nil
	}
	if value == nil {
		delete(c.local, key)
		if c.parent != nil {
			c.parent.Put(key, nil)
		}
		return
	}
	c.local[key] = value
}

// HasLocal reports whether key is stored in the local map.
func (c *MessageContext) HasLocal(key string) bool {
	_, ok := c.local[key]
	return ok
}

// CopyLocal merges the local entries of src into c without overwriting keys
// already present in c.
func (c *MessageContext) CopyLocal(src *MessageContext) {
	if src == nil {
		return
	}
	for k, v := range src.local {
		if _, exists := c.local[k]; !exists {
			c.local[k] = v
		}
	}
}

// Local returns a copy of the local map.
func (c *MessageContext) Local() map[string]any {
	return maps.Clone(c.local)
}

// Keys returns the local keys in sorted order.
func (c *MessageContext) Keys() []string {
	return slices.Sorted(maps.Keys(c.local))
}

func (c *MessageContext) Parent() Parent {
	return c.parent
}

// String renders the local entries followed by the parent chain.
func (c *MessageContext) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range c.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", k, Decorate(c.local[k]).String())
	}
	b.WriteByte('}')
	if c.parent != nil {
		b.WriteString(" -> ")
		if s, ok := c.parent.(fmt.Stringer); ok {
			b.WriteString(s.String())
		} else {
			fmt.Fprintf(&b, "%T", c.parent)
		}
	}
	return b.String()
}

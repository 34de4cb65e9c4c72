package schema

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Factory builds a validator template from the parameters of a schema spec.
// params is empty when the spec carries none.
type Factory func(params map[string]any) (validator.Validator, error)

// Composite spec types handled by the loader itself.
const (
	TypeAllOf        = "allOf"
	TypeAnyOf        = "anyOf"
	TypeIf           = "if"
	TypeChoose       = "choose"
	TypeAnyOfValues  = "anyOfValues"
	TypeNoneOfValues = "noneOfValues"
)

// keyValidator introduces the child of a per-value composite given with a
// message, so it cannot name a validator type either.
const keyValidator = "validator"

var composites = []string{TypeAllOf, TypeAnyOf, TypeIf, TypeChoose, TypeAnyOfValues, TypeNoneOfValues, keyValidator}

// Registry maps validator type names to factories and condition names to
// conditions. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	factories  map[string]Factory
	conditions map[string]validator.Condition
}

// NewRegistry returns a registry holding the built-in leaf validators.
func NewRegistry() *Registry {
	r := &Registry{
		factories:  make(map[string]Factory),
		conditions: make(map[string]validator.Condition),
	}
	for name, f := range builtinLeaves() {
		r.factories[name] = f
	}
	return r
}

// Register adds or replaces a leaf validator type. Composite type names are
// reserved.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("register validator %q: empty name or nil factory", name)
	}
	if slices.Contains(composites, name) {
		return fmt.Errorf("register validator %q: name is reserved", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
	return nil
}

// RegisterCondition adds or replaces a named condition, referenced from
// schemas by its name.
func (r *Registry) RegisterCondition(name string, c validator.Condition) error {
	if name == "" || c == nil {
		return fmt.Errorf("register condition %q: empty name or nil condition", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions[name] = c
	return nil
}

func (r *Registry) factory(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

func (r *Registry) condition(name string) (validator.Condition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conditions[name]
	return c, ok
}

// Types returns the registered leaf types, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// DecodeParams decodes spec parameters into out, a pointer to a struct with
// mapstructure tags. Unknown parameters are rejected; scalars are converted
// leniently ("8" decodes into an int).
func DecodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}

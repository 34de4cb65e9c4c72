package schema

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// builder turns validator and condition spec nodes into templates.
type builder struct {
	registry *Registry
}

// specType splits a spec into its type name and parameter node. A spec is
// either a bare type name or a mapping with exactly one key.
func specType(node *yaml.Node) (string, *yaml.Node, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return "", nil, invalid(node, "empty spec")
		}
		return node.Value, nil, nil
	case yaml.MappingNode:
		if len(node.Content) != 2 || node.Content[0].Kind != yaml.ScalarNode {
			return "", nil, invalid(node, "spec must be a mapping with a single key")
		}
		return node.Content[0].Value, node.Content[1], nil
	default:
		return "", nil, invalid(node, "spec must be a name or a single-key mapping")
	}
}

func (b *builder) validators(nodes []*yaml.Node) ([]validator.Validator, error) {
	out := make([]validator.Validator, 0, len(nodes))
	for _, n := range nodes {
		v, err := b.validator(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (b *builder) validator(node *yaml.Node) (validator.Validator, error) {
	name, params, err := specType(node)
	if err != nil {
		return nil, err
	}

	switch name {
	case TypeAllOf:
		children, err := b.children(name, params)
		if err != nil {
			return nil, err
		}
		return validator.NewAllOf(children...), nil
	case TypeAnyOf:
		return b.anyOf(params)
	case TypeIf:
		return b.ifSpec(params)
	case TypeChoose:
		return b.choose(params)
	case TypeAnyOfValues, TypeNoneOfValues:
		return b.perValue(name, params)
	}

	factory, ok := b.registry.factory(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (line %d)", ErrUnknownValidator, name, node.Line)
	}
	raw, err := paramMap(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	v, err := factory(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchema, fmt.Errorf("%s (line %d): %w", name, node.Line, err))
	}
	return v, nil
}

// children decodes a sequence of nested specs.
func (b *builder) children(name string, node *yaml.Node) ([]validator.Validator, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, invalid(node, name+" expects a list of validators")
	}
	return b.validators(node.Content)
}

// anyOf accepts a list of specs, or a mapping with "validators" and an
// optional "message" id.
func (b *builder) anyOf(node *yaml.Node) (validator.Validator, error) {
	if node != nil && node.Kind == yaml.MappingNode {
		fields, err := mappingFields(node, "validators", "message")
		if err != nil {
			return nil, err
		}
		children, err := b.children(TypeAnyOf, fields["validators"])
		if err != nil {
			return nil, err
		}
		var opts []validator.Option
		if m := fields["message"]; m != nil {
			opts = append(opts, validator.WithMessageID(m.Value))
		}
		return validator.NewAnyOfWith(children, opts...), nil
	}
	children, err := b.children(TypeAnyOf, node)
	if err != nil {
		return nil, err
	}
	return validator.NewAnyOf(children...), nil
}

func (b *builder) ifSpec(node *yaml.Node) (validator.Validator, error) {
	cond, chain, err := b.guarded(TypeIf, node)
	if err != nil {
		return nil, err
	}
	return validator.NewIf(cond, chain...), nil
}

// guarded decodes {when: condition, then: [specs]}.
func (b *builder) guarded(name string, node *yaml.Node) (validator.Condition, []validator.Validator, error) {
	fields, err := mappingFields(node, "when", "then")
	if err != nil {
		return nil, nil, err
	}
	if fields["when"] == nil {
		return nil, nil, invalid(node, name+" requires when")
	}
	cond, err := b.condition(fields["when"])
	if err != nil {
		return nil, nil, err
	}
	chain, err := b.children(name, fields["then"])
	if err != nil {
		return nil, nil, err
	}
	return cond, chain, nil
}

// choose decodes a list of {when, then} branches optionally closed by
// {otherwise: [specs]}.
func (b *builder) choose(node *yaml.Node) (validator.Validator, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, invalid(node, "choose expects a list of branches")
	}
	branches := make([]validator.Branch, 0, len(node.Content))
	for _, n := range node.Content {
		if n.Kind == yaml.MappingNode && len(n.Content) == 2 && n.Content[0].Value == "otherwise" {
			chain, err := b.children("otherwise", n.Content[1])
			if err != nil {
				return nil, err
			}
			branches = append(branches, validator.NewOtherwise(chain...))
			continue
		}
		cond, chain, err := b.guarded("when", n)
		if err != nil {
			return nil, err
		}
		branches = append(branches, validator.NewWhen(cond, chain...))
	}
	c, err := validator.NewChoose(branches...)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchema, fmt.Errorf("line %d: %w", node.Line, err))
	}
	return c, nil
}

// perValue decodes the child spec of anyOfValues and noneOfValues: either
// the spec itself or a mapping with "validator" and an optional "message"
// id.
func (b *builder) perValue(name string, node *yaml.Node) (validator.Validator, error) {
	if node == nil {
		return nil, invalid(node, name+" requires a validator")
	}
	var opts []validator.Option
	if isWrapper(node) {
		fields, err := mappingFields(node, keyValidator, "message")
		if err != nil {
			return nil, err
		}
		if m := fields["message"]; m != nil {
			opts = append(opts, validator.WithMessageID(m.Value))
		}
		node = fields[keyValidator]
	}
	child, err := b.validator(node)
	if err != nil {
		return nil, err
	}
	if name == TypeNoneOfValues {
		return validator.NewNoneOfValues(child, opts...), nil
	}
	return validator.NewAnyOfValues(child, opts...), nil
}

// isWrapper reports whether node is a mapping carrying the "validator" key.
func isWrapper(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == keyValidator {
			return true
		}
	}
	return false
}

// condition decodes a registered condition name or a built-in condition
// spec.
func (b *builder) condition(node *yaml.Node) (validator.Condition, error) {
	if node.Kind == yaml.ScalarNode {
		c, ok := b.registry.condition(node.Value)
		if !ok {
			return nil, fmt.Errorf("%w: %q (line %d)", ErrUnknownCondition, node.Value, node.Line)
		}
		return c, nil
	}

	name, params, err := specType(node)
	if err != nil {
		return nil, err
	}
	switch name {
	case "fieldEquals":
		var p struct {
			Field string `mapstructure:"field"`
			Value string `mapstructure:"value"`
		}
		if err := decodeNode(params, &p); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return validator.FieldEquals(p.Field, p.Value), nil
	case "fieldPresent":
		if params == nil || params.Kind != yaml.ScalarNode {
			return nil, invalid(node, "fieldPresent expects a field name")
		}
		return validator.FieldPresent(params.Value), nil
	case "valueEquals":
		if params == nil || params.Kind != yaml.ScalarNode {
			return nil, invalid(node, "valueEquals expects a value")
		}
		return validator.ValueEquals(params.Value), nil
	case "keyEquals":
		var p struct {
			Key   string `mapstructure:"key"`
			Value string `mapstructure:"value"`
		}
		if err := decodeNode(params, &p); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return validator.KeyEquals(p.Key, p.Value), nil
	case "not":
		if params == nil {
			return nil, invalid(node, "not expects a condition")
		}
		inner, err := b.condition(params)
		if err != nil {
			return nil, err
		}
		return validator.Not(inner), nil
	default:
		return nil, fmt.Errorf("%w: %q (line %d)", ErrUnknownCondition, name, node.Line)
	}
}

// paramMap decodes a parameter node into a map. An absent or null node
// yields an empty map.
func paramMap(node *yaml.Node) (map[string]any, error) {
	if node == nil || node.Tag == "!!null" {
		return map[string]any{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, invalid(node, "parameters must be a mapping")
	}
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return nil, errors.Join(ErrInvalidSchema, err)
	}
	return raw, nil
}

func decodeNode(node *yaml.Node, out any) error {
	raw, err := paramMap(node)
	if err != nil {
		return err
	}
	if err := DecodeParams(raw, out); err != nil {
		return errors.Join(ErrInvalidSchema, err)
	}
	return nil
}

// mappingFields returns the values of a mapping node keyed by name. Keys
// outside allowed are rejected.
func mappingFields(node *yaml.Node, allowed ...string) (map[string]*yaml.Node, error) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, invalid(node, "expected a mapping")
	}
	out := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !slices.Contains(allowed, key) {
			return nil, invalid(node.Content[i], fmt.Sprintf("unexpected key %q", key))
		}
		out[key] = node.Content[i+1]
	}
	return out, nil
}

func invalid(node *yaml.Node, msg string) error {
	if node == nil {
		return fmt.Errorf("%w: %s", ErrInvalidSchema, msg)
	}
	return fmt.Errorf("%w: line %d: %s", ErrInvalidSchema, node.Line, msg)
}

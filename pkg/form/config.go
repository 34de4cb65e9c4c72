package form

import (
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// DefaultInstance is the instance key of a non-repeatable group that lists no
// instances.
const DefaultInstance = "0"

// FieldConfig is a field definition with its bound validator chain.
type FieldConfig struct {
	validator.FieldConfig
	Validators []validator.Validator
}

// NewFieldConfig binds templates to the field described by info. Each
// template is cloned and the clone initialised, so templates can be shared
// between fields. Any failure aborts with a *validator.InitError.
func NewFieldConfig(info validator.FieldConfig, templates ...validator.Validator) (FieldConfig, error) {
	chain := make([]validator.Validator, 0, len(templates))
	for i, tmpl := range templates {
		if tmpl == nil {
			return FieldConfig{}, &validator.InitError{
				ValidatorID: fmt.Sprintf("#%d", i),
				Field:       info.Name,
				Err:         validator.ErrNilValidator,
			}
		}
		v := tmpl.Clone()
		if err := v.Init(info); err != nil {
			return FieldConfig{}, &validator.InitError{ValidatorID: tmpl.ID(), Field: info.Name, Err: err}
		}
		chain = append(chain, v)
	}
	return FieldConfig{FieldConfig: info, Validators: chain}, nil
}

// MustFieldConfig is NewFieldConfig that panics on error.
func MustFieldConfig(info validator.FieldConfig, templates ...validator.Validator) FieldConfig {
	fc, err := NewFieldConfig(info, templates...)
	if err != nil {
		panic(err)
	}
	return fc
}

// GroupConfig describes a group of fields. A repeatable group may have any
// number of instances; the others have exactly one.
type GroupConfig struct {
	Name        string
	Abbrev      string
	DisplayName string
	Repeatable  bool
	// Instances are created with the form. Non-repeatable groups default to
	// DefaultInstance.
	Instances []string
	Fields    []FieldConfig
}

// Label returns the display name, falling back to the name.
func (g GroupConfig) Label() string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	return g.Name
}

func (g GroupConfig) initialInstances() []string {
	if len(g.Instances) == 0 && !g.Repeatable {
		return []string{DefaultInstance}
	}
	return g.Instances
}

// FormConfig is the schema of a form.
type FormConfig struct {
	Name   string
	Keys   KeyFormat
	Groups []GroupConfig
	// CustomErrors maps message ids usable with Form.SetCustomError to their
	// fallback text.
	CustomErrors map[string]string
}

// Group returns the group configuration named name.
func (c *FormConfig) Group(name string) (*GroupConfig, bool) {
	for i := range c.Groups {
		if c.Groups[i].Name == name {
			return &c.Groups[i], true
		}
	}
	return nil, false
}

// Check verifies the key format and that group and field names and
// abbreviations are unique and usable in keys.
func (c *FormConfig) Check() error {
	if c.Name == "" {
		return fmt.Errorf("form name is empty")
	}
	keys := c.Keys.WithDefaults()
	if err := keys.Check(); err != nil {
		return err
	}

	groupNames := make(map[string]struct{}, len(c.Groups))
	groupAbbrevs := make(map[string]string, len(c.Groups))
	for _, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("%w: group with empty name", ErrInvalidAbbrev)
		}
		if _, dup := groupNames[g.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name)
		}
		groupNames[g.Name] = struct{}{}

		if !keys.ValidPart(g.Abbrev) {
			return fmt.Errorf("%w: group %q abbreviation %q", ErrInvalidAbbrev, g.Name, g.Abbrev)
		}
		if other, dup := groupAbbrevs[g.Abbrev]; dup {
			return fmt.Errorf("%w: groups %q and %q share abbreviation %q", ErrInvalidAbbrev, other, g.Name, g.Abbrev)
		}
		groupAbbrevs[g.Abbrev] = g.Name

		if !g.Repeatable && len(g.Instances) > 1 {
			return fmt.Errorf("%w: group %q is not repeatable", ErrDuplicateInstance, g.Name)
		}
		instances := make(map[string]struct{}, len(g.Instances))
		for _, inst := range g.Instances {
			if !keys.ValidPart(inst) {
				return fmt.Errorf("%w: group %q instance %q", ErrMalformedKey, g.Name, inst)
			}
			if _, dup := instances[inst]; dup {
				return fmt.Errorf("%w: group %q instance %q", ErrDuplicateInstance, g.Name, inst)
			}
			instances[inst] = struct{}{}
		}

		if err := checkFields(keys, g); err != nil {
			return err
		}
	}
	return nil
}

func checkFields(keys KeyFormat, g GroupConfig) error {
	names := make(map[string]struct{}, len(g.Fields))
	abbrevs := make(map[string]struct{}, len(g.Fields))
	for _, f := range g.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: group %q has a field with empty name", ErrInvalidAbbrev, g.Name)
		}
		if _, dup := names[f.Name]; dup {
			return fmt.Errorf("%w: %q in group %q", ErrDuplicateField, f.Name, g.Name)
		}
		names[f.Name] = struct{}{}

		if !keys.ValidPart(f.Abbrev) {
			return fmt.Errorf("%w: field %q abbreviation %q in group %q", ErrInvalidAbbrev, f.Name, f.Abbrev, g.Name)
		}
		if _, dup := abbrevs[f.Abbrev]; dup {
			return fmt.Errorf("%w: abbreviation %q in group %q", ErrDuplicateField, f.Abbrev, g.Name)
		}
		abbrevs[f.Abbrev] = struct{}{}
	}
	return nil
}

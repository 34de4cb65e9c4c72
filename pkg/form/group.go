package form

import (
	"log/slog"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/msgctx"
	"github.com/dmitrymomot/formkit/pkg/statemachine"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Message context keys resolved by groups and forms.
const (
	KeyGroupName        = "groupName"
	KeyGroupDisplayName = "groupDisplayName"
	KeyInstanceKey      = "instanceKey"
	KeyFormName         = "formName"
)

// Group is one instance of a configured group.
type Group struct {
	cfg      *GroupConfig
	form     *Form
	instance string

	fields []*Field
	byName map[string]*Field

	messages  *msgctx.MessageContext
	lifecycle *statemachine.Machine
}

func newGroup(cfg *GroupConfig, form *Form, instance string) *Group {
	g := &Group{
		cfg:      cfg,
		form:     form,
		instance: instance,
		fields:   make([]*Field, 0, len(cfg.Fields)),
		byName:   make(map[string]*Field, len(cfg.Fields)),
	}
	g.messages = msgctx.New(
		msgctx.WithParent(form.messages),
		msgctx.WithResolver(msgctx.ResolverFunc(g.resolve)),
	)
	g.lifecycle = newLifecycle(func(from, to statemachine.State, event statemachine.Event) {
		form.logger.Debug("group state changed",
			logger.Form(form.Name()),
			logger.FormGroup(cfg.Name),
			logger.Instance(instance),
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	for i := range cfg.Fields {
		fc := &cfg.Fields[i]
		f := newField(fc, g, form.keys.Build(cfg.Abbrev, instance, fc.Abbrev))
		g.fields = append(g.fields, f)
		g.byName[fc.Name] = f
	}
	return g
}

func (g *Group) Name() string { return g.cfg.Name }

func (g *Group) DisplayName() string { return g.cfg.Label() }

// InstanceKey returns the key distinguishing this instance within the form.
func (g *Group) InstanceKey() string { return g.instance }

func (g *Group) Config() *GroupConfig { return g.cfg }

// Fields returns the fields in configuration order.
func (g *Group) Fields() []*Field { return slices.Clone(g.fields) }

// Field returns the field named name.
func (g *Group) Field(name string) (*Field, bool) {
	f, ok := g.byName[name]
	return f, ok
}

// Lookup implements validator.FieldLookup for sibling access.
func (g *Group) Lookup(name string) (validator.Field, bool) {
	f, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return f, true
}

func (g *Group) fieldByAbbrev(abbrev string) (*Field, bool) {
	for _, f := range g.fields {
		if f.cfg.Abbrev == abbrev {
			return f, true
		}
	}
	return nil, false
}

// Messages returns the group MessageContext. Its parent is the form context.
func (g *Group) Messages() *msgctx.MessageContext { return g.messages }

// Init resets the group. With a non-nil request every field is bound and the
// group validated.
func (g *Group) Init(req Request) bool {
	if req == nil {
		g.Reset()
		return true
	}
	for _, f := range g.fields {
		f.bind(req)
	}
	return g.Validate()
}

// Validate runs every field's chain exactly once, without stopping at the
// first failure, and reports the group validity.
func (g *Group) Validate() bool {
	for _, f := range g.fields {
		if !f.Validate() {
			m, _ := f.Message()
			g.form.logger.Debug("field rejected",
				logger.Form(g.form.Name()),
				logger.FieldKey(f.Key()),
				logger.ValidatorID(m.ID),
			)
		}
	}
	fire(g.lifecycle, EventValidate)
	return g.IsValid()
}

// Reset makes every field valid and drops their messages without running
// validators.
func (g *Group) Reset() {
	for _, f := range g.fields {
		f.Reset()
	}
	fire(g.lifecycle, EventReset)
}

// IsValid is the AND over the current field validities.
func (g *Group) IsValid() bool {
	for _, f := range g.fields {
		if !f.IsValid() {
			return false
		}
	}
	return true
}

// IsValidated reports whether the group has been validated since the last
// reset.
func (g *Group) IsValidated() bool {
	return g.lifecycle.Is(StateValidated)
}

// Errors returns the failed fields in configuration order.
func (g *Group) Errors() []FieldError {
	var errs []FieldError
	for _, f := range g.fields {
		if f.IsValid() {
			continue
		}
		m, _ := f.Message()
		errs = append(errs, FieldError{
			Key:      f.Key(),
			Group:    g.cfg.Name,
			Instance: g.instance,
			Field:    f.Name(),
			Message:  m,
		})
	}
	return errs
}

func (g *Group) resolve(key string) (any, bool) {
	switch key {
	case KeyGroupName:
		return g.cfg.Name, true
	case KeyGroupDisplayName:
		return g.cfg.Label(), true
	case KeyInstanceKey:
		return g.instance, true
	}
	return nil, false
}

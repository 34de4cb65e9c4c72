package form

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/msgctx"
	"github.com/dmitrymomot/formkit/pkg/statemachine"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// MessageProvider tells whether a message id can be rendered.
// *i18n.Translator implements it.
type MessageProvider interface {
	HasMessage(id string) bool
}

// Renderer renders a selected message. *i18n.Translator implements it.
type Renderer interface {
	Render(lang string, msg i18n.Renderable, params i18n.ParamLookup) (string, error)
}

// FieldError is a failed field.
type FieldError struct {
	Key      string
	Group    string
	Instance string
	Field    string
	Message  validator.Message
}

// RenderedError is a FieldError with its message rendered.
type RenderedError struct {
	FieldError
	Text string
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used for debug tracing. Output is discarded by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithParentContext makes p the parent of the form MessageContext, so
// message templates can reference application-wide values.
func WithParentContext(p msgctx.Parent) Option {
	return func(f *Form) {
		f.parent = p
	}
}

// WithMessageProvider lets SetCustomError accept ids known to p.
func WithMessageProvider(p MessageProvider) Option {
	return func(f *Form) {
		f.provider = p
	}
}

type instanceID struct {
	group    string
	instance string
}

// Form is one submission of a configured form. It is not safe for concurrent
// use.
type Form struct {
	cfg  *FormConfig
	keys KeyFormat

	groups []*Group
	index  map[instanceID]*Group

	parent    msgctx.Parent
	messages  *msgctx.MessageContext
	provider  MessageProvider
	logger    *slog.Logger
	lifecycle *statemachine.Machine
}

// New checks cfg and creates a form with the configured initial group
// instances.
func New(cfg *FormConfig, opts ...Option) (*Form, error) {
	if cfg == nil {
		return nil, fmt.Errorf("form config is nil")
	}
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("form %q: %w", cfg.Name, err)
	}

	f := &Form{
		cfg:    cfg,
		keys:   cfg.Keys.WithDefaults(),
		index:  make(map[instanceID]*Group),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}

	msgOpts := []msgctx.Option{msgctx.WithResolver(msgctx.ResolverFunc(f.resolve))}
	if f.parent != nil {
		msgOpts = append(msgOpts, msgctx.WithParent(f.parent))
	}
	f.messages = msgctx.New(msgOpts...)
	f.lifecycle = newLifecycle(func(from, to statemachine.State, _ statemachine.Event) {
		f.logger.Debug("form state changed",
			logger.Form(cfg.Name),
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	for i := range cfg.Groups {
		gc := &cfg.Groups[i]
		for _, inst := range gc.initialInstances() {
			if _, err := f.AddGroup(gc.Name, inst); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// MustNew is New that panics on error.
func MustNew(cfg *FormConfig, opts ...Option) *Form {
	f, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Form) Name() string { return f.cfg.Name }

func (f *Form) Config() *FormConfig { return f.cfg }

// Keys returns the effective key format.
func (f *Form) Keys() KeyFormat { return f.keys }

// Messages returns the form MessageContext.
func (f *Form) Messages() *msgctx.MessageContext { return f.messages }

// AddGroup creates an instance of the named group.
func (f *Form) AddGroup(name, instance string) (*Group, error) {
	gc, ok := f.cfg.Group(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	if !f.keys.ValidPart(instance) {
		return nil, fmt.Errorf("%w: instance key %q of group %q", ErrMalformedKey, instance, name)
	}
	id := instanceID{group: name, instance: instance}
	if _, dup := f.index[id]; dup {
		return nil, fmt.Errorf("%w: %q/%q", ErrDuplicateInstance, name, instance)
	}
	if !gc.Repeatable && len(f.GroupsNamed(name)) > 0 {
		return nil, fmt.Errorf("%w: group %q is not repeatable", ErrDuplicateInstance, name)
	}

	g := newGroup(gc, f, instance)
	f.groups = append(f.groups, g)
	f.index[id] = g
	return g, nil
}

// NewGroup adds an instance of a repeatable group under a generated key.
func (f *Form) NewGroup(name string) (*Group, error) {
	return f.AddGroup(name, uuid.NewString())
}

// RemoveGroup drops an instance and reports whether it existed.
func (f *Form) RemoveGroup(name, instance string) bool {
	id := instanceID{group: name, instance: instance}
	g, ok := f.index[id]
	if !ok {
		return false
	}
	delete(f.index, id)
	f.groups = slices.DeleteFunc(f.groups, func(x *Group) bool { return x == g })
	return true
}

// Group returns an instance by group name and instance key.
func (f *Form) Group(name, instance string) (*Group, bool) {
	g, ok := f.index[instanceID{group: name, instance: instance}]
	return g, ok
}

// Groups returns every instance in creation order.
func (f *Form) Groups() []*Group { return slices.Clone(f.groups) }

// GroupsNamed returns the instances of one group in creation order.
func (f *Form) GroupsNamed(name string) []*Group {
	var out []*Group
	for _, g := range f.groups {
		if g.cfg.Name == name {
			out = append(out, g)
		}
	}
	return out
}

// Field resolves a field key, with or without a marker suffix.
func (f *Form) Field(key string) (*Field, error) {
	k, _, err := f.keys.Parse(key)
	if err != nil {
		return nil, err
	}
	g, ok := f.groupByAbbrev(k.Group, k.Instance)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, key)
	}
	field, ok := g.fieldByAbbrev(k.Field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, key)
	}
	return field, nil
}

func (f *Form) groupByAbbrev(abbrev, instance string) (*Group, bool) {
	for _, g := range f.groups {
		if g.cfg.Abbrev == abbrev && g.instance == instance {
			return g, true
		}
	}
	return nil, false
}

// Init resets the form. With a non-nil request, instances of repeatable
// groups found in the request keys are added in order of first appearance,
// every field is bound and the form validated.
func (f *Form) Init(req Request) bool {
	if req == nil {
		f.Reset()
		return true
	}

	f.discover(req)
	for _, g := range f.groups {
		for _, field := range g.fields {
			field.bind(req)
		}
	}
	return f.Validate()
}

func (f *Form) discover(req Request) {
	for _, raw := range req.Keys() {
		k, _, err := f.keys.Parse(raw)
		if err != nil {
			continue
		}
		if _, ok := f.groupByAbbrev(k.Group, k.Instance); ok {
			continue
		}
		for i := range f.cfg.Groups {
			gc := &f.cfg.Groups[i]
			if gc.Abbrev != k.Group || !gc.Repeatable {
				continue
			}
			if _, err := f.AddGroup(gc.Name, k.Instance); err == nil {
				f.logger.Debug("group instance discovered",
					logger.Form(f.cfg.Name),
					logger.FormGroup(gc.Name),
					logger.Instance(k.Instance),
				)
			}
		}
	}
}

// Validate validates every group instance and reports the form validity.
func (f *Form) Validate() bool {
	for _, g := range f.groups {
		g.Validate()
	}
	fire(f.lifecycle, EventValidate)

	valid := f.IsValid()
	f.logger.Debug("form validated",
		logger.Form(f.cfg.Name),
		logger.Valid(valid),
		logger.Count("groups", len(f.groups)),
		logger.Count("errors", len(f.Errors())),
	)
	return valid
}

// Reset resets every group without running validators.
func (f *Form) Reset() {
	for _, g := range f.groups {
		g.Reset()
	}
	fire(f.lifecycle, EventReset)
}

// IsValid is the AND over the current group validities.
func (f *Form) IsValid() bool {
	for _, g := range f.groups {
		if !g.IsValid() {
			return false
		}
	}
	return true
}

// IsValidated reports whether the form has been validated since the last
// reset.
func (f *Form) IsValidated() bool {
	return f.lifecycle.Is(StateValidated)
}

// SetCustomError marks the field at key invalid with a configured message.
// The id must be listed in the form's CustomErrors or be known to the message
// provider; otherwise a *CustomErrorNotFoundError is returned.
func (f *Form) SetCustomError(key, messageID string, params map[string]any) error {
	field, err := f.Field(key)
	if err != nil {
		return err
	}

	text, ok := f.cfg.CustomErrors[messageID]
	if !ok && (f.provider == nil || !f.provider.HasMessage(messageID)) {
		return &CustomErrorNotFoundError{ID: messageID}
	}
	field.SetMessage(validator.Message{ID: messageID, Text: text, Params: params})
	return nil
}

// Errors returns the failed fields of every instance in order.
func (f *Form) Errors() []FieldError {
	var errs []FieldError
	for _, g := range f.groups {
		errs = append(errs, g.Errors()...)
	}
	return errs
}

// RenderErrors renders the message of every failed field in lang. Template
// parameters not carried by a message are resolved from the field's
// MessageContext. The first rendering error is returned.
func (f *Form) RenderErrors(lang string, r Renderer) ([]RenderedError, error) {
	errs := f.Errors()
	out := make([]RenderedError, 0, len(errs))
	for _, fe := range errs {
		field, err := f.Field(fe.Key)
		if err != nil {
			return nil, err
		}
		text, err := r.Render(lang, fe.Message, field.MessageContext())
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", fe.Key, err)
		}
		out = append(out, RenderedError{FieldError: fe, Text: text})
	}
	return out, nil
}

func (f *Form) resolve(key string) (any, bool) {
	if key == KeyFormName {
		return f.cfg.Name, true
	}
	return nil, false
}

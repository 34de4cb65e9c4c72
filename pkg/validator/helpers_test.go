package validator_test

import (
	"github.com/dmitrymomot/formkit/pkg/validator"
)

type stubField struct {
	key        string
	name       string
	display    string
	values     []string
	attachment any
}

func (f *stubField) Key() string         { return f.key }
func (f *stubField) Name() string        { return f.name }
func (f *stubField) DisplayName() string { return f.display }
func (f *stubField) Values() []string    { return f.values }
func (f *stubField) Attachment() any     { return f.attachment }

type stubFields map[string]*stubField

func (s stubFields) Lookup(name string) (validator.Field, bool) {
	f, ok := s[name]
	if !ok {
		return nil, false
	}
	return f, true
}

func field(values ...string) *stubField {
	return &stubField{key: "f.g.0.x", name: "x", display: "X", values: values}
}

func contextFor(values ...string) *validator.Context {
	return validator.NewContext(field(values...), nil, nil)
}

// recorder is a leaf validator that logs every invocation into a shared
// journal and passes for the configured values only.
type recorder struct {
	id      string
	accept  map[string]bool
	journal *[]string
	inits   int
}

func newRecorder(journal *[]string, id string, accept ...string) *recorder {
	r := &recorder{id: id, accept: map[string]bool{}, journal: journal}
	for _, a := range accept {
		r.accept[a] = true
	}
	return r
}

func (r *recorder) Init(validator.FieldConfig) error {
	r.inits++
	return nil
}

func (r *recorder) ID() string { return r.id }

func (r *recorder) Validate(ctx *validator.Context) bool {
	*r.journal = append(*r.journal, r.id+":"+ctx.Value())
	if r.accept[ctx.Value()] || r.accept["*"] {
		return true
	}
	ctx.SetMessage(validator.Message{ID: r.id, Text: r.id + " rejected " + ctx.Value()})
	return false
}

func (r *recorder) Clone() validator.Validator {
	c := *r
	return &c
}

func always(ok bool) validator.Condition {
	return validator.ConditionFunc(func(*validator.Context) bool { return ok })
}

func allMessages(ctx *validator.Context) []validator.Message {
	var out []validator.Message
	for _, item := range ctx.Messages().Get(validator.KeyAllMessages).Items() {
		out = append(out, item.(validator.Message))
	}
	return out
}

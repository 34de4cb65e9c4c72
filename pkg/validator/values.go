package validator

// AnyOfValues applies its child to each raw value of the field in index order
// and passes at the first value the child accepts. Messages of rejected
// values are collected under KeyAllMessages.
type AnyOfValues struct {
	base
	child Validator
}

func NewAnyOfValues(child Validator, opts ...Option) *AnyOfValues {
	return &AnyOfValues{base: newBase("anyOfValues", opts), child: child}
}

func (v *AnyOfValues) Init(cfg FieldConfig) error {
	return initAll(cfg, []Validator{v.child})
}

func (v *AnyOfValues) Validate(ctx *Context) bool {
	collected := newCollector(ctx)
	for i := range ctx.Values() {
		vctx := ctx.ForValue(i)
		if v.child.Validate(vctx) {
			return true
		}
		collected.add(vctx)
	}
	return v.fail(ctx, "none of the values is acceptable", map[string]any{
		KeyAllMessages: collected.messages(),
	})
}

func (v *AnyOfValues) Clone() Validator {
	c := *v
	if v.child != nil {
		c.child = v.child.Clone()
	}
	return &c
}

// NoneOfValues fails at the first raw value its child accepts. The failure
// message carries the offending value and its index.
type NoneOfValues struct {
	base
	child Validator
}

func NewNoneOfValues(child Validator, opts ...Option) *NoneOfValues {
	return &NoneOfValues{base: newBase("noneOfValues", opts), child: child}
}

func (v *NoneOfValues) Init(cfg FieldConfig) error {
	return initAll(cfg, []Validator{v.child})
}

func (v *NoneOfValues) Validate(ctx *Context) bool {
	for i := range ctx.Values() {
		vctx := ctx.ForValue(i)
		if v.child.Validate(vctx) {
			return v.fail(ctx, "value is not allowed", map[string]any{
				KeyValue:      vctx.Value(),
				KeyValueIndex: i,
			})
		}
	}
	return true
}

func (v *NoneOfValues) Clone() Validator {
	c := *v
	if v.child != nil {
		c.child = v.child.Clone()
	}
	return &c
}

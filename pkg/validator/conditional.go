package validator

import "fmt"

// If runs its nested chain only when the condition is satisfied. An
// unsatisfied condition makes the field valid without evaluating the chain.
type If struct {
	base
	cond  Condition
	chain []Validator
}

func NewIf(cond Condition, chain ...Validator) *If {
	return &If{base: newBase("if", nil), cond: cond, chain: chain}
}

func (v *If) Init(cfg FieldConfig) error {
	if v.cond == nil {
		return ErrNilCondition
	}
	return initAll(cfg, v.chain)
}

func (v *If) Validate(ctx *Context) bool {
	return !v.cond.IsSatisfied(ctx) || Run(ctx, v.chain)
}

func (v *If) Clone() Validator {
	c := *v
	c.chain = cloneAll(v.chain)
	return &c
}

// Branch is an element of a Choose: a *When or an *Otherwise.
type Branch interface {
	initBranch(cfg FieldConfig) error
	cloneBranch() Branch
}

// When is a guarded Choose branch.
type When struct {
	cond  Condition
	chain []Validator
}

func NewWhen(cond Condition, chain ...Validator) *When {
	return &When{cond: cond, chain: chain}
}

func (w *When) initBranch(cfg FieldConfig) error {
	if w.cond == nil {
		return ErrNilCondition
	}
	return initAll(cfg, w.chain)
}

func (w *When) cloneBranch() Branch {
	return &When{cond: w.cond, chain: cloneAll(w.chain)}
}

// Otherwise is the unconditional last branch of a Choose.
type Otherwise struct {
	chain []Validator
}

func NewOtherwise(chain ...Validator) *Otherwise {
	return &Otherwise{chain: chain}
}

func (o *Otherwise) initBranch(cfg FieldConfig) error {
	return initAll(cfg, o.chain)
}

func (o *Otherwise) cloneBranch() Branch {
	return &Otherwise{chain: cloneAll(o.chain)}
}

// Choose runs the chain of the first When whose condition holds, or the
// Otherwise when it is reached. A Choose that enters no branch passes.
type Choose struct {
	base
	branches []Branch
}

// NewChoose checks the branch layout: at least one branch, every branch but
// the last a *When, the last a *When or *Otherwise.
func NewChoose(branches ...Branch) (*Choose, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("%w: no branches", ErrMalformedChoose)
	}
	last := len(branches) - 1
	for i, b := range branches {
		switch b.(type) {
		case *When:
		case *Otherwise:
			if i != last {
				return nil, fmt.Errorf("%w: otherwise at position %d is not last", ErrMalformedChoose, i)
			}
		default:
			return nil, fmt.Errorf("%w: unsupported branch %T at position %d", ErrMalformedChoose, b, i)
		}
	}
	return &Choose{base: newBase("choose", nil), branches: branches}, nil
}

// MustChoose is NewChoose that panics on a malformed layout.
func MustChoose(branches ...Branch) *Choose {
	c, err := NewChoose(branches...)
	if err != nil {
		panic(err)
	}
	return c
}

func (v *Choose) Init(cfg FieldConfig) error {
	for _, b := range v.branches {
		if err := b.initBranch(cfg); err != nil {
			return err
		}
	}
	return nil
}

func (v *Choose) Validate(ctx *Context) bool {
	for _, b := range v.branches {
		switch br := b.(type) {
		case *When:
			if br.cond.IsSatisfied(ctx) {
				return Run(ctx, br.chain)
			}
		case *Otherwise:
			return Run(ctx, br.chain)
		}
	}
	return true
}

func (v *Choose) Clone() Validator {
	c := *v
	c.branches = make([]Branch, len(v.branches))
	for i, b := range v.branches {
		c.branches[i] = b.cloneBranch()
	}
	return &c
}

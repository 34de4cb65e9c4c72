package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestAllOf(t *testing.T) {
	t.Parallel()

	t.Run("stops at first failing child and copies its message", func(t *testing.T) {
		t.Parallel()
		var journal []string
		c1 := newRecorder(&journal, "c1", "*")
		c2 := newRecorder(&journal, "c2")
		c3 := newRecorder(&journal, "c3")

		ctx := contextFor("v")
		ok := validator.NewAllOf(c1, c2, c3).Validate(ctx)

		assert.False(t, ok)
		assert.Equal(t, []string{"c1:v", "c2:v"}, journal)
		msg, has := ctx.Message()
		require.True(t, has)
		assert.Equal(t, validator.Message{ID: "c2", Text: "c2 rejected v"}, msg)
	})

	t.Run("passes when every child passes", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("v")
		ok := validator.NewAllOf(newRecorder(&journal, "a", "*"), newRecorder(&journal, "b", "*")).Validate(ctx)

		assert.True(t, ok)
		assert.Equal(t, []string{"a:v", "b:v"}, journal)
		_, has := ctx.Message()
		assert.False(t, has)
	})

	t.Run("empty passes", func(t *testing.T) {
		t.Parallel()
		assert.True(t, validator.NewAllOf().Validate(contextFor("v")))
	})
}

func TestAnyOf(t *testing.T) {
	t.Parallel()

	t.Run("collects every message in order when all fail", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("v")
		ok := validator.NewAnyOf(newRecorder(&journal, "c1"), newRecorder(&journal, "c2")).Validate(ctx)

		assert.False(t, ok)
		collected := allMessages(ctx)
		require.Len(t, collected, 2)
		assert.Equal(t, "c1", collected[0].ID)
		assert.Equal(t, "c2", collected[1].ID)

		msg, has := ctx.Message()
		require.True(t, has)
		assert.Equal(t, "anyOf", msg.ID)
		assert.Equal(t, collected, msg.Params[validator.KeyAllMessages])
	})

	t.Run("short-circuits on first passing child", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("v")
		ok := validator.NewAnyOf(newRecorder(&journal, "c1", "*"), newRecorder(&journal, "c2")).Validate(ctx)

		assert.True(t, ok)
		assert.Equal(t, []string{"c1:v"}, journal)
		assert.Empty(t, allMessages(ctx))
	})

	t.Run("publishes an empty list before evaluating", func(t *testing.T) {
		t.Parallel()
		seen := -1
		probe := validator.NewFunc("probe", func(ctx *validator.Context) bool {
			seen = ctx.Messages().Get(validator.KeyAllMessages).Len()
			return true
		}, "")
		ctx := contextFor("v")
		require.True(t, validator.NewAnyOf(probe).Validate(ctx))
		assert.Equal(t, 0, seen)
		assert.True(t, ctx.Messages().Get(validator.KeyAllMessages).IsSequence())
	})

	t.Run("message id can be overridden", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("v")
		v := validator.NewAnyOfWith([]validator.Validator{newRecorder(&journal, "c1")}, validator.WithMessageID("contact.any"))
		require.False(t, v.Validate(ctx))
		msg, _ := ctx.Message()
		assert.Equal(t, "contact.any", msg.ID)
		assert.Equal(t, "anyOf", v.ID())
	})
}

func TestIf(t *testing.T) {
	t.Parallel()

	t.Run("unsatisfied condition skips nested chain", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("v")
		ok := validator.NewIf(always(false), newRecorder(&journal, "nested")).Validate(ctx)

		assert.True(t, ok)
		assert.Empty(t, journal)
		_, has := ctx.Message()
		assert.False(t, has)
	})

	t.Run("satisfied condition delegates to nested chain", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("v")
		ok := validator.NewIf(always(true), newRecorder(&journal, "n1", "*"), newRecorder(&journal, "n2")).Validate(ctx)

		assert.False(t, ok)
		assert.Equal(t, []string{"n1:v", "n2:v"}, journal)
		msg, _ := ctx.Message()
		assert.Equal(t, "n2", msg.ID)
	})

	t.Run("nil condition fails init", func(t *testing.T) {
		t.Parallel()
		err := validator.NewIf(nil).Init(validator.FieldConfig{Name: "x"})
		assert.ErrorIs(t, err, validator.ErrNilCondition)
	})
}

func TestChoose(t *testing.T) {
	t.Parallel()

	t.Run("runs only the first satisfied when", func(t *testing.T) {
		t.Parallel()
		var journal []string
		choose, err := validator.NewChoose(
			validator.NewWhen(always(false), newRecorder(&journal, "v1")),
			validator.NewWhen(always(true), newRecorder(&journal, "v2", "*")),
			validator.NewOtherwise(newRecorder(&journal, "v3")),
		)
		require.NoError(t, err)

		assert.True(t, choose.Validate(contextFor("v")))
		assert.Equal(t, []string{"v2:v"}, journal)
	})

	t.Run("no matching branch passes without evaluating anything", func(t *testing.T) {
		t.Parallel()
		var journal []string
		choose := validator.MustChoose(
			validator.NewWhen(always(false), newRecorder(&journal, "v1")),
			validator.NewWhen(always(false), newRecorder(&journal, "v2")),
		)

		assert.True(t, choose.Validate(contextFor("v")))
		assert.Empty(t, journal)
	})

	t.Run("otherwise runs when reached", func(t *testing.T) {
		t.Parallel()
		var journal []string
		choose := validator.MustChoose(
			validator.NewWhen(always(false), newRecorder(&journal, "v1")),
			validator.NewOtherwise(newRecorder(&journal, "v3")),
		)
		ctx := contextFor("v")

		assert.False(t, choose.Validate(ctx))
		assert.Equal(t, []string{"v3:v"}, journal)
		msg, _ := ctx.Message()
		assert.Equal(t, "v3", msg.ID)
	})

	t.Run("rejects malformed layouts", func(t *testing.T) {
		t.Parallel()
		_, err := validator.NewChoose()
		assert.ErrorIs(t, err, validator.ErrMalformedChoose)

		_, err = validator.NewChoose(
			validator.NewOtherwise(),
			validator.NewWhen(always(true)),
		)
		assert.ErrorIs(t, err, validator.ErrMalformedChoose)

		_, err = validator.NewChoose(nil)
		assert.ErrorIs(t, err, validator.ErrMalformedChoose)

		assert.Panics(t, func() { validator.MustChoose() })
	})

	t.Run("when with nil condition fails init", func(t *testing.T) {
		t.Parallel()
		choose := validator.MustChoose(validator.NewWhen(nil))
		assert.ErrorIs(t, choose.Init(validator.FieldConfig{}), validator.ErrNilCondition)
	})
}

func TestAnyOfValues(t *testing.T) {
	t.Parallel()

	t.Run("passes at first accepted value", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("x", "y", "z")
		ok := validator.NewAnyOfValues(newRecorder(&journal, "c", "y")).Validate(ctx)

		assert.True(t, ok)
		assert.Equal(t, []string{"c:x", "c:y"}, journal)
		collected := allMessages(ctx)
		require.Len(t, collected, 1)
		assert.Equal(t, "c rejected x", collected[0].Text)
	})

	t.Run("exposes value index to the child", func(t *testing.T) {
		t.Parallel()
		var indexes []any
		probe := validator.NewFunc("probe", func(ctx *validator.Context) bool {
			indexes = append(indexes, ctx.Messages().Get(validator.KeyValueIndex).Any())
			assert.Equal(t, ctx.ValueIndex(), ctx.Messages().Get(validator.KeyValueIndex).Any())
			return false
		}, "no")

		ctx := contextFor("a", "b")
		assert.False(t, validator.NewAnyOfValues(probe).Validate(ctx))
		assert.Equal(t, []any{0, 1}, indexes)

		msg, _ := ctx.Message()
		assert.Equal(t, "anyOfValues", msg.ID)
		assert.Len(t, msg.Params[validator.KeyAllMessages], 2)
	})

	t.Run("no values fails", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor()
		assert.False(t, validator.NewAnyOfValues(newRecorder(&journal, "c", "*")).Validate(ctx))
		assert.Empty(t, journal)
		_, has := ctx.Message()
		assert.True(t, has)
	})
}

func TestNoneOfValues(t *testing.T) {
	t.Parallel()

	t.Run("fails at first accepted value", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("a", "b")
		ok := validator.NewNoneOfValues(newRecorder(&journal, "c", "a")).Validate(ctx)

		assert.False(t, ok)
		assert.Equal(t, []string{"c:a"}, journal)
		msg, has := ctx.Message()
		require.True(t, has)
		assert.Equal(t, "noneOfValues", msg.ID)
		assert.Equal(t, "a", msg.Params[validator.KeyValue])
		assert.Equal(t, 0, msg.Params[validator.KeyValueIndex])
	})

	t.Run("passes when no value is accepted", func(t *testing.T) {
		t.Parallel()
		var journal []string
		ctx := contextFor("a", "b")
		assert.True(t, validator.NewNoneOfValues(newRecorder(&journal, "c")).Validate(ctx))
		assert.Equal(t, []string{"c:a", "c:b"}, journal)
	})
}

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("composites clone children deeply", func(t *testing.T) {
		t.Parallel()
		var journal []string
		child := newRecorder(&journal, "c", "*")
		template := validator.NewAllOf(child)

		clone := template.Clone()
		require.NoError(t, clone.Init(validator.FieldConfig{Name: "a"}))

		assert.Equal(t, 0, child.inits)
		cloned := clone.(*validator.AllOf).Children()[0].(*recorder)
		assert.Equal(t, 1, cloned.inits)
		assert.NotSame(t, child, cloned)
	})

	t.Run("choose branches are cloned", func(t *testing.T) {
		t.Parallel()
		var journal []string
		inner := newRecorder(&journal, "c", "*")
		template := validator.MustChoose(validator.NewOtherwise(inner))

		clone := template.Clone()
		require.NoError(t, clone.Init(validator.FieldConfig{}))
		assert.Equal(t, 0, inner.inits)
	})

	t.Run("leaf init state does not leak between clones", func(t *testing.T) {
		t.Parallel()
		template := validator.NewRequired()
		a := template.Clone()
		b := template.Clone()
		require.NoError(t, a.Init(validator.FieldConfig{Name: "first", DisplayName: "First"}))
		require.NoError(t, b.Init(validator.FieldConfig{Name: "second"}))

		ctxA, ctxB := contextFor(""), contextFor("")
		require.False(t, a.Validate(ctxA))
		require.False(t, b.Validate(ctxB))
		msgA, _ := ctxA.Message()
		msgB, _ := ctxB.Message()
		assert.Equal(t, "First", msgA.Params["field"])
		assert.Equal(t, "second", msgB.Params["field"])
	})
}

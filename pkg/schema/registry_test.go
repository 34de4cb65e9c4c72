package schema_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

type prefixParams struct {
	schema.Common `mapstructure:",squash"`
	Prefix        string `mapstructure:"prefix"`
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("builtins", func(t *testing.T) {
		t.Parallel()
		types := schema.NewRegistry().Types()
		for _, name := range []string{"required", "length", "pattern", "email", "url", "range", "integer", "inList", "equalsField"} {
			assert.Contains(t, types, name)
		}
		assert.NotContains(t, types, schema.TypeAllOf)
	})

	t.Run("reserved and invalid registrations", func(t *testing.T) {
		t.Parallel()
		r := schema.NewRegistry()
		f := func(map[string]any) (validator.Validator, error) { return validator.NewRequired(), nil }
		assert.Error(t, r.Register(schema.TypeChoose, f))
		assert.Error(t, r.Register("validator", f))
		assert.Error(t, r.Register("", f))
		assert.Error(t, r.Register("x", nil))
		assert.Error(t, r.RegisterCondition("", validator.ValueEquals("a")))
		assert.Error(t, r.RegisterCondition("x", nil))
	})

	t.Run("custom validator and condition", func(t *testing.T) {
		t.Parallel()
		r := schema.NewRegistry()
		require.NoError(t, r.Register("hasPrefix", func(params map[string]any) (validator.Validator, error) {
			var p prefixParams
			if err := schema.DecodeParams(params, &p); err != nil {
				return nil, err
			}
			return validator.NewFunc("hasPrefix", func(ctx *validator.Context) bool {
				return ctx.Value() == "" || strings.HasPrefix(ctx.Value(), p.Prefix)
			}, "must start with "+p.Prefix, p.Options()...), nil
		}))
		require.NoError(t, r.RegisterCondition("business", validator.FieldEquals("type", "business")))

		doc := `
form: custom
groups:
  - name: order
    abbrev: o
    fields:
      - name: type
        abbrev: t
      - name: vat
        abbrev: v
        validators:
          - if:
              when: business
              then:
                - required
                - hasPrefix: {prefix: EU, message: vat.format}
`
		cfg, err := schema.Load(context.Background(), []byte(doc), schema.WithRegistry(r))
		require.NoError(t, err)
		f, err := form.New(cfg)
		require.NoError(t, err)

		assert.True(t, f.Init(form.NewMapRequest(map[string][]string{"f.o.0.t": {"private"}})))

		assert.False(t, f.Init(form.NewMapRequest(map[string][]string{
			"f.o.0.t": {"business"},
			"f.o.0.v": {"US123"},
		})))
		errs := f.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "vat.format", errs[0].Message.ID)
		assert.Equal(t, "must start with EU", errs[0].Message.Text)

		_, err = schema.Load(context.Background(), []byte(doc))
		assert.ErrorIs(t, err, schema.ErrUnknownCondition)
	})

	t.Run("decode params", func(t *testing.T) {
		t.Parallel()
		var p struct {
			Min  int      `mapstructure:"min"`
			Tags []string `mapstructure:"tags"`
		}
		require.NoError(t, schema.DecodeParams(map[string]any{"min": "3", "tags": []any{"a", "b"}}, &p))
		assert.Equal(t, 3, p.Min)
		assert.Equal(t, []string{"a", "b"}, p.Tags)

		assert.Error(t, schema.DecodeParams(map[string]any{"max": 1}, &p))
	})
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "First Name", schema.DisplayName("first_name"))
	assert.Equal(t, "Postal Code", schema.DisplayName("postal-code"))
	assert.Equal(t, "Email", schema.DisplayName("email"))
}

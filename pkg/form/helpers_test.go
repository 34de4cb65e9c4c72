package form_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func field(t *testing.T, name, abbrev string, chain ...validator.Validator) form.FieldConfig {
	t.Helper()
	fc, err := form.NewFieldConfig(validator.FieldConfig{Name: name, Abbrev: abbrev}, chain...)
	require.NoError(t, err)
	return fc
}

// signupConfig is an account group plus a repeatable phone group.
func signupConfig(t *testing.T) *form.FormConfig {
	t.Helper()
	return &form.FormConfig{
		Name: "signup",
		Keys: form.DefaultKeyFormat,
		Groups: []form.GroupConfig{
			{
				Name:   "account",
				Abbrev: "acc",
				Fields: []form.FieldConfig{
					field(t, "email", "em", validator.NewRequired(), validator.NewEmail()),
					field(t, "password", "pw", validator.NewRequired(), validator.NewLength(8, 0)),
					field(t, "confirm", "cf", validator.NewEqualsField("password")),
					field(t, "newsletter", "nl", validator.NewInList([]string{"yes", "no"})),
					field(t, "avatar", "av"),
				},
			},
			{
				Name:       "phone",
				Abbrev:     "ph",
				Repeatable: true,
				Fields: []form.FieldConfig{
					field(t, "number", "num", validator.NewRequired(), validator.NewPattern(`^\+?\d{6,}$`)),
				},
			},
		},
		CustomErrors: map[string]string{
			"email.taken": "email is already registered",
		},
	}
}

func newSignup(t *testing.T, opts ...form.Option) *form.Form {
	t.Helper()
	f, err := form.New(signupConfig(t), opts...)
	require.NoError(t, err)
	return f
}

func validRequest() *form.MapRequest {
	return form.NewMapRequest(map[string][]string{
		"f.acc.0.em": {"ann@example.com"},
		"f.acc.0.pw": {"correct horse"},
		"f.acc.0.cf": {"correct horse"},
	})
}

func validatorIDs(errs []form.FieldError) []string {
	ids := make([]string, 0, len(errs))
	for _, e := range errs {
		ids = append(ids, e.Key+":"+e.Message.ID)
	}
	return ids
}

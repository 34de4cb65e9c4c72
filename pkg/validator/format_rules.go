package validator

import (
	"net/mail"
	"net/url"
	"strings"
)

// Email requires a non-empty value to be a single RFC 5322 address with a
// dotted domain.
type Email struct {
	rule
}

func NewEmail(opts ...Option) *Email {
	return &Email{rule: newRule("email", opts)}
}

func (v *Email) Init(cfg FieldConfig) error {
	v.bind(cfg)
	return nil
}

func (v *Email) Validate(ctx *Context) bool {
	value := ctx.Value()
	if value == "" || validEmail(value) {
		return true
	}
	return v.reject(ctx, "must be a valid email address", nil)
}

func (v *Email) Clone() Validator {
	c := *v
	return &c
}

func validEmail(value string) bool {
	if blank(value) {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		return false
	}
	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return !strings.Contains(domain, "..")
}

// URL requires a non-empty value to be an absolute URL with one of the
// allowed schemes (http and https by default).
type URL struct {
	rule
	schemes []string
}

func NewURL(schemes []string, opts ...Option) *URL {
	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}
	return &URL{rule: newRule("url", opts), schemes: schemes}
}

func (v *URL) Init(cfg FieldConfig) error {
	v.bind(cfg)
	return nil
}

func (v *URL) Validate(ctx *Context) bool {
	value := ctx.Value()
	if value == "" {
		return true
	}
	u, err := url.ParseRequestURI(value)
	if err == nil && u.Host != "" {
		for _, s := range v.schemes {
			if strings.EqualFold(u.Scheme, s) {
				return true
			}
		}
	}
	return v.reject(ctx, "must be a valid URL", map[string]any{
		"schemes": strings.Join(v.schemes, ", "),
	})
}

func (v *URL) Clone() Validator {
	c := *v
	c.schemes = append([]string(nil), v.schemes...)
	return &c
}

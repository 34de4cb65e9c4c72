package schema

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/form"
)

type document struct {
	Form         string            `yaml:"form"`
	Keys         form.KeyFormat    `yaml:"keys"`
	CustomErrors map[string]string `yaml:"custom_errors"`
	Groups       []groupDoc        `yaml:"groups"`
}

type groupDoc struct {
	Name       string     `yaml:"name"`
	Abbrev     string     `yaml:"abbrev"`
	Display    string     `yaml:"display"`
	Repeatable bool       `yaml:"repeatable"`
	Instances  []string   `yaml:"instances"`
	Fields     []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name       string            `yaml:"name"`
	Abbrev     string            `yaml:"abbrev"`
	Display    string            `yaml:"display"`
	Defaults   []string          `yaml:"defaults"`
	Attrs      map[string]string `yaml:"attrs"`
	Validators []yaml.Node       `yaml:"validators"`
}

var labelReplacer = strings.NewReplacer("_", " ", "-", " ", ".", " ")

// DisplayName turns an identifier such as "first_name" into "First Name".
func DisplayName(name string) string {
	return cases.Title(language.English).String(labelReplacer.Replace(name))
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

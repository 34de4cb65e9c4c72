// Package catalog holds the default validation messages shipped with the
// formkit binary.
package catalog

import (
	"context"
	"embed"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

// Namespace prefixes validator message ids in the catalogue.
const Namespace = "validation"

//go:embed messages/*.yaml
var messages embed.FS

// Adapter returns the embedded catalogue overridden by the message files at
// paths. Empty paths are skipped.
func Adapter(paths ...string) i18n.Adapter {
	chain := i18n.ChainAdapter{i18n.NewFSAdapter(messages, "messages")}
	for _, p := range paths {
		if p != "" {
			chain = append(chain, i18n.NewFileAdapter(nil, p))
		}
	}
	return chain
}

// NewTranslator loads the catalogue into a translator rendering validation
// messages.
func NewTranslator(ctx context.Context, log *slog.Logger, defaultLang string, paths ...string) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, Adapter(paths...),
		i18n.WithNamespace(Namespace),
		i18n.WithDefaultLanguage(defaultLang),
		i18n.WithLogger(log),
	)
}

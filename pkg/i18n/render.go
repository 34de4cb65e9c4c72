package i18n

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/msgctx"
)

// SequenceSeparator joins the rendered elements of sequence parameters.
const SequenceSeparator = "; "

// Renderable is a selected message: a template id, the text used when the
// catalogue has no template, and template parameters.
type Renderable interface {
	MessageID() string
	FallbackText() string
	Param(name string) (any, bool)
}

// ParamLookup supplies parameters the message does not carry itself,
// typically the MessageContext of the failed field.
type ParamLookup interface {
	Get(key string) msgctx.Value
}

// Render produces the text of msg in lang. The template is the catalogue
// entry for namespace+id, falling back to the message's own text.
// Placeholders resolve from the message parameters first and from params
// second; unresolved placeholders are left in place. Sequence values render
// element by element, nested messages recursively, joined by
// SequenceSeparator.
func (t *Translator) Render(lang string, msg Renderable, params ParamLookup) (string, error) {
	if msg == nil {
		return "", ErrMessageNotFound
	}

	id := msg.MessageID()
	tmpl, ok := "", false
	if id != "" {
		tmpl, ok = t.Lookup(lang, t.namespace+id)
	}
	if !ok {
		tmpl = msg.FallbackText()
		if tmpl == "" {
			return "", fmt.Errorf("%w: %q", ErrMessageNotFound, id)
		}
		if t.logMissing && id != "" {
			t.logger.Warn("message template not found, using fallback text",
				slog.String("lang", lang), slog.String("id", id))
		}
	}

	var firstErr error
	out := paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		var v msgctx.Value
		if raw, ok := msg.Param(name); ok && raw != nil {
			v = msgctx.Decorate(raw)
		} else if params != nil {
			v = params.Get(name)
		}
		if v.IsNil() {
			return match
		}
		s, err := t.formatValue(lang, v, params)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return s
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func (t *Translator) formatValue(lang string, v msgctx.Value, params ParamLookup) (string, error) {
	if !v.IsSequence() {
		return t.formatScalar(lang, v.Any(), params)
	}
	parts := make([]string, 0, v.Len())
	for _, item := range v.Items() {
		s, err := t.formatValue(lang, msgctx.Decorate(item), params)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, SequenceSeparator), nil
}

func (t *Translator) formatScalar(lang string, v any, params ParamLookup) (string, error) {
	switch x := v.(type) {
	case Renderable:
		return t.Render(lang, x, params)
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return fmt.Sprint(x), nil
	}
}

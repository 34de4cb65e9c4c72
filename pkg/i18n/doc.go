// Package i18n renders validation messages from YAML or JSON catalogues.
//
// A catalogue maps language codes to nested maps of templates. Keys are
// addressed with dots, so
//
//	en:
//	  validation:
//	    required: "%{field} is required"
//
// defines "validation.required". Placeholders take the form %{name}.
//
// Catalogues come from an Adapter: MapAdapter for in-memory data,
// FileAdapter for a single file and FSAdapter for a directory of any fs.FS,
// including embed.FS.
//
// Translator.Render is the bridge to the form engine. It takes a Renderable
// (validator.Message satisfies it) and a ParamLookup (a MessageContext), and
// resolves placeholders from the message parameters first. Sequence values
// such as the allMessages list of an anyOf are rendered element by element.
//
// MatchLanguage negotiates an Accept-Language header with
// golang.org/x/text/language; Middleware stores the result in the request
// context.
package i18n

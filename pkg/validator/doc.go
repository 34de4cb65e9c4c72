// Package validator implements the validator evaluation engine: the leaf
// Validator contract, a set of leaf rules, and the combinators that compose
// them (AllOf, AnyOf, If, Choose/When/Otherwise, AnyOfValues, NoneOfValues).
//
// # Contract
//
// A Validator is configured once as a template and bound to every field that
// references it through Clone followed by Init. Validate is a pure decision
// over the Context; before returning false it must record a Message on the
// context. Combinators rely on this: AllOf copies the failing child's message
// outward, AnyOf and AnyOfValues collect child messages under the
// "allMessages" key.
//
// # Evaluation
//
// Every child is evaluated against a fresh child Context in declaration
// order, and evaluation stops at the first decisive child. Nothing is
// reordered, deduplicated or retried, and panics raised by leaf validators
// are not recovered.
//
//	chain := []validator.Validator{
//	    validator.NewRequired(),
//	    validator.NewAnyOf(
//	        validator.NewEmail(),
//	        validator.NewPattern(`^\+?[0-9]{6,15}$`),
//	    ),
//	}
//	ok := validator.Run(ctx, chain)
//
// # Messages
//
// Leaf rules produce a Message whose ID is the validator ID (or the
// configured message id, see WithMessageID), an English fallback Text and
// Params for template substitution. Rendering the message is left to the
// i18n package.
package validator

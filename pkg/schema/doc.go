// Package schema loads form configurations from YAML documents.
//
// A schema names the form, optionally its key format and custom error
// messages, and lists groups of fields with their validator chains:
//
//	form: signup
//	custom_errors:
//	  email.taken: email is already registered
//	groups:
//	  - name: account
//	    abbrev: acc
//	    fields:
//	      - name: email
//	        abbrev: em
//	        validators: [required, email]
//	      - name: password
//	        abbrev: pw
//	        validators:
//	          - required
//	          - length: {min: 8}
//	      - name: company
//	        validators:
//	          - if:
//	              when: {fieldEquals: {field: type, value: business}}
//	              then: [required]
//
// A validator spec is a bare type name or a single-key mapping from type to
// parameters. Leaf types come from a Registry, which decodes parameters with
// mapstructure; the composites allOf, anyOf, if, choose, anyOfValues and
// noneOfValues nest further specs. Conditions are either names registered
// with Registry.RegisterCondition or one of fieldEquals, fieldPresent,
// valueEquals, keyEquals and not.
//
// Abbreviations default to the name and display names to the title-cased
// name.
package schema

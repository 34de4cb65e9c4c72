// Package form binds submitted data to configured groups of fields and
// validates them.
//
// A Form holds group instances keyed by group name and instance key. Each
// Group holds Fields, and each Field holds raw values, an optional
// attachment, and the outcome of its last validation. Validity aggregates
// live: a group is valid when all its fields are, a form when all its groups
// are.
//
// Fields are addressed by keys built from a KeyFormat, by default
//
//	f.<group abbrev>.<instance>.<field abbrev>
//
// with two reserved suffixes. "<key>.absent" carries the value used when the
// base key is missing, as for unchecked checkboxes; "<key>.attachment"
// carries an opaque payload such as an uploaded file.
//
// Validator chains are bound at configuration time with NewFieldConfig,
// which clones every template before initialising it. Forms are then built
// per submission:
//
//	f, err := form.New(cfg, form.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	if !f.Init(req) {
//		errs, err := f.RenderErrors(lang, translator)
//		...
//	}
//
// Init(nil) resets every field to valid without running validators. Forms,
// groups and fields are single-owner values and do no locking.
package form

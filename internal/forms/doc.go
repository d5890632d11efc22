// Package forms describes the add/edit forms for portfolios and workflows,
// decodes submitted values into API inputs and validates them.
//
// Form values arrive as a map keyed by field name. They are decoded with
// mapstructure, then validated with validator struct tags. Validation
// failures are reported as ValidationErrors keyed by field name so the
// console can show each message next to its field.
package forms

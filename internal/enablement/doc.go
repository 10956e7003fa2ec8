// Package enablement implements the conditions that decide whether a tagger
// applies to a binding.
//
// A condition is a boolean HCL expression evaluated against two variables
// derived from the binding's originating source unit:
//
//	project.natures   list(string), sorted and de-duplicated
//	language.id       string
//
// and a small function library: contains, length, lower and upper. For
// example:
//
//	contains(project.natures, "cnature") && language.id == "c"
//
// Expressions are validated when compiled. References to unknown variables or
// calls to unknown functions are reported as diagnostics at that point rather
// than failing later on every evaluation.
package enablement

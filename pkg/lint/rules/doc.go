// Package rules implements the built-in lint rules, grouped by category:
// naming conventions, raw-line formatting checks, basic correctness checks,
// design limits, and style-guide structure checks.
//
// Importing this package registers every rule with lint.DefaultRegistry.
package rules

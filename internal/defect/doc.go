// Package defect defines the structural defects a compilation can report,
// their precedence, and their deterministic text form. The text form is
// stable across runs and is what golden tests assert against.
package defect

// Package registry is the explicit scope-identity to factory table used by
// generated runtime code in place of reflective lookups.
//
// The table is populated once at start-up, then frozen. After Freeze it is
// read-only and safe for concurrent lookups. A lookup for a scope without a
// registered factory returns ErrUnprocessedScope, the runtime counterpart of
// the compiler's UnprocessedScope defect.
package registry

// Package ir defines the immutable intermediate representation consumed by
// the scope graph compiler.
//
// A front-end (the HCL and YAML adapters in this repository, or a
// source-syntax front-end elsewhere) produces a Declarations value. The rest
// of the pipeline never mutates it: the assembler copies what it needs into
// its own tree.
//
// Types and dependencies have a canonical textual form, the notation:
//
//	@Named(value="p") java.util.List<java.lang.String>
//
// Dependency.Key returns that form, and it is what every later stage uses as
// a map key.
package ir

// Package app contains the driver logic of scopegraph: it loads declaration
// files, compiles them and prints the result. It is decoupled from any
// specific entrypoint like a CLI.
package app

package ir

import "errors"

var (
	// ErrInvalidIR is wrapped by every contract violation found in a
	// Declarations value. Compilation does not start when it is returned.
	ErrInvalidIR = errors.New("invalid IR")

	// ErrSyntax is wrapped by notation parse failures.
	ErrSyntax = errors.New("syntax error")
)

package config

import (
	"context"

	"github.com/specialistvlad/scopegraph/internal/ir"
)

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads declarations from the given files or directories and
	// translates them into the format-agnostic IR. Declaration order follows
	// the order of paths, then file order inside a directory, then source
	// order inside a file.
	Load(ctx context.Context, paths ...string) (*ir.Declarations, error)
}

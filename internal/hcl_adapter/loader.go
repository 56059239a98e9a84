package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/scopegraph/internal/config"
	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/fsutil"
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// Extension is the file extension the loader picks up from directories.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	notation *config.NotationCache
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL declaration loader. A nil cache gives the
// loader a private one.
func NewLoader(cache *config.NotationCache) *Loader {
	return &Loader{notation: cache}
}

// Load parses every .hcl file reachable from paths and translates the
// scope, objects, spreadable and external blocks into declarations.
func (l *Loader) Load(ctx context.Context, paths ...string) (*ir.Declarations, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	if err := l.ensureCache(); err != nil {
		return nil, err
	}

	files, err := fsutil.FindFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	decls := &ir.Declarations{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileDecls, err := l.translate(ctx, &root)
		if err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
		decls.Merge(fileDecls)
	}

	logger.Debug("HCL loading complete.",
		"scopes", len(decls.Scopes),
		"objects", len(decls.Objects),
		"spreadables", len(decls.Spreadables),
		"external", len(decls.External),
	)
	return decls, nil
}

// LoadBytes decodes a single in-memory HCL document. filename is only used
// in diagnostics.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*ir.Declarations, error) {
	if err := l.ensureCache(); err != nil {
		return nil, err
	}

	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	decls, err := l.translate(ctx, &root)
	if err != nil {
		return nil, fmt.Errorf("in HCL file %s: %w", filename, err)
	}
	return decls, nil
}

func (l *Loader) ensureCache() error {
	if l.notation != nil {
		return nil
	}
	cache, err := config.NewNotationCache(0)
	if err != nil {
		return err
	}
	l.notation = cache
	return nil
}

package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/scopegraph/internal/config"
	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/fsutil"
	"github.com/specialistvlad/scopegraph/internal/ir"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions the loader picks up from directories.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct {
	notation *config.NotationCache
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML declaration loader. A nil cache gives the
// loader a private one.
func NewLoader(cache *config.NotationCache) *Loader {
	return &Loader{notation: cache}
}

// Load decodes every YAML file reachable from paths.
func (l *Loader) Load(ctx context.Context, paths ...string) (*ir.Declarations, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	decls := &ir.Declarations{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		fileDecls, err := l.LoadBytes(ctx, src, file)
		if err != nil {
			return nil, err
		}
		decls.Merge(fileDecls)
	}

	logger.Debug("YAML loading complete.",
		"scopes", len(decls.Scopes),
		"objects", len(decls.Objects),
		"spreadables", len(decls.Spreadables),
		"external", len(decls.External),
	)
	return decls, nil
}

// LoadBytes decodes a single in-memory YAML document. Unknown keys are
// rejected.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*ir.Declarations, error) {
	if l.notation == nil {
		cache, err := config.NewNotationCache(0)
		if err != nil {
			return nil, err
		}
		l.notation = cache
	}

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var root fileRoot
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	decls, err := l.translate(ctx, &root)
	if err != nil {
		return nil, fmt.Errorf("in YAML file %s: %w", filename, err)
	}
	return decls, nil
}

package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/ir"
)

var (
	// ErrUnprocessedScope is returned for scopes with no registered factory.
	ErrUnprocessedScope = errors.New("unprocessed scope")
	// ErrFrozen is returned by Register after Freeze.
	ErrFrozen = errors.New("registry is frozen")
)

// Factory creates a runtime instance of a scope. parent is the instance the
// child accessor was called on, or nil for a root scope.
type Factory func(ctx context.Context, parent any) (any, error)

// Registry holds the factories of a single application instance.
type Registry struct {
	mu        sync.RWMutex
	frozen    bool
	factories map[string]Factory
	order     []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds the factory for scope t. Registering a scope twice is an
// error.
func (r *Registry) Register(ctx context.Context, t ir.Type, f Factory) error {
	if f == nil {
		return fmt.Errorf("nil factory for scope %s", t)
	}
	key := t.String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("register %s: %w", key, ErrFrozen)
	}
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("factory for scope %s already registered", key)
	}
	ctxlog.FromContext(ctx).Debug("Registering scope factory.", "scope", key)
	r.factories[key] = f
	r.order = append(r.order, key)
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Lookup returns the factory registered for t.
func (r *Registry) Lookup(t ir.Type) (Factory, error) {
	r.mu.RLock()
	f, ok := r.factories[t.String()]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("scope %s: %w", t, ErrUnprocessedScope)
	}
	return f, nil
}

// Create looks up the factory for t and calls it.
func (r *Registry) Create(ctx context.Context, t ir.Type, parent any) (any, error) {
	f, err := r.Lookup(t)
	if err != nil {
		return nil, err
	}
	return f(ctx, parent)
}

// Scopes returns the registered scope names in registration order.
func (r *Registry) Scopes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

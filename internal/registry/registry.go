// Package registry maps item kinds to renderer factories and keeps a small
// cache of renderer instances for measuring.
//
// Resolution never fails: an unregistered kind resolves to the default
// factory. The instance cache is disposable, so Purge may be called at any
// time (for instance under memory pressure) without losing state.
package registry

import (
	"sort"
	"sync"

	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
)

// DefaultIdentifier names the fallback entry.
const DefaultIdentifier = "default"

// maxCachedRenderers caps the instance cache. When exceeded the whole cache
// is flushed; instances are cheap to rebuild.
const maxCachedRenderers = 64

// Renderer is the capability every concrete item view implements.
type Renderer interface {
	// Configure loads an item into the renderer.
	Configure(item model.Item)
	// PreferredSize reports the size the configured item wants when laid
	// out in the given width.
	PreferredSize(item model.Item, width float64) geometry.Size
	// Render draws the configured item.
	Render(width int, selected bool) string
	// Reset clears per-item state before an instance is reused.
	Reset()
}

// Factory constructs a fresh renderer.
type Factory func() Renderer

// Registry is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	cache     map[string]Renderer
}

// New creates a registry whose default entry is def.
func New(def Factory) *Registry {
	r := &Registry{
		factories: make(map[string]Factory, 8),
		cache:     make(map[string]Renderer, 8),
	}
	r.factories[DefaultIdentifier] = def
	return r
}

// Register binds identifier to f, replacing any previous factory and its
// cached instance.
func (r *Registry) Register(identifier string, f Factory) {
	if f == nil {
		return
	}
	r.mu.Lock()
	r.factories[identifier] = f
	delete(r.cache, identifier)
	r.mu.Unlock()
}

// RegisterDefault replaces the fallback factory.
func (r *Registry) RegisterDefault(f Factory) {
	r.Register(DefaultIdentifier, f)
}

// Has reports whether identifier has its own factory.
func (r *Registry) Has(identifier string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.factories[identifier]
	return ok
}

// Resolve returns the factory for identifier, or the default factory.
func (r *Registry) Resolve(identifier string) Factory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(identifier)
}

func (r *Registry) resolveLocked(identifier string) Factory {
	if f, ok := r.factories[identifier]; ok {
		return f
	}
	return r.factories[DefaultIdentifier]
}

// Make returns a renderer for identifier. A cached instance is reused
// after Reset; Register drops the cached instance of an identifier, so a
// cached renderer always has the concrete type its current factory builds.
func (r *Registry) Make(identifier string) Renderer {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := identifier
	if _, ok := r.factories[identifier]; !ok {
		key = DefaultIdentifier
	}

	if cached, ok := r.cache[key]; ok {
		cached.Reset()
		return cached
	}

	if len(r.cache) >= maxCachedRenderers {
		r.cache = make(map[string]Renderer, 8)
	}
	fresh := r.factories[key]()
	r.cache[key] = fresh
	return fresh
}

// Purge drops every cached instance. Factories stay registered.
func (r *Registry) Purge() {
	r.mu.Lock()
	r.cache = make(map[string]Renderer, 8)
	r.mu.Unlock()
}

// Cached returns the number of cached instances.
func (r *Registry) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Identifiers lists registered identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	r.mu.Lock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	sort.Strings(ids)
	return ids
}

package service

import (
	"fmt"
	"strings"

	"github.com/jorgeparavicini/lazycloud/internal/cloud"
	"github.com/jorgeparavicini/lazycloud/internal/command"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
)

// ID identifies a service within a cloud provider.
type ID struct {
	Provider cloud.Provider
	Key      string
}

// NewID pairs a provider with a service key.
func NewID(p cloud.Provider, key string) ID {
	return ID{Provider: p, Key: key}
}

func (id ID) String() string {
	return fmt.Sprintf("%s:%s", id.Provider, id.Key)
}

// Deps carries what a provider needs to construct a service instance.
type Deps struct {
	Resolver *keymap.Resolver
	Env      command.Env
}

// Provider registers a cloud service with the registry and constructs
// instances of it.
type Provider interface {
	// Provider is the cloud platform the service belongs to.
	Provider() cloud.Provider

	// Key is the service identifier within the platform, e.g.
	// "secret-manager".
	Key() string

	// DisplayName is the human-readable service name.
	DisplayName() string

	// Description is a short line for the service selector.
	Description() string

	// Icon is an optional glyph shown next to the name. Empty means
	// none.
	Icon() string

	// Available reports whether the service can run against ctx.
	Available(ctx cloud.Context) bool

	// New constructs a service instance bound to ctx.
	New(ctx cloud.Context, deps Deps) (Service, error)
}

// IDOf returns the full id of a provider's service.
func IDOf(p Provider) ID {
	return NewID(p.Provider(), p.Key())
}

// Registry holds the registered service providers in registration
// order.
type Registry struct {
	providers map[ID]Provider
	order     []ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[ID]Provider)}
}

// Register adds a provider. Re-registering an id replaces the provider
// but keeps its original position.
func (r *Registry) Register(p Provider) {
	id := IDOf(p)
	if _, ok := r.providers[id]; !ok {
		r.order = append(r.order, id)
	}
	r.providers[id] = p
}

// Get looks up a provider by id.
func (r *Registry) Get(id ID) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// FindByKey returns the first provider whose service key matches,
// case-insensitively. Used for --service preselection.
func (r *Registry) FindByKey(key string) (Provider, bool) {
	for _, id := range r.order {
		if strings.EqualFold(id.Key, key) {
			return r.providers[id], true
		}
	}
	return nil, false
}

// ForProvider returns all services of one platform.
func (r *Registry) ForProvider(p cloud.Provider) []Provider {
	var out []Provider
	for _, id := range r.order {
		if id.Provider == p {
			out = append(out, r.providers[id])
		}
	}
	return out
}

// Available returns the services usable with ctx.
func (r *Registry) Available(ctx cloud.Context) []Provider {
	var out []Provider
	for _, id := range r.order {
		if p := r.providers[id]; p.Available(ctx) {
			out = append(out, p)
		}
	}
	return out
}

// IDs returns all registered service ids.
func (r *Registry) IDs() []ID {
	dup := make([]ID, len(r.order))
	copy(dup, r.order)
	return dup
}

// Len returns the number of registered services.
func (r *Registry) Len() int { return len(r.order) }

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/payload"
)

// Factory returns a new payload with every field at its default value.
type Factory func() payload.Payload

// TypeDescriptor describes one registered payload type.
type TypeDescriptor struct {
	// ID is the stable identifier persisted next to the payload fields.
	ID string
	// DisplayName is what an editor shows; listings are sorted by it.
	DisplayName string
	// Abstract declarations describe a capability and cannot be instantiated.
	Abstract bool
	// Type is the Go type produced by the factory. Nil for abstract entries.
	Type reflect.Type
}

type registration struct {
	desc    TypeDescriptor
	factory Factory
}

// Option configures a registration.
type Option func(*TypeDescriptor)

// WithDisplayName overrides the name shown in listings (default: the id).
func WithDisplayName(name string) Option {
	return func(d *TypeDescriptor) {
		d.DisplayName = name
	}
}

// Registry maps payload type ids to factories.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]*registration
	byType map[reflect.Type]string

	// listing caches the sorted concrete types; nil means stale.
	listing []TypeDescriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byID:   make(map[string]*registration),
		byType: make(map[reflect.Type]string),
	}
}

var defaultRegistry = New()

// Default returns the process-wide registry that variant packages populate
// from their init functions.
func Default() *Registry {
	return defaultRegistry
}

// RegisterType registers a concrete payload type under id.
func (r *Registry) RegisterType(id string, fn Factory, opts ...Option) error {
	if id == "" {
		return errors.NewValidationError("id", "payload type id must not be empty")
	}
	if fn == nil {
		return errors.NewValidationError("factory", fmt.Sprintf("nil factory for payload type %q", id))
	}
	sample := fn()
	if sample == nil {
		return errors.NewValidationError("factory", fmt.Sprintf("factory for payload type %q returned nil", id))
	}

	desc := TypeDescriptor{ID: id, DisplayName: id, Type: reflect.TypeOf(sample)}
	for _, opt := range opts {
		opt(&desc)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return errors.NewAlreadyExistsError("payload type", id)
	}
	if other, exists := r.byType[desc.Type]; exists {
		return errors.NewAlreadyExistsError("payload type", fmt.Sprintf("%s (already registered as %s)", desc.Type, other))
	}
	r.byID[id] = &registration{desc: desc, factory: fn}
	r.byType[desc.Type] = id
	r.listing = nil
	return nil
}

// RegisterAbstract records a non-instantiable declaration, typically a
// capability interface shared by several variants. Abstract declarations
// are never listed and never instantiated.
func (r *Registry) RegisterAbstract(id string, opts ...Option) error {
	if id == "" {
		return errors.NewValidationError("id", "payload type id must not be empty")
	}
	desc := TypeDescriptor{ID: id, DisplayName: id, Abstract: true}
	for _, opt := range opts {
		opt(&desc)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return errors.NewAlreadyExistsError("payload type", id)
	}
	r.byID[id] = &registration{desc: desc}
	return nil
}

// MustRegisterType is like RegisterType but panics on error.
func (r *Registry) MustRegisterType(id string, fn Factory, opts ...Option) {
	if err := r.RegisterType(id, fn, opts...); err != nil {
		panic(fmt.Sprintf("type registry: %v", err))
	}
}

// Register registers the pointer type V under id, deriving its factory.
//
//	registry.Register[*HealthData](reg, "HealthData")
func Register[V payload.Payload](r *Registry, id string, opts ...Option) error {
	t := reflect.TypeOf((*V)(nil)).Elem()
	if t.Kind() != reflect.Pointer {
		return errors.NewValidationError("type", fmt.Sprintf("payload type %s must be a pointer type", t))
	}
	elem := t.Elem()
	return r.RegisterType(id, func() payload.Payload {
		return reflect.New(elem).Interface().(payload.Payload)
	}, opts...)
}

// MustRegister is like Register but panics on error.
func MustRegister[V payload.Payload](r *Registry, id string, opts ...Option) {
	if err := Register[V](r, id, opts...); err != nil {
		panic(fmt.Sprintf("type registry: %v", err))
	}
}

// ListTypes returns the concrete payload types sorted by display name.
// The slice is shared; callers must not modify it.
func (r *Registry) ListTypes() []TypeDescriptor {
	r.mu.RLock()
	listing := r.listing
	r.mu.RUnlock()
	if listing != nil {
		return listing
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listing == nil {
		r.listing = r.buildListing()
	}
	return r.listing
}

func (r *Registry) buildListing() []TypeDescriptor {
	listing := make([]TypeDescriptor, 0, len(r.byID))
	for _, reg := range r.byID {
		if reg.desc.Abstract {
			continue
		}
		listing = append(listing, reg.desc)
	}
	sort.Slice(listing, func(i, j int) bool {
		if listing[i].DisplayName != listing[j].DisplayName {
			return listing[i].DisplayName < listing[j].DisplayName
		}
		return listing[i].ID < listing[j].ID
	})
	return listing
}

// Lookup returns the descriptor registered under id, abstract ones included.
func (r *Registry) Lookup(id string) (TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byID[id]
	if !ok {
		return TypeDescriptor{}, false
	}
	return reg.desc, true
}

// Instantiate returns a default-initialised payload of the given type.
// It fails with an UnknownTypeError for ids that are not listed.
func (r *Registry) Instantiate(id string) (payload.Payload, error) {
	r.mu.RLock()
	reg, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok || reg.desc.Abstract {
		return nil, errors.NewUnknownTypeError(id)
	}
	return reg.factory(), nil
}

// IndexOf returns the position of id in ListTypes. A false result is an
// ordinary outcome for unknown or abstract ids.
func (r *Registry) IndexOf(id string) (int, bool) {
	for i, desc := range r.ListTypes() {
		if desc.ID == id {
			return i, true
		}
	}
	return -1, false
}

// TypeIDOf returns the id registered for the runtime type of p.
func (r *Registry) TypeIDOf(p payload.Payload) (string, bool) {
	if p == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byType[reflect.TypeOf(p)]
	return id, ok
}

// IndexOfPayload returns the listing position of p's type, for preselecting
// the current type of an entry in an editor.
func (r *Registry) IndexOfPayload(p payload.Payload) (int, bool) {
	id, ok := r.TypeIDOf(p)
	if !ok {
		return -1, false
	}
	return r.IndexOf(id)
}

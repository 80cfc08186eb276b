/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/objectstore/entity"
	"github.com/suparena/objectstore/errors"
)

// NewFunc creates a fresh, unregistered entity.
type NewFunc func() entity.Entity

// RestoreFunc rebuilds an entity from a persisted record.
type RestoreFunc func(rec entity.Record) (entity.Entity, error)

// Constructors holds the two ways of building one concrete type.
type Constructors struct {
	New     NewFunc
	Restore RestoreFunc
}

// TypeRegistry maps type names to their constructors.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]Constructors
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types: make(map[string]Constructors),
	}
}

// Register adds the constructors for a type name.
// If the name is already registered, it panics to prevent accidental overrides.
func (r *TypeRegistry) Register(name string, newFn NewFunc, restoreFn RestoreFunc) {
	if name == "" || newFn == nil || restoreFn == nil {
		panic(fmt.Sprintf("type registry: incomplete registration for %q", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		panic(fmt.Sprintf("type registry: type %q already registered", name))
	}
	r.types[name] = Constructors{New: newFn, Restore: restoreFn}
}

// Lookup returns the constructors registered for name.
func (r *TypeRegistry) Lookup(name string) (Constructors, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.types[name]
	return c, ok
}

// Create builds a fresh entity of the named type.
func (r *TypeRegistry) Create(name string) (entity.Entity, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, errors.NewUnknownTypeError(name, "")
	}
	return c.New(), nil
}

// Restore rebuilds an entity of the named type from rec.
func (r *TypeRegistry) Restore(name string, rec entity.Record) (entity.Entity, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, errors.NewUnknownTypeError(name, "")
	}
	e, err := c.Restore(rec)
	if err != nil {
		return nil, err
	}
	if e.TypeName() != name {
		return nil, fmt.Errorf("type registry: restore for %q produced %q", name, e.TypeName())
	}
	return e, nil
}

// Names returns the registered type names in sorted order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

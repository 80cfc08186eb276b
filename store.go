/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/entity"
	"github.com/suparena/objectstore/errors"
	"github.com/suparena/objectstore/registry"
)

// Store keeps every live entity in memory, keyed by "<TypeName>.<id>", and
// persists the whole registry to its backend at once.
type Store struct {
	mu      sync.RWMutex
	objects map[string]entity.Entity
	backend datastore.Backend
	types   *registry.TypeRegistry
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Store with an empty registry. Nothing is read from the
// backend until Reload.
func New(backend datastore.Backend, types *registry.TypeRegistry, opts ...Option) *Store {
	s := &Store{
		objects: make(map[string]entity.Entity),
		backend: backend,
		types:   types,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location names the backing document.
func (s *Store) Location() string {
	return s.backend.Location()
}

// Types returns the type registry used for Create and Reload.
func (s *Store) Types() *registry.TypeRegistry {
	return s.types
}

// New inserts e under its composite key, replacing any entity already there.
func (s *Store) New(e entity.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[entity.Key(e.TypeName(), e.ID())] = e
}

// All returns a copy of the registry.
func (s *Store) All() map[string]entity.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]entity.Entity, len(s.objects))
	for k, e := range s.objects {
		out[k] = e
	}
	return out
}

// AllOf returns the entities of one type, keyed like All.
func (s *Store) AllOf(typeName string) map[string]entity.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]entity.Entity)
	for k, e := range s.objects {
		if e.TypeName() == typeName {
			out[k] = e
		}
	}
	return out
}

// Keys returns the registry keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of registered entities.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Get looks up an entity by type name and id.
func (s *Store) Get(typeName, id string) (entity.Entity, error) {
	key := entity.Key(typeName, id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.objects[key]
	if !ok {
		return nil, errors.NewNotFoundError(typeName, key)
	}
	return e, nil
}

// Delete removes an entity from the registry. The change reaches the backend
// on the next Save.
func (s *Store) Delete(typeName, id string) error {
	key := entity.Key(typeName, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return errors.NewNotFoundError(typeName, key)
	}
	delete(s.objects, key)
	return nil
}

// Create builds a fresh entity of a registered type and registers it.
func (s *Store) Create(typeName string) (entity.Entity, error) {
	e, err := s.types.Create(typeName)
	if err != nil {
		return nil, err
	}
	entity.Register(s, e)
	return e, nil
}

// Snapshot returns the record of every registered entity keyed by the
// composite key regenerated from the record itself.
func (s *Store) Snapshot() datastore.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(datastore.Snapshot, len(s.objects))
	for _, e := range s.objects {
		snap[entity.Key(e.TypeName(), e.ID())] = e.ToRecord()
	}
	return snap
}

// Save writes the whole registry to the backend, replacing what was there.
func (s *Store) Save(ctx context.Context) error {
	snap := s.Snapshot()
	if err := s.backend.Store(ctx, snap); err != nil {
		return err
	}
	s.logger.Debug("saved objects",
		zap.String("backend", s.backend.Location()),
		zap.Int("objects", len(snap)),
	)
	return nil
}

// Reload reads the backend and merges every stored entity into the registry.
// A backend with nothing persisted is not an error. Either every record is
// restored or the registry is left untouched.
func (s *Store) Reload(ctx context.Context) error {
	snap, err := s.backend.Load(ctx)
	if errors.IsNotFound(err) {
		s.logger.Debug("nothing to reload", zap.String("backend", s.backend.Location()))
		return nil
	}
	if err != nil {
		return err
	}

	restored, err := s.restore(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for k, e := range restored {
		s.objects[k] = e
	}
	s.mu.Unlock()

	s.logger.Debug("reloaded objects",
		zap.String("backend", s.backend.Location()),
		zap.Int("objects", len(restored)),
	)
	return nil
}

func (s *Store) restore(snap datastore.Snapshot) (map[string]entity.Entity, error) {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	restored := make(map[string]entity.Entity, len(snap))
	for _, key := range keys {
		rec := snap[key]
		typeName, ok := rec.TypeName()
		if !ok {
			return nil, errors.NewMalformedStoreError(s.backend.Location(),
				fmt.Sprintf("record %q has no type tag", key), nil)
		}

		e, err := s.types.Restore(typeName, rec)
		if errors.IsUnknownType(err) {
			return nil, errors.NewUnknownTypeError(typeName, key)
		}
		if err != nil {
			return nil, fmt.Errorf("restore %s: %w", key, err)
		}
		entity.Bind(e, s)

		actual := entity.Key(e.TypeName(), e.ID())
		if actual != key {
			s.logger.Warn("stored key does not match record",
				zap.String("key", key),
				zap.String("record", actual),
			)
		}
		restored[actual] = e
	}
	return restored, nil
}

// Close releases the backend if it holds resources such as a database pool.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

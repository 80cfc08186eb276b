/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Backend for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/datastore/jsondoc"
	"github.com/suparena/objectstore/errors"
)

// Location is reported by every mock DataStore.
const Location = "memory"

// DataStore is a mock implementation of datastore.Backend for testing. It
// keeps the encoded document, so loads go through the same codec as the file
// backend.
type DataStore struct {
	mu         sync.RWMutex
	data       []byte
	loadError  error
	storeError error
	loads      int
	stores     int
}

// New creates an empty mock DataStore; Load reports not found until the first Store.
func New() *DataStore {
	return &DataStore{}
}

// WithLoadError makes Load operations return an error
func (m *DataStore) WithLoadError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
	return m
}

// WithStoreError makes Store operations return an error
func (m *DataStore) WithStoreError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeError = err
	return m
}

// Location returns Location.
func (m *DataStore) Location() string {
	return Location
}

// Load decodes the stored document
func (m *DataStore) Load(ctx context.Context) (datastore.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++

	if m.loadError != nil {
		return nil, m.loadError
	}
	if m.data == nil {
		return nil, errors.NewNotFoundError("document", Location)
	}
	return jsondoc.Decode(Location, m.data)
}

// Store encodes and keeps snap
func (m *DataStore) Store(ctx context.Context, snap datastore.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores++

	if m.storeError != nil {
		return m.storeError
	}
	data, err := jsondoc.Encode(snap)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// Helper methods for testing

// SetData directly sets the raw document (for testing malformed input)
func (m *DataStore) SetData(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// GetData returns a copy of the raw document, or nil if nothing was stored
func (m *DataStore) GetData() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil
	}
	return append([]byte(nil), m.data...)
}

// Loads returns the number of Load calls
func (m *DataStore) Loads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads
}

// Stores returns the number of Store calls
func (m *DataStore) Stores() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stores
}

// Clear forgets the stored document
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
}

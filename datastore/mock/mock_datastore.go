/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.DataStore for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/databag"
	"github.com/suparena/databag/codec"
	"github.com/suparena/databag/datastore"
	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/registry"
)

// DataStore is an in-memory datastore.DataStore. Bags are kept in their
// JSON form so loads never share payloads with saved containers.
type DataStore struct {
	mu          sync.RWMutex
	codec       *codec.Codec
	data        map[string][]byte
	loadError   error
	saveError   error
	deleteError error
	loads       int
	saves       int
}

var _ datastore.DataStore = (*DataStore)(nil)

// New creates a new mock DataStore resolving types through reg
// (registry.Default when nil).
func New(reg *registry.Registry) *DataStore {
	return &DataStore{
		codec: codec.New(reg),
		data:  make(map[string][]byte),
	}
}

// WithLoadError makes Load operations return an error
func (m *DataStore) WithLoadError(err error) *DataStore {
	m.loadError = err
	return m
}

// WithSaveError makes Save operations return an error
func (m *DataStore) WithSaveError(err error) *DataStore {
	m.saveError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// Load decodes the bag stored for owner
func (m *DataStore) Load(ctx context.Context, owner string) (*databag.Container, error) {
	if m.loadError != nil {
		return nil, m.loadError
	}

	m.mu.Lock()
	m.loads++
	raw, exists := m.data[owner]
	m.mu.Unlock()

	if !exists {
		return nil, errors.NewNotFoundError(datastore.EntityType, owner)
	}
	bag, err := m.codec.UnmarshalJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode bag for %q: %w", owner, err)
	}
	return bag, nil
}

// Save encodes and stores bag for owner
func (m *DataStore) Save(ctx context.Context, owner string, bag *databag.Container) error {
	if m.saveError != nil {
		return m.saveError
	}
	if bag == nil {
		return errors.NewValidationError("bag", "must not be nil")
	}

	raw, err := m.codec.MarshalJSON(bag)
	if err != nil {
		return fmt.Errorf("encode bag for %q: %w", owner, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.data[owner] = raw
	return nil
}

// Delete removes the bag stored for owner
func (m *DataStore) Delete(ctx context.Context, owner string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[owner]; !exists {
		return errors.NewNotFoundError(datastore.EntityType, owner)
	}
	delete(m.data, owner)
	return nil
}

// Helper methods for testing

// SetRaw stores an encoded bag directly, bypassing validation on save.
func (m *DataStore) SetRaw(owner string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[owner] = raw
}

// Raw returns the stored JSON for owner
func (m *DataStore) Raw(owner string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[owner]
	return raw, ok
}

// Owners returns the stored owners in sorted order
func (m *DataStore) Owners() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owners := make([]string, 0, len(m.data))
	for k := range m.data {
		owners = append(owners, k)
	}
	sort.Strings(owners)
	return owners
}

// Count returns the number of stored bags
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Calls returns how many Load and Save calls reached the store
func (m *DataStore) Calls() (loads, saves int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads, m.saves
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
}

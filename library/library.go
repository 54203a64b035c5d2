/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package library

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/suparena/databag"
	"github.com/suparena/databag/datastore"
	"github.com/suparena/databag/errors"
)

// Library caches open bags per owner over a DataStore. The owner map is
// safe for concurrent use; each bag is still owned by a single editing
// context at a time.
type Library struct {
	mu     sync.RWMutex
	store  datastore.DataStore
	bags   map[string]*databag.Container
	loads  singleflight.Group
	logger *zap.Logger
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// New creates a Library over store.
func New(store datastore.DataStore, opts ...Option) *Library {
	l := &Library{
		store:  store,
		bags:   make(map[string]*databag.Container),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open returns the cached bag for owner, loading it on first use. An owner
// with nothing stored gets a new empty bag. Concurrent opens of one owner
// share a single load; loads of different owners run in parallel.
func (l *Library) Open(ctx context.Context, owner string) (*databag.Container, error) {
	if bag, ok := l.cached(owner); ok {
		return bag, nil
	}

	v, err, _ := l.loads.Do(owner, func() (any, error) {
		// an earlier flight may have finished since the check above
		if bag, ok := l.cached(owner); ok {
			return bag, nil
		}

		bag, err := l.store.Load(ctx, owner)
		switch {
		case errors.IsNotFound(err):
			l.logger.Debug("no stored bag, starting empty", zap.String("owner", owner))
			bag = databag.New()
		case err != nil:
			return nil, fmt.Errorf("open bag %q: %w", owner, err)
		default:
			l.logger.Debug("bag loaded", zap.String("owner", owner), zap.Int("entries", bag.Len()))
		}

		l.mu.Lock()
		l.bags[owner] = bag
		l.mu.Unlock()
		return bag, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*databag.Container), nil
}

func (l *Library) cached(owner string) (*databag.Container, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bag, ok := l.bags[owner]
	return bag, ok
}

// Get returns an already open bag.
func (l *Library) Get(owner string) (*databag.Container, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bag, exists := l.bags[owner]
	if !exists {
		return nil, errors.NewNotFoundError("open bag", owner)
	}
	return bag, nil
}

// Save writes an open bag back to the store.
func (l *Library) Save(ctx context.Context, owner string) error {
	bag, err := l.Get(owner)
	if err != nil {
		return err
	}
	if err := l.store.Save(ctx, owner, bag); err != nil {
		return fmt.Errorf("save bag %q: %w", owner, err)
	}
	l.logger.Debug("bag saved", zap.String("owner", owner), zap.Int("entries", bag.Len()))
	return nil
}

// SaveAll writes every open bag, stopping at the first failure.
func (l *Library) SaveAll(ctx context.Context) error {
	for _, owner := range l.Owners() {
		if err := l.Save(ctx, owner); err != nil {
			return err
		}
	}
	return nil
}

// Close drops an open bag from the cache without saving it.
func (l *Library) Close(owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.bags[owner]; !exists {
		return errors.NewNotFoundError("open bag", owner)
	}
	delete(l.bags, owner)
	return nil
}

// Owners returns the owners with an open bag, sorted.
func (l *Library) Owners() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owners := make([]string, 0, len(l.bags))
	for k := range l.bags {
		owners = append(owners, k)
	}
	sort.Strings(owners)
	return owners
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package databag

import (
	"fmt"

	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/payload"
)

// Entry is a single keyed payload. A nil Payload is the absent state; the
// container stores typed nil pointers as nil.
type Entry struct {
	Key     string
	Payload payload.Payload
}

// Container is an ordered list of entries. It is not safe for concurrent
// use; one editing context owns a container at a time.
//
// Keys are not unique by construction. Set and GetOrCreate never add a
// duplicate for what they match, but the open API (Append, SetKeyAt) can.
type Container struct {
	entries []*Entry
}

// New returns an empty container.
func New() *Container {
	return &Container{}
}

// TryGet returns the payload of the first entry whose key equals key and
// whose payload is a T. T may be a concrete variant such as *IntData or a
// capability interface; entries with the right key but another variant are
// skipped.
func TryGet[T payload.Payload](c *Container, key string) (T, bool) {
	for _, e := range c.entries {
		if e.Key != key || payload.IsAbsent(e.Payload) {
			continue
		}
		if v, ok := e.Payload.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// GetOrCreate returns what TryGet finds, or appends a new entry holding
// factory() and returns that. Repeated calls with the same key and type
// return the same instance.
//
// factory must not modify c and must not return a nil payload.
func GetOrCreate[T payload.Payload](c *Container, key string, factory func() T) T {
	if v, ok := TryGet[T](c, key); ok {
		return v
	}
	if factory == nil {
		panic(fmt.Sprintf("databag: nil factory for key %q", key))
	}
	v := factory()
	if payload.IsAbsent(v) {
		panic(fmt.Sprintf("databag: factory for key %q returned a nil payload", key))
	}
	c.entries = append(c.entries, &Entry{Key: key, Payload: v})
	return v
}

// Set stores value under key. The first entry with that key has its
// payload replaced in place whatever its current variant is, so Set can
// change the type held under a key. Without a matching key a new entry is
// appended. A nil value, typed or not, leaves the entry absent.
func Set[T payload.Payload](c *Container, key string, value T) {
	p := payload.Normalize(value)
	if i := c.IndexOfKey(key); i >= 0 {
		c.entries[i].Payload = p
		return
	}
	c.entries = append(c.entries, &Entry{Key: key, Payload: p})
}

// Has reports whether any entry uses key, whatever its payload.
func (c *Container) Has(key string) bool {
	return c.IndexOfKey(key) >= 0
}

// The methods below form the open API used by editors. They address entries
// by position and bypass the type filtering of TryGet and GetOrCreate.

// Len returns the number of entries.
func (c *Container) Len() int {
	return len(c.entries)
}

// At returns the entry at index i. It panics when i is out of range.
func (c *Container) At(i int) *Entry {
	return c.entries[i]
}

// Entries returns the entries in order. The slice is a copy; the entries
// are not.
func (c *Container) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Keys returns the keys in entry order, duplicates included.
func (c *Container) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// IndexOfKey returns the index of the first entry with key, or -1.
func (c *Container) IndexOfKey(key string) int {
	for i, e := range c.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// Append adds an entry at the end without checking for duplicate keys.
func (c *Container) Append(key string, p payload.Payload) *Entry {
	e := &Entry{Key: key, Payload: payload.Normalize(p)}
	c.entries = append(c.entries, e)
	return e
}

// RemoveAt deletes the entry at index i.
func (c *Container) RemoveAt(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	copy(c.entries[i:], c.entries[i+1:])
	c.entries[len(c.entries)-1] = nil
	c.entries = c.entries[:len(c.entries)-1]
	return nil
}

// ReplacePayloadAt swaps the payload of the entry at index i.
func (c *Container) ReplacePayloadAt(i int, p payload.Payload) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.entries[i].Payload = payload.Normalize(p)
	return nil
}

// SetKeyAt renames the entry at index i.
func (c *Container) SetKeyAt(i int, key string) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.entries[i].Key = key
	return nil
}

func (c *Container) checkIndex(i int) error {
	if i < 0 || i >= len(c.entries) {
		return errors.NewValidationError("index", fmt.Sprintf("index %d out of range [0, %d)", i, len(c.entries)))
	}
	return nil
}

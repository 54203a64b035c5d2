/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package editor implements the operations an inspector needs to edit a bag
// in place: list types, add, remove, rename and retype entries. It works on
// the positional API of databag.Container and never falls back to another
// type when the requested one is unknown.
package editor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/databag"
	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/registry"
)

// DefaultKey is the key given to entries created by AddBlank.
const DefaultKey = "New Key"

// Session edits one bag.
type Session struct {
	bag    *databag.Container
	reg    *registry.Registry
	logger *zap.Logger
}

// NewSession starts editing bag with the types of reg (registry.Default when
// nil).
func NewSession(bag *databag.Container, reg *registry.Registry, logger *zap.Logger) *Session {
	if reg == nil {
		reg = registry.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{bag: bag, reg: reg, logger: logger}
}

// Bag returns the bag being edited.
func (s *Session) Bag() *databag.Container {
	return s.bag
}

// Types lists the types an entry can be switched to. The slice is the
// caller's to modify.
func (s *Session) Types() []registry.TypeDescriptor {
	types := s.reg.ListTypes()
	out := make([]registry.TypeDescriptor, len(types))
	copy(out, types)
	return out
}

// TypeIndex returns the position in Types of the payload type of entry i.
// It reports false for absent payloads and unregistered types.
func (s *Session) TypeIndex(i int) (int, bool) {
	if i < 0 || i >= s.bag.Len() {
		return -1, false
	}
	return s.reg.IndexOfPayload(s.bag.At(i).Payload)
}

// AddBlank appends an entry with DefaultKey holding a new instance of the
// first listed type, and returns its index.
func (s *Session) AddBlank() (int, error) {
	types := s.reg.ListTypes()
	if len(types) == 0 {
		return -1, fmt.Errorf("add entry: %w", errors.NewUnknownTypeError(""))
	}
	p, err := s.reg.Instantiate(types[0].ID)
	if err != nil {
		return -1, fmt.Errorf("add entry: %w", err)
	}
	s.bag.Append(DefaultKey, p)
	s.logger.Debug("entry added", zap.String("type", types[0].ID), zap.Int("index", s.bag.Len()-1))
	return s.bag.Len() - 1, nil
}

// ChangeType replaces the payload of entry i with a new default instance of
// typeID. On error the entry is left untouched.
func (s *Session) ChangeType(i int, typeID string) error {
	if i < 0 || i >= s.bag.Len() {
		return errors.NewValidationError("index", fmt.Sprintf("index %d out of range [0, %d)", i, s.bag.Len()))
	}
	p, err := s.reg.Instantiate(typeID)
	if err != nil {
		return fmt.Errorf("change type of %q: %w", s.bag.At(i).Key, err)
	}
	if err := s.bag.ReplacePayloadAt(i, p); err != nil {
		return err
	}
	s.logger.Debug("entry retyped", zap.String("key", s.bag.At(i).Key), zap.String("type", typeID))
	return nil
}

// ChangeTypeAt is ChangeType addressed by position in Types.
func (s *Session) ChangeTypeAt(i, typeIndex int) error {
	types := s.reg.ListTypes()
	if typeIndex < 0 || typeIndex >= len(types) {
		return errors.NewValidationError("typeIndex", fmt.Sprintf("type index %d out of range [0, %d)", typeIndex, len(types)))
	}
	return s.ChangeType(i, types[typeIndex].ID)
}

// Rename changes the key of entry i.
func (s *Session) Rename(i int, key string) error {
	return s.bag.SetKeyAt(i, key)
}

// Remove deletes entry i.
func (s *Session) Remove(i int) error {
	if err := s.bag.RemoveAt(i); err != nil {
		return err
	}
	s.logger.Debug("entry removed", zap.Int("index", i))
	return nil
}

// DuplicateKeys returns keys used by more than one entry, in first-seen
// order. Editors use it to flag entries Set and GetOrCreate will not reach.
func (s *Session) DuplicateKeys() []string {
	seen := make(map[string]int)
	var dups []string
	for _, key := range s.bag.Keys() {
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, key)
		}
	}
	return dups
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/databag"
)

// EntityType tags persisted bags in shared tables.
const EntityType = "DataBag"

// DataStore persists one bag per owner.
type DataStore interface {
	// Load returns the bag stored for owner, or an errors.ErrNotFound error.
	Load(ctx context.Context, owner string) (*databag.Container, error)

	// Save replaces the bag stored for owner.
	Save(ctx context.Context, owner string, bag *databag.Container) error

	// Delete removes the bag stored for owner, or returns an errors.ErrNotFound error.
	Delete(ctx context.Context, owner string) error
}

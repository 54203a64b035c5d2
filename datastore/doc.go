/*
Package datastore defines how bags are persisted per owner.

	type DataStore interface {
	    Load(ctx context.Context, owner string) (*databag.Container, error)
	    Save(ctx context.Context, owner string, bag *databag.Container) error
	    Delete(ctx context.Context, owner string) error
	}

An owner is whatever object a bag belongs to (a level, a character
template, a project asset), identified by a string.

Implementations:
  - ddb: DynamoDB, one item per owner in a single table
  - mock: in-memory store for tests

Stores never hand out the container they were given: every Load decodes a
fresh copy through the codec, so payloads are never shared between a saved
bag and a loaded one.
*/
package datastore

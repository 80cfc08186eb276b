/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/objectstore/entity"
)

// Snapshot is the persisted registry keyed by "<TypeName>.<id>".
type Snapshot map[string]entity.Record

// Backend persists a whole Snapshot at a time.
type Backend interface {
	// Load returns the persisted snapshot, or a not found error when nothing
	// has been persisted yet.
	Load(ctx context.Context) (Snapshot, error)

	// Store replaces the persisted snapshot. Callers observe either the old
	// or the new contents, never a mix.
	Store(ctx context.Context, snap Snapshot) error

	// Location names where the snapshot lives, for logs and error messages.
	Location() string
}

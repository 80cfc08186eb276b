/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package file provides the default Backend: one JSON document on the local
// filesystem, replaced through a temporary file and a rename on every store.
package file

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/datastore/jsondoc"
	"github.com/suparena/objectstore/errors"
)

// DefaultPath is the backing file used when none is configured.
const DefaultPath = "file.json"

// DataStore implements datastore.Backend on a single JSON file.
type DataStore struct {
	path string
	perm fs.FileMode
}

// New creates a file DataStore for path. The file is not touched until the
// first Load or Store.
func New(path string) *DataStore {
	if path == "" {
		path = DefaultPath
	}
	return &DataStore{path: path, perm: 0o644}
}

// WithPerm sets the permission bits of newly written files.
func (d *DataStore) WithPerm(perm fs.FileMode) *DataStore {
	d.perm = perm
	return d
}

// Location returns the backing file path.
func (d *DataStore) Location() string {
	return d.path
}

// Load reads and decodes the backing file.
func (d *DataStore) Load(ctx context.Context) (datastore.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file", d.path)
		}
		return nil, errors.NewIOFailureError("read", d.path, err)
	}
	return jsondoc.Decode(d.path, data)
}

// Store encodes snap and atomically replaces the backing file with it.
func (d *DataStore) Store(ctx context.Context, snap datastore.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := jsondoc.Encode(snap)
	if err != nil {
		return err
	}
	if err := writeAtomic(d.path, data, d.perm); err != nil {
		return errors.NewIOFailureError("write", d.path, err)
	}
	return nil
}

// writeAtomic writes data next to path and renames it into place, so readers
// see either the previous or the new contents.
func writeAtomic(path string, data []byte, perm fs.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

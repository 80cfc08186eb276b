/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqldb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/entity"
	"github.com/suparena/objectstore/errors"
)

func openTestSQLite(t *testing.T) *DataStore {
	t.Helper()
	ds, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "objects.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestSQLiteDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyTable", func(t *testing.T) {
		ds := openTestSQLite(t)
		_, err := ds.Load(ctx)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("StoreAndLoad", func(t *testing.T) {
		ds := openTestSQLite(t)

		user := entity.NewBase("User")
		require.NoError(t, user.Set("email", "a@b.c"))
		place := entity.NewBase("Place")
		require.NoError(t, place.Set("number_rooms", 3))
		snap := datastore.Snapshot{
			entity.Key("User", user.ID()):   user.ToRecord(),
			entity.Key("Place", place.ID()): place.ToRecord(),
		}
		require.NoError(t, ds.Store(ctx, snap))

		back, err := ds.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, snap, back)
	})

	t.Run("StoreReplaces", func(t *testing.T) {
		ds := openTestSQLite(t)

		a := entity.NewBase("User")
		b := entity.NewBase("User")
		require.NoError(t, ds.Store(ctx, datastore.Snapshot{entity.Key("User", a.ID()): a.ToRecord()}))
		require.NoError(t, ds.Store(ctx, datastore.Snapshot{entity.Key("User", b.ID()): b.ToRecord()}))

		back, err := ds.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, back, 1)
		assert.Contains(t, back, entity.Key("User", b.ID()))
	})

	t.Run("MalformedRow", func(t *testing.T) {
		ds := openTestSQLite(t)
		_, err := ds.db.ExecContext(ctx, "INSERT INTO objects (obj_key, type_name, record) VALUES (?, ?, ?)",
			"User.1", "User", `{"id": "1"}`)
		require.NoError(t, err)

		_, err = ds.Load(ctx)
		assert.True(t, errors.IsMalformedStore(err))
	})

	t.Run("InvalidTable", func(t *testing.T) {
		_, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "x.db"), "objects; DROP TABLE x")
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("ReopenKeepsData", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "objects.db")
		ds, err := OpenSQLite(ctx, path, "entities")
		require.NoError(t, err)
		b := entity.NewBase("State")
		require.NoError(t, ds.Store(ctx, datastore.Snapshot{entity.Key("State", b.ID()): b.ToRecord()}))
		require.NoError(t, ds.Close())

		ds, err = OpenSQLite(ctx, path, "entities")
		require.NoError(t, err)
		defer ds.Close()
		back, err := ds.Load(ctx)
		require.NoError(t, err)
		assert.Contains(t, back, entity.Key("State", b.ID()))
	})
}

func TestPostgresPlaceholders(t *testing.T) {
	assert.Equal(t, "$3", Postgres.Placeholder(3))
	assert.Equal(t, "?", SQLite.Placeholder(3))
}

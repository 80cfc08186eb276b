/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"testing"

	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/datastore/mock"
	"github.com/suparena/objectstore/entity"
	"github.com/suparena/objectstore/errors"
)

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		mockStore := mock.New()

		// Nothing stored yet
		_, err := mockStore.Load(ctx)
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}

		b := entity.NewBase("User")
		key := entity.Key("User", b.ID())
		if err := mockStore.Store(ctx, datastore.Snapshot{key: b.ToRecord()}); err != nil {
			t.Fatalf("Store failed: %v", err)
		}

		snap, err := mockStore.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if snap[key]["id"] != b.ID() {
			t.Fatalf("Loaded record mismatch: %+v", snap[key])
		}

		if mockStore.Loads() != 2 || mockStore.Stores() != 1 {
			t.Fatalf("Unexpected call counts: loads=%d stores=%d", mockStore.Loads(), mockStore.Stores())
		}

		mockStore.Clear()
		if _, err := mockStore.Load(ctx); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found after Clear, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		mockStore := mock.New()

		storeErr := errors.NewIOFailureError("write", mock.Location, context.DeadlineExceeded)
		mockStore.WithStoreError(storeErr)
		if err := mockStore.Store(ctx, datastore.Snapshot{}); err != storeErr {
			t.Fatalf("Expected store error, got: %v", err)
		}
		if mockStore.GetData() != nil {
			t.Fatal("Failed store must not change the document")
		}

		loadErr := errors.NewIOFailureError("read", mock.Location, context.DeadlineExceeded)
		mockStore.WithLoadError(loadErr)
		if _, err := mockStore.Load(ctx); err != loadErr {
			t.Fatalf("Expected load error, got: %v", err)
		}
	})

	t.Run("MalformedData", func(t *testing.T) {
		mockStore := mock.New()
		mockStore.SetData([]byte(`{"User.1": 3}`))

		if _, err := mockStore.Load(ctx); !errors.IsMalformedStore(err) {
			t.Fatalf("Expected malformed store error, got: %v", err)
		}
	})
}

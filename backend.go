/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"context"
	"fmt"

	"github.com/suparena/objectstore/config"
	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/datastore/ddb"
	"github.com/suparena/objectstore/datastore/file"
	"github.com/suparena/objectstore/datastore/s3"
	"github.com/suparena/objectstore/datastore/sqldb"
	"github.com/suparena/objectstore/errors"
	"github.com/suparena/objectstore/registry"
)

// OpenBackend connects to the backend selected by cfg.
func OpenBackend(ctx context.Context, cfg *config.Config) (datastore.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendFile:
		return file.New(cfg.File.Path), nil

	case config.BackendSQLite:
		return sqldb.OpenSQLite(ctx, cfg.SQLite.Path, cfg.SQLite.Table)

	case config.BackendPostgres:
		return sqldb.OpenPostgres(ctx, cfg.Postgres.URL, cfg.Postgres.Table)

	case config.BackendDynamoDB:
		client, err := ddb.NewClient(ctx, ddb.ClientConfig{
			Region:    cfg.DynamoDB.Region,
			AccessKey: cfg.DynamoDB.AccessKey,
			SecretKey: cfg.DynamoDB.SecretKey,
			Endpoint:  cfg.DynamoDB.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return ddb.New(client, cfg.DynamoDB.Table), nil

	case config.BackendS3:
		s3cfg := s3.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Region:    cfg.S3.Region,
			UseSSL:    cfg.S3.UseSSL,
			Bucket:    cfg.S3.Bucket,
			ObjectKey: cfg.S3.Key,
		}
		client, err := s3.NewClient(s3cfg)
		if err != nil {
			return nil, errors.NewInvalidArgumentError("s3", err.Error())
		}
		if err := s3.EnsureBucket(ctx, client, s3cfg.Bucket, s3cfg.Region); err != nil {
			return nil, err
		}
		return s3.New(client, s3cfg.Bucket, s3cfg.ObjectKey), nil
	}
	return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
}

// Open connects to the configured backend and returns an empty Store on it.
// Call Reload to read what is persisted.
func Open(ctx context.Context, cfg *config.Config, types *registry.TypeRegistry, opts ...Option) (*Store, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(backend, types, opts...), nil
}

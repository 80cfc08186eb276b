/*
Package datastore defines the durable side of a Store.

A Backend reads and writes a whole Snapshot, the map from composite keys to
records that the Store produces on save and consumes on reload:

	type Backend interface {
	    Load(ctx context.Context) (Snapshot, error)
	    Store(ctx context.Context, snap Snapshot) error
	    Location() string
	}

Load returns an error satisfying errors.IsNotFound when nothing has been
persisted yet; the Store treats that as an empty, successful reload.

Implementations:
  - file: a single JSON document on the local filesystem (the default)
  - s3: the same JSON document as one object in an S3 or MinIO bucket
  - sqldb: one row per record in SQLite or PostgreSQL
  - ddb: one item per record in a DynamoDB table
  - mock: in-memory backend with error injection for testing

The jsondoc subpackage holds the document codec shared by all of them.
*/
package datastore

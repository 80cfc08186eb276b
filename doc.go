/*
Package objectstore keeps a registry of typed entities in memory and persists
the whole registry as one document.

Every entity embeds *entity.Base, which supplies a UUID, created_at and
updated_at with microsecond precision, and ad-hoc attributes. The Store keys
entities by "<TypeName>.<id>"; Save writes all of them at once and Reload
rebuilds each one as its concrete type through a registry.TypeRegistry.

Backends:
  - datastore/file: a single JSON file, replaced atomically (the default)
  - datastore/sqldb: one row per entity in SQLite or Postgres
  - datastore/ddb: one DynamoDB item per entity
  - datastore/s3: a single JSON object in an S3-compatible bucket

Basic Usage:

	types := registry.NewTypeRegistry()
	models.Register(types)

	store := objectstore.New(file.New("file.json"), types)
	if err := store.Reload(ctx); err != nil {
	    return err
	}

	review := models.NewReview(store)
	review.SetText("great place")
	err := review.Save(ctx) // refreshes updated_at and saves every entity

	again, err := objectstore.Find[*models.Review](store, models.ReviewType, review.ID())

Errors carry one of the kinds in package errors (NotFound, InvalidArgument,
UnknownType, MalformedStore, IOFailure) and are checked with errors.IsXxx.
*/
package objectstore

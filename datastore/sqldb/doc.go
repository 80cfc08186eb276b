/*
Package sqldb provides a Backend that keeps one row per record in a SQL table.

	CREATE TABLE IF NOT EXISTS objects (
	    obj_key   TEXT PRIMARY KEY,
	    type_name TEXT NOT NULL,
	    record    TEXT NOT NULL   -- JSONB on PostgreSQL
	);

Store replaces the table contents inside one transaction, so a reload sees
either the previous or the new snapshot. Two dialects are supported:

	ds, err := sqldb.OpenSQLite(ctx, "objects.db", "objects")          // modernc.org/sqlite
	ds, err := sqldb.OpenPostgres(ctx, "postgres://...", "objects")    // pgx stdlib driver

An empty table loads as not found, the same as a missing file.
*/
package sqldb

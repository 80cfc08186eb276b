/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/datastore/jsondoc"
	"github.com/suparena/objectstore/errors"
)

// DefaultTable is used when no table name is configured.
const DefaultTable = "objects"

// Dialect captures the SQL differences between the supported databases.
type Dialect struct {
	Name        string
	DriverName  string
	RecordType  string
	Placeholder func(n int) string
}

var (
	// SQLite uses modernc.org/sqlite.
	SQLite = Dialect{
		Name:        "sqlite",
		DriverName:  "sqlite",
		RecordType:  "TEXT",
		Placeholder: func(int) string { return "?" },
	}

	// Postgres uses the pgx database/sql driver.
	Postgres = Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		RecordType:  "JSONB",
		Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DataStore implements datastore.Backend on a SQL table.
type DataStore struct {
	db       *sql.DB
	dialect  Dialect
	table    string
	location string
}

// OpenSQLite opens (creating if needed) a SQLite database file.
func OpenSQLite(ctx context.Context, path, table string) (*DataStore, error) {
	db, err := sql.Open(SQLite.DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; avoids SQLITE_BUSY between the pool's connections
	db.SetMaxOpenConns(1)

	ds, err := New(ctx, db, SQLite, table, "sqlite:"+path)
	if err != nil {
		db.Close()
		return nil, err
	}
	return ds, nil
}

// OpenPostgres connects to PostgreSQL through the pgx driver.
func OpenPostgres(ctx context.Context, url, table string) (*DataStore, error) {
	db, err := sql.Open(Postgres.DriverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewIOFailureError("connect", "postgres", err)
	}

	ds, err := New(ctx, db, Postgres, table, "postgres:"+table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return ds, nil
}

// New wraps an open database and creates the table if it does not exist.
func New(ctx context.Context, db *sql.DB, dialect Dialect, table, location string) (*DataStore, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tablePattern.MatchString(table) {
		return nil, errors.NewInvalidArgumentError("table", fmt.Sprintf("%q is not a valid table name", table))
	}

	ds := &DataStore{db: db, dialect: dialect, table: table, location: location}
	if err := ds.migrate(ctx); err != nil {
		return nil, err
	}
	return ds, nil
}

func (d *DataStore) migrate(ctx context.Context) error {
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		obj_key TEXT PRIMARY KEY,
		type_name TEXT NOT NULL,
		record %s NOT NULL
	)`, d.table, d.dialect.RecordType)

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.NewIOFailureError("migrate", d.location, err)
	}
	return nil
}

// Location identifies the database and table.
func (d *DataStore) Location() string {
	return d.location
}

// Load reads every row of the table.
func (d *DataStore) Load(ctx context.Context) (datastore.Snapshot, error) {
	query := fmt.Sprintf("SELECT obj_key, record FROM %s", d.table)
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewIOFailureError("read", d.location, err)
	}
	defer rows.Close()

	snap := make(datastore.Snapshot)
	for rows.Next() {
		var key, body string
		if err := rows.Scan(&key, &body); err != nil {
			return nil, errors.NewIOFailureError("read", d.location, err)
		}
		rec, err := jsondoc.DecodeRecord(d.location, key, []byte(body))
		if err != nil {
			return nil, err
		}
		snap[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIOFailureError("read", d.location, err)
	}

	if len(snap) == 0 {
		return nil, errors.NewNotFoundError("table", d.location)
	}
	return snap, nil
}

// Store replaces the table contents with snap in one transaction.
func (d *DataStore) Store(ctx context.Context, snap datastore.Snapshot) error {
	keys := make([]string, 0, len(snap))
	bodies := make(map[string][]byte, len(snap))
	for key, rec := range snap {
		body, err := jsondoc.EncodeRecord(rec)
		if err != nil {
			return err
		}
		keys = append(keys, key)
		bodies[key] = body
	}
	sort.Strings(keys)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewIOFailureError("write", d.location, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", d.table)); err != nil {
		return errors.NewIOFailureError("write", d.location, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (obj_key, type_name, record) VALUES (%s, %s, %s)",
		d.table, d.dialect.Placeholder(1), d.dialect.Placeholder(2), d.dialect.Placeholder(3))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return errors.NewIOFailureError("write", d.location, err)
	}
	defer stmt.Close()

	for _, key := range keys {
		typeName, _ := snap[key].TypeName()
		if _, err := stmt.ExecContext(ctx, key, typeName, string(bodies[key])); err != nil {
			return errors.NewIOFailureError("write", d.location, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewIOFailureError("commit", d.location, err)
	}
	return nil
}

// Close closes the underlying database.
func (d *DataStore) Close() error {
	return d.db.Close()
}

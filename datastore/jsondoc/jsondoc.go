/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package jsondoc encodes and decodes snapshots as a single JSON object of
// objects, validating the shape against an embedded JSON schema.
package jsondoc

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/entity"
	"github.com/suparena/objectstore/errors"
)

//go:embed snapshot.schema.json
var schemaBytes []byte

const schemaURL = "snapshot.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Encode renders snap as one JSON object keyed by composite key.
func Encode(snap datastore.Snapshot) ([]byte, error) {
	if snap == nil {
		snap = datastore.Snapshot{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("", fmt.Sprintf("snapshot is not JSON encodable: %v", err))
	}
	return data, nil
}

// Decode parses a document written by Encode. Anything that is not a JSON
// object of objects carrying a string "__class__" is a malformed store.
func Decode(location string, data []byte) (datastore.Snapshot, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading snapshot schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewMalformedStoreError(location, "invalid JSON", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, errors.NewMalformedStoreError(location, "unexpected document shape", err)
	}

	// validated: object of objects
	top := inst.(map[string]any)
	snap := make(datastore.Snapshot, len(top))
	for key, v := range top {
		snap[key] = entity.Record(entity.NormalizeValue(v).(map[string]any))
	}
	return snap, nil
}

// EncodeRecord renders a single record, for backends that store one row or
// item per record.
func EncodeRecord(rec entity.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("", fmt.Sprintf("record is not JSON encodable: %v", err))
	}
	return data, nil
}

// DecodeRecord parses and validates a single record stored under key.
func DecodeRecord(location, key string, data []byte) (entity.Record, error) {
	doc, err := json.Marshal(map[string]json.RawMessage{key: data})
	if err != nil {
		return nil, errors.NewMalformedStoreError(location, fmt.Sprintf("record %q is not valid JSON", key), err)
	}
	snap, err := Decode(location, doc)
	if err != nil {
		return nil, err
	}
	return snap[key], nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/objectstore/errors"
)

// run executes storectl against a file store in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(dir, "storectl.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := "backend: file\nfile:\n  path: " + filepath.Join(dir, "file.json") + "\n"
		require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	}

	var out bytes.Buffer
	err := (&app{}).execute(append([]string{"--config", cfgPath}, args...), &out)
	return out.String(), err
}

func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestVersion(t *testing.T) {
	dir := workdir(t)
	out, err := run(t, dir, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "storectl: objectstore ")

	out, err = run(t, dir, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)

	_, err = os.Stat(filepath.Join(dir, "file.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestCreateShowUpdateDestroy(t *testing.T) {
	dir := workdir(t)

	out, err := run(t, dir, "create", "Place", "name=loft", "number_rooms=3", "latitude=37.77")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, dir, "show", "Place", id, "--json")
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Place", rec["__class__"])
	assert.Equal(t, "loft", rec["name"])
	assert.Equal(t, float64(3), rec["number_rooms"])
	assert.Equal(t, 37.77, rec["latitude"])

	_, err = run(t, dir, "update", "Place", id, "name", `"attic"`)
	require.NoError(t, err)
	out, err = run(t, dir, "show", "Place", id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[Place] ("+id+") "))
	assert.Contains(t, out, "attic")

	out, err = run(t, dir, "count", "Place")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = run(t, dir, "destroy", "Place", id)
	require.NoError(t, err)
	_, err = run(t, dir, "show", "Place", id)
	assert.True(t, errors.IsNotFound(err))
}

func TestListAndCheck(t *testing.T) {
	dir := workdir(t)
	for _, typ := range []string{"User", "User", "State"} {
		_, err := run(t, dir, "create", typ)
		require.NoError(t, err)
	}

	out, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	out, err = run(t, dir, "list", "User")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "[User]"))

	out, err = run(t, dir, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "3 objects")
	assert.Regexp(t, `State\s+1`, out)
	assert.Regexp(t, `User\s+2`, out)
}

func TestCall(t *testing.T) {
	dir := workdir(t)
	out, err := run(t, dir, "create", "Review", "text=cozy")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	out, err = run(t, dir, "call", "Review", id, "to_record")
	require.NoError(t, err)
	assert.Contains(t, out, `"text":"cozy"`)

	_, err = run(t, dir, "call", "Review", id, "save", "extra")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = run(t, dir, "call", "Review", id, "explode")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestUserErrors(t *testing.T) {
	dir := workdir(t)

	_, err := run(t, dir, "create", "Spaceship")
	assert.True(t, errors.IsUnknownType(err))

	_, err = run(t, dir, "list", "Spaceship")
	assert.True(t, errors.IsUnknownType(err))

	_, err = run(t, dir, "create", "User", "noequals")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = run(t, dir, "create", "User", "id=forged")
	assert.True(t, errors.IsInvalidArgument(err))

	out, err := run(t, dir, "count", "User")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestMalformedDocument(t *testing.T) {
	dir := workdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.json"), []byte(`{"User.1": {}}`), 0o644))

	_, err := run(t, dir, "check")
	assert.True(t, errors.IsMalformedStore(err))
}

func TestStoreReleasedOnFailure(t *testing.T) {
	dir := workdir(t)
	cfg := "backend: sqlite\nsqlite:\n  path: " + filepath.Join(dir, "objects.db") + "\n"
	cfgPath := filepath.Join(dir, "storectl.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{"unknown type", []string{"show", "Ghost", "1"}, errors.IsUnknownType},
		{"missing object", []string{"destroy", "User", "nope"}, errors.IsNotFound},
		{"bad argument", []string{"create", "User", "noequals"}, errors.IsInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &app{}
			var out bytes.Buffer
			err := a.execute(append([]string{"--config", cfgPath}, tt.args...), &out)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.Nil(t, a.store)
			assert.Nil(t, a.logger)
		})
	}
}

func TestStoreReleasedWhenReloadFails(t *testing.T) {
	dir := workdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.json"), []byte(`[]`), 0o644))
	cfgPath := filepath.Join(dir, "storectl.yaml")
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte("backend: file\nfile:\n  path: "+filepath.Join(dir, "file.json")+"\n"), 0o644))

	a := &app{}
	var out bytes.Buffer
	err := a.execute([]string{"--config", cfgPath, "check"}, &out)
	assert.True(t, errors.IsMalformedStore(err))
	assert.Nil(t, a.store)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, int64(3), parseValue("3"))
	assert.Equal(t, 2.5, parseValue("2.5"))
	assert.Equal(t, "3", parseValue(`"3"`))
	assert.Equal(t, "hello world", parseValue("hello world"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, []any{"a", int64(1)}, parseValue(`["a", 1]`))
	assert.Equal(t, "1 2", parseValue("1 2"))
}

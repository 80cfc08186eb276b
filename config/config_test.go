/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/objectstore/errors"
)

// chdir moves into an empty directory so no stray .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "file.json", cfg.File.Path)
}

func TestLoadYAML(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "objectstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: sqlite
sqlite:
  path: /var/lib/objects.db
  table: things
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/var/lib/objects.db", cfg.SQLite.Path)
	assert.Equal(t, "things", cfg.SQLite.Table)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched sections keep their defaults
	assert.Equal(t, "file.json", cfg.File.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "objectstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: file\n"), 0o644))

	t.Setenv("OBJECTSTORE_BACKEND", "s3")
	t.Setenv("OBJECTSTORE_S3_ENDPOINT", "localhost:9000")
	t.Setenv("OBJECTSTORE_S3_BUCKET", "objects")
	t.Setenv("OBJECTSTORE_S3_USE_SSL", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendS3, cfg.Backend)
	assert.Equal(t, "localhost:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UseSSL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("OBJECTSTORE_FILE_PATH=from-dotenv.json\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("OBJECTSTORE_FILE_PATH") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", cfg.File.Path)
}

func TestLoadErrors(t *testing.T) {
	dir := chdir(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.IsIOFailure(err))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("backend: [\n"), 0o644))
	_, err = Load(bad)
	assert.True(t, errors.IsInvalidArgument(err))

	t.Setenv("OBJECTSTORE_LOG_DEVELOPMENT", "maybe")
	_, err = Load("")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"unknown backend", func(c *Config) { c.Backend = "redis" }, true},
		{"file without path", func(c *Config) { c.File.Path = "" }, true},
		{"postgres without url", func(c *Config) { c.Backend = BackendPostgres }, true},
		{"postgres", func(c *Config) {
			c.Backend = BackendPostgres
			c.Postgres.URL = "postgres://localhost/objects"
		}, false},
		{"dynamodb without table", func(c *Config) { c.Backend = BackendDynamoDB }, true},
		{"dynamodb", func(c *Config) {
			c.Backend = BackendDynamoDB
			c.DynamoDB.Table = "objects"
		}, false},
		{"s3 without bucket", func(c *Config) {
			c.Backend = BackendS3
			c.S3.Endpoint = "localhost:9000"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(LogConfig{Level: "error"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}

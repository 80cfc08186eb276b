/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the backend selection and logging settings.
//
// Values are resolved in this order, later sources winning:
//
//  1. Default()
//  2. the YAML file passed to Load, if any
//  3. a .env file in the working directory, if present
//  4. OBJECTSTORE_* environment variables
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/objectstore/errors"
)

// Backend names accepted in Config.Backend.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
	BackendS3       = "s3"
)

// Config selects and configures one storage backend.
type Config struct {
	Backend  string         `yaml:"backend"`
	File     FileConfig     `yaml:"file"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	S3       S3Config       `yaml:"s3"`
	Log      LogConfig      `yaml:"log"`
}

type FileConfig struct {
	Path string `yaml:"path"`
}

type SQLiteConfig struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

type PostgresConfig struct {
	URL   string `yaml:"url"`
	Table string `yaml:"table"`
}

type DynamoDBConfig struct {
	Table     string `yaml:"table"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// LogConfig controls the zap logger built by NewLogger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a file backend on ./file.json that logs warnings and up.
func Default() *Config {
	return &Config{
		Backend:  BackendFile,
		File:     FileConfig{Path: "file.json"},
		SQLite:   SQLiteConfig{Path: "objects.db"},
		DynamoDB: DynamoDBConfig{Region: "us-east-1"},
		S3:       S3Config{Region: "us-east-1", Key: "file.json"},
		Log:      LogConfig{Level: "warn"},
	}
}

// Load builds the effective configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewIOFailureError("read config", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewInvalidArgumentError("config", fmt.Sprintf("parse %s: %v", path, err))
		}
	}

	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.NewInvalidArgumentError(".env", err.Error())
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"OBJECTSTORE_BACKEND":           &c.Backend,
		"OBJECTSTORE_FILE_PATH":         &c.File.Path,
		"OBJECTSTORE_SQLITE_PATH":       &c.SQLite.Path,
		"OBJECTSTORE_SQLITE_TABLE":      &c.SQLite.Table,
		"OBJECTSTORE_POSTGRES_URL":      &c.Postgres.URL,
		"OBJECTSTORE_POSTGRES_TABLE":    &c.Postgres.Table,
		"OBJECTSTORE_DYNAMODB_TABLE":    &c.DynamoDB.Table,
		"OBJECTSTORE_DYNAMODB_REGION":   &c.DynamoDB.Region,
		"OBJECTSTORE_DYNAMODB_ENDPOINT": &c.DynamoDB.Endpoint,
		"AWS_ACCESS_KEY":                &c.DynamoDB.AccessKey,
		"AWS_SECRET_KEY":                &c.DynamoDB.SecretKey,
		"OBJECTSTORE_S3_ENDPOINT":       &c.S3.Endpoint,
		"OBJECTSTORE_S3_REGION":         &c.S3.Region,
		"OBJECTSTORE_S3_BUCKET":         &c.S3.Bucket,
		"OBJECTSTORE_S3_KEY":            &c.S3.Key,
		"OBJECTSTORE_S3_ACCESS_KEY":     &c.S3.AccessKey,
		"OBJECTSTORE_S3_SECRET_KEY":     &c.S3.SecretKey,
		"OBJECTSTORE_LOG_LEVEL":         &c.Log.Level,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"OBJECTSTORE_S3_USE_SSL":      &c.S3.UseSSL,
		"OBJECTSTORE_LOG_DEVELOPMENT": &c.Log.Development,
	}
	for name, dst := range bools {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.NewInvalidArgumentError(name, fmt.Sprintf("invalid boolean %q", v))
		}
		*dst = b
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.File.Path == "" {
			return errors.NewInvalidArgumentError("file.path", "is required")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.NewInvalidArgumentError("sqlite.path", "is required")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return errors.NewInvalidArgumentError("postgres.url", "is required")
		}
	case BackendDynamoDB:
		if c.DynamoDB.Table == "" {
			return errors.NewInvalidArgumentError("dynamodb.table", "is required")
		}
		if c.DynamoDB.Region == "" {
			return errors.NewInvalidArgumentError("dynamodb.region", "is required")
		}
	case BackendS3:
		if c.S3.Endpoint == "" {
			return errors.NewInvalidArgumentError("s3.endpoint", "is required")
		}
		if c.S3.Bucket == "" {
			return errors.NewInvalidArgumentError("s3.bucket", "is required")
		}
	default:
		return errors.NewInvalidArgumentError("backend", fmt.Sprintf("unknown backend %q", c.Backend))
	}
	return nil
}

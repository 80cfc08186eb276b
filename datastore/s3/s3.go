/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package s3 stores the snapshot document as a single object in an
// S3-compatible bucket. A PUT of one object is atomic, so readers see either
// the previous or the new document.
package s3

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/datastore/jsondoc"
	"github.com/suparena/objectstore/errors"
)

// DefaultObjectKey is the object name used when none is configured.
const DefaultObjectKey = "file.json"

// Config describes the bucket and how to reach it.
type Config struct {
	Endpoint  string // host[:port], no scheme
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
	Bucket    string
	ObjectKey string
}

// Validate checks that the connection settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return stderrors.New("endpoint is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("endpoint must not include scheme: %q", c.Endpoint)
	}
	if strings.TrimSpace(c.AccessKey) == "" {
		return stderrors.New("access key is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return stderrors.New("secret key is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return stderrors.New("bucket is required")
	}
	return nil
}

// NewClient builds a MinIO client for cfg.
func NewClient(cfg Config) (*minio.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// EnsureBucket creates the bucket if it does not exist yet.
func EnsureBucket(ctx context.Context, client *minio.Client, bucket, region string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return errors.NewIOFailureError("stat bucket", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return errors.NewIOFailureError("create bucket", bucket, err)
	}
	return nil
}

// DataStore implements datastore.Backend on one object.
type DataStore struct {
	client *minio.Client
	bucket string
	key    string
}

// New returns a DataStore for bucket/key. An empty key means DefaultObjectKey.
func New(client *minio.Client, bucket, key string) *DataStore {
	if key == "" {
		key = DefaultObjectKey
	}
	return &DataStore{client: client, bucket: bucket, key: key}
}

// Location returns the s3:// URL of the object.
func (d *DataStore) Location() string {
	return "s3://" + d.bucket + "/" + d.key
}

// Load downloads and decodes the object. A missing object or bucket is
// reported as not found.
func (d *DataStore) Load(ctx context.Context) (datastore.Snapshot, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, d.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, d.readError(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, d.readError(err)
	}
	return jsondoc.Decode(d.Location(), data)
}

// Store uploads the encoded snapshot, replacing the object.
func (d *DataStore) Store(ctx context.Context, snap datastore.Snapshot) error {
	data, err := jsondoc.Encode(snap)
	if err != nil {
		return err
	}
	_, err = d.client.PutObject(ctx, d.bucket, d.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return errors.NewIOFailureError("write", d.Location(), err)
	}
	return nil
}

func (d *DataStore) readError(err error) error {
	if isMissing(err) {
		return errors.NewNotFoundError("object", d.Location())
	}
	return errors.NewIOFailureError("read", d.Location(), err)
}

func isMissing(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/objectstore/datastore"
	"github.com/suparena/objectstore/datastore/jsondoc"
	"github.com/suparena/objectstore/errors"
)

// API is the subset of the DynamoDB client the DataStore uses.
type API interface {
	sdk.ScanAPIClient
	BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error)
}

// KeySchema names the attributes added to every item.
type KeySchema struct {
	// PartitionKey holds the composite "<TypeName>.<id>" key.
	PartitionKey string
	// TypeAttribute holds the type tag, for queries outside this package.
	TypeAttribute string
}

// DefaultKeySchema matches a table with a string partition key named "PK".
var DefaultKeySchema = KeySchema{
	PartitionKey:  "PK",
	TypeAttribute: "EntityType",
}

// maximum number of requests DynamoDB accepts in one BatchWriteItem call
const maxBatchSize = 25

// Options configures writes.
type Options struct {
	Keys         KeySchema
	BatchSize    int           // Requests per BatchWriteItem call (default: 25)
	MaxRetries   int           // Retries for unprocessed items (default: 3)
	RetryBackoff time.Duration // Backoff between retries (default: 100ms)
}

// Option is a functional option for configuring the DataStore
type Option func(*Options)

// DefaultOptions returns default options
func DefaultOptions() Options {
	return Options{
		Keys:         DefaultKeySchema,
		BatchSize:    maxBatchSize,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
	}
}

// WithKeySchema sets the attribute names used for the key and type tag
func WithKeySchema(keys KeySchema) Option {
	return func(o *Options) {
		o.Keys = keys
	}
}

// WithBatchSize sets the number of write requests per batch
func WithBatchSize(size int) Option {
	return func(o *Options) {
		o.BatchSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts for unprocessed items
func WithMaxRetries(retries int) Option {
	return func(o *Options) {
		o.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) Option {
	return func(o *Options) {
		o.RetryBackoff = backoff
	}
}

// ClientConfig holds what is needed to reach a DynamoDB endpoint.
type ClientConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// NewClient initializes a DynamoDB client. Static credentials are used when
// both keys are set; otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg ClientConfig) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// DataStore implements datastore.Backend with one DynamoDB item per record.
type DataStore struct {
	client    API
	tableName string
	opts      Options
}

// New constructs a DataStore on an existing table.
func New(client API, tableName string, opts ...Option) *DataStore {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.BatchSize <= 0 || options.BatchSize > maxBatchSize {
		options.BatchSize = maxBatchSize
	}
	return &DataStore{client: client, tableName: tableName, opts: options}
}

// Location identifies the table.
func (d *DataStore) Location() string {
	return "dynamodb:" + d.tableName
}

// Load scans the whole table.
func (d *DataStore) Load(ctx context.Context) (datastore.Snapshot, error) {
	items, err := d.scan(ctx, false)
	if err != nil {
		return nil, err
	}

	pk, typeAttr := d.opts.Keys.PartitionKey, d.opts.Keys.TypeAttribute
	snap := make(datastore.Snapshot, len(items))
	for _, item := range items {
		key, err := d.itemKey(item)
		if err != nil {
			return nil, err
		}

		var raw map[string]any
		err = attributevalue.UnmarshalMapWithOptions(item, &raw, func(o *attributevalue.DecoderOptions) {
			o.UseNumber = true
		})
		if err != nil {
			return nil, errors.NewMalformedStoreError(d.Location(), fmt.Sprintf("item %q cannot be unmarshaled", key), err)
		}
		delete(raw, pk)
		delete(raw, typeAttr)

		body, err := json.Marshal(jsonNumbers(raw))
		if err != nil {
			return nil, errors.NewMalformedStoreError(d.Location(), fmt.Sprintf("item %q is not JSON encodable", key), err)
		}
		rec, err := jsondoc.DecodeRecord(d.Location(), key, body)
		if err != nil {
			return nil, err
		}
		snap[key] = rec
	}

	if len(snap) == 0 {
		return nil, errors.NewNotFoundError("table", d.Location())
	}
	return snap, nil
}

// Store puts every record of snap and deletes items whose keys are no longer
// present. DynamoDB batches are not transactional: a failure part way leaves
// a mix of old and new items, which the next successful Store repairs.
func (d *DataStore) Store(ctx context.Context, snap datastore.Snapshot) error {
	pk, typeAttr := d.opts.Keys.PartitionKey, d.opts.Keys.TypeAttribute

	keys := make([]string, 0, len(snap))
	for key := range snap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	requests := make([]types.WriteRequest, 0, len(keys))
	for _, key := range keys {
		rec := snap[key]
		if _, ok := rec[pk]; ok {
			return errors.NewInvalidArgumentError(pk, fmt.Sprintf("record %q uses an attribute reserved by the table", key))
		}
		if _, ok := rec[typeAttr]; ok {
			return errors.NewInvalidArgumentError(typeAttr, fmt.Sprintf("record %q uses an attribute reserved by the table", key))
		}
		typeName, _ := rec.TypeName()

		item, err := attributevalue.MarshalMap(map[string]any(rec))
		if err != nil {
			return errors.NewInvalidArgumentError("", fmt.Sprintf("failed to marshal record %q: %v", key, err))
		}
		item[pk] = &types.AttributeValueMemberS{Value: key}
		item[typeAttr] = &types.AttributeValueMemberS{Value: typeName}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	existing, err := d.scan(ctx, true)
	if err != nil {
		return err
	}
	for _, item := range existing {
		key, err := d.itemKey(item)
		if err != nil {
			return err
		}
		if _, keep := snap[key]; keep {
			continue
		}
		requests = append(requests, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
			Key: map[string]types.AttributeValue{pk: &types.AttributeValueMemberS{Value: key}},
		}})
	}

	for start := 0; start < len(requests); start += d.opts.BatchSize {
		end := min(start+d.opts.BatchSize, len(requests))
		if err := d.writeBatch(ctx, requests[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// writeBatch sends one batch, retrying unprocessed items with a fixed backoff.
func (d *DataStore) writeBatch(ctx context.Context, batch []types.WriteRequest) error {
	pending := batch
	for attempt := 0; ; attempt++ {
		out, err := d.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{d.tableName: pending},
		})
		if err != nil {
			return errors.NewIOFailureError("write", d.Location(), err)
		}

		pending = out.UnprocessedItems[d.tableName]
		if len(pending) == 0 {
			return nil
		}
		if attempt >= d.opts.MaxRetries {
			return errors.NewIOFailureError("write", d.Location(),
				fmt.Errorf("%d items unprocessed after %d retries", len(pending), attempt))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.opts.RetryBackoff):
		}
	}
}

// scan reads every item of the table, optionally only the partition key.
func (d *DataStore) scan(ctx context.Context, keysOnly bool) ([]map[string]types.AttributeValue, error) {
	input := &sdk.ScanInput{TableName: aws.String(d.tableName)}
	if keysOnly {
		input.ProjectionExpression = aws.String("#pk")
		input.ExpressionAttributeNames = map[string]string{"#pk": d.opts.Keys.PartitionKey}
	}

	var items []map[string]types.AttributeValue
	paginator := sdk.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.NewIOFailureError("scan", d.Location(), err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// jsonNumbers replaces attributevalue.Number with json.Number so numbers are
// written back verbatim instead of going through float64.
func jsonNumbers(v any) any {
	switch tv := v.(type) {
	case attributevalue.Number:
		return json.Number(tv)
	case map[string]any:
		for k, e := range tv {
			tv[k] = jsonNumbers(e)
		}
	case []any:
		for i, e := range tv {
			tv[i] = jsonNumbers(e)
		}
	}
	return v
}

func (d *DataStore) itemKey(item map[string]types.AttributeValue) (string, error) {
	pk := d.opts.Keys.PartitionKey
	av, ok := item[pk].(*types.AttributeValueMemberS)
	if !ok || av.Value == "" {
		return "", errors.NewMalformedStoreError(d.Location(), fmt.Sprintf("item without string %s attribute", pk), nil)
	}
	return av.Value, nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/suparena/objectstore/errors"
)

// Entity is implemented by every persisted object. Concrete types satisfy it
// by embedding *Base.
type Entity interface {
	TypeName() string
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Save(ctx context.Context) error
	ToRecord() Record
	String() string

	base() *Base
}

// Persister flushes the full registry to durable storage.
type Persister interface {
	Save(ctx context.Context) error
}

// Registrar is the part of a Store that fresh entities register with.
type Registrar interface {
	Persister
	New(e Entity)
}

// Base holds identity, timestamps and ad-hoc attributes.
type Base struct {
	typeName  string
	id        string
	createdAt time.Time
	updatedAt time.Time
	attrs     map[string]any
	owner     Persister
}

// NewBase creates an unregistered entity of the given type with a fresh
// identifier and created_at = updated_at = now.
func NewBase(typeName string) *Base {
	now := Now()
	return &Base{
		typeName:  typeName,
		id:        uuid.NewString(),
		createdAt: now,
		updatedAt: now,
		attrs:     make(map[string]any),
	}
}

// FromRecord rehydrates an entity of the given type from a record. The type
// tag inside the record is ignored; id, created_at and updated_at are required
// and must not be null.
func FromRecord(typeName string, rec Record) (*Base, error) {
	if typeName == "" {
		return nil, errors.NewInvalidArgumentError(TypeKey, "type name is required")
	}
	if len(rec) == 0 {
		return nil, errors.NewInvalidArgumentError("", "reconstruction requires a non-empty record")
	}

	id, err := idField(rec)
	if err != nil {
		return nil, err
	}
	createdAt, err := timeField(rec, CreatedAtKey)
	if err != nil {
		return nil, err
	}
	updatedAt, err := timeField(rec, UpdatedAtKey)
	if err != nil {
		return nil, err
	}

	b := &Base{
		typeName:  typeName,
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
		attrs:     make(map[string]any, len(rec)),
	}
	for k, v := range rec {
		if isReserved(k) {
			continue
		}
		cv, err := canonicalize(v)
		if err != nil {
			return nil, errors.NewInvalidArgumentError(k, err.Error())
		}
		b.attrs[k] = cv
	}
	return b, nil
}

func idField(rec Record) (string, error) {
	v, ok := rec[IDKey]
	if !ok || v == nil {
		return "", errors.NewInvalidArgumentError(IDKey, "must not be null")
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", errors.NewInvalidArgumentError(IDKey, fmt.Sprintf("must be a non-empty string, got %T", v))
	}
	return id, nil
}

func timeField(rec Record, name string) (time.Time, error) {
	v, ok := rec[name]
	if !ok || v == nil {
		return time.Time{}, errors.NewInvalidArgumentError(name, "must not be null")
	}
	switch tv := v.(type) {
	case string:
		t, err := ParseTime(tv)
		if err != nil {
			return time.Time{}, errors.NewInvalidArgumentError(name, err.Error())
		}
		return t, nil
	case time.Time:
		return normalizeTime(tv), nil
	default:
		return time.Time{}, errors.NewInvalidArgumentError(name, fmt.Sprintf("expected ISO-8601 string, got %T", v))
	}
}

// Register binds e to r and inserts it into r's registry.
func Register(r Registrar, e Entity) {
	Bind(e, r)
	r.New(e)
}

// Bind makes p the target of e.Save without inserting e anywhere.
func Bind(e Entity, p Persister) {
	e.base().owner = p
}

func (b *Base) base() *Base { return b }

func (b *Base) TypeName() string     { return b.typeName }
func (b *Base) ID() string           { return b.id }
func (b *Base) CreatedAt() time.Time { return b.createdAt }
func (b *Base) UpdatedAt() time.Time { return b.updatedAt }

// Key returns the composite registry key of the entity.
func (b *Base) Key() string {
	return Key(b.typeName, b.id)
}

// Save refreshes updated_at and persists the whole registry through the
// Store the entity is bound to.
func (b *Base) Save(ctx context.Context) error {
	if b.owner == nil {
		return errors.NewInvalidArgumentError("", fmt.Sprintf("%s is not bound to a store", b.Key()))
	}
	b.touch()
	return b.owner.Save(ctx)
}

// touch keeps updated_at strictly increasing even within one microsecond.
func (b *Base) touch() {
	now := Now()
	if !now.After(b.updatedAt) {
		now = b.updatedAt.Add(time.Microsecond)
	}
	b.updatedAt = now
}

// ToRecord returns a snapshot of every attribute with string timestamps and
// the type tag.
func (b *Base) ToRecord() Record {
	rec := make(Record, len(b.attrs)+4)
	for k, v := range b.attrs {
		rec[k] = cloneValue(v)
	}
	rec[IDKey] = b.id
	rec[CreatedAtKey] = FormatTime(b.createdAt)
	rec[UpdatedAtKey] = FormatTime(b.updatedAt)
	rec[TypeKey] = b.typeName
	return rec
}

// Attributes returns the raw attribute map: native timestamps, no type tag.
func (b *Base) Attributes() map[string]any {
	m := make(map[string]any, len(b.attrs)+3)
	for k, v := range b.attrs {
		m[k] = cloneValue(v)
	}
	m[IDKey] = b.id
	m[CreatedAtKey] = b.createdAt
	m[UpdatedAtKey] = b.updatedAt
	return m
}

func (b *Base) String() string {
	return fmt.Sprintf("[%s] (%s) %v", b.typeName, b.id, b.Attributes())
}

// Get returns the named attribute, including id and the timestamps.
func (b *Base) Get(name string) (any, bool) {
	switch name {
	case IDKey:
		return b.id, true
	case CreatedAtKey:
		return b.createdAt, true
	case UpdatedAtKey:
		return b.updatedAt, true
	}
	v, ok := b.attrs[name]
	return cloneValue(v), ok
}

// Set assigns an ad-hoc attribute. The value must be JSON encodable and is
// stored in the form it decodes back to.
func (b *Base) Set(name string, value any) error {
	if name == "" {
		return errors.NewInvalidArgumentError("", "attribute name is required")
	}
	if isReserved(name) {
		return errors.NewInvalidArgumentError(name, "attribute is read-only")
	}
	cv, err := canonicalize(value)
	if err != nil {
		return errors.NewInvalidArgumentError(name, err.Error())
	}
	b.attrs[name] = cv
	return nil
}

// Unset removes an ad-hoc attribute.
func (b *Base) Unset(name string) error {
	if isReserved(name) {
		return errors.NewInvalidArgumentError(name, "attribute is read-only")
	}
	delete(b.attrs, name)
	return nil
}

// Typed accessors used by concrete types. Missing or mistyped attributes
// read as the zero value.

func (b *Base) GetString(name string) string {
	s, _ := b.attrs[name].(string)
	return s
}

func (b *Base) GetInt(name string) int64 {
	switch v := b.attrs[name].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func (b *Base) GetFloat(name string) float64 {
	switch v := b.attrs[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func (b *Base) GetStrings(name string) []string {
	items, _ := b.attrs[name].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (b *Base) SetString(name, v string)    { b.mustSet(name, v) }
func (b *Base) SetInt(name string, v int64) { b.mustSet(name, v) }

// SetFloat stores integral values as int64, the way they decode from JSON.
func (b *Base) SetFloat(name string, v float64) {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		b.mustSet(name, int64(v))
		return
	}
	b.mustSet(name, v)
}

func (b *Base) SetStrings(name string, v []string) {
	items := make([]any, len(v))
	for i, s := range v {
		items[i] = s
	}
	b.mustSet(name, items)
}

// mustSet stores values that are already canonical.
func (b *Base) mustSet(name string, v any) {
	if isReserved(name) {
		panic(fmt.Sprintf("entity: attribute %q is read-only", name))
	}
	b.attrs[name] = v
}

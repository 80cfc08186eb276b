/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Reserved record keys.
const (
	TypeKey      = "__class__"
	IDKey        = "id"
	CreatedAtKey = "created_at"
	UpdatedAtKey = "updated_at"
)

// Record is the type-tagged, string-timestamped form of an entity.
type Record map[string]any

// TypeName returns the type tag of the record, if it holds a string one.
func (r Record) TypeName() (string, bool) {
	name, ok := r[TypeKey].(string)
	return name, ok && name != ""
}

// Key builds the composite registry key "<TypeName>.<id>".
func Key(typeName, id string) string {
	return typeName + "." + id
}

// SplitKey splits a composite key at its first dot.
func SplitKey(key string) (typeName, id string, ok bool) {
	i := strings.IndexByte(key, '.')
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

func isReserved(name string) bool {
	switch name {
	case TypeKey, IDKey, CreatedAtKey, UpdatedAtKey:
		return true
	}
	return false
}

// canonicalize converts v to the value it would decode to after a JSON round
// trip, so in-memory attributes compare equal before and after a reload.
func canonicalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return NormalizeValue(out), nil
}

// NormalizeValue replaces json.Number values with int64 when integral and
// float64 otherwise, descending into maps and slices in place.
func NormalizeValue(v any) any {
	switch tv := v.(type) {
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return i
		}
		f, _ := tv.Float64()
		return f
	case map[string]any:
		for k, e := range tv {
			tv[k] = NormalizeValue(e)
		}
		return tv
	case []any:
		for i := range tv {
			tv[i] = NormalizeValue(tv[i])
		}
		return tv
	default:
		return v
	}
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(tv))
		for k, e := range tv {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(tv))
		for i, e := range tv {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

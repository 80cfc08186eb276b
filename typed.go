/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"fmt"
	"sort"

	"github.com/suparena/objectstore/entity"
	"github.com/suparena/objectstore/errors"
)

// Find returns the entity stored under typeName and id as a T.
//
//	review, err := objectstore.Find[*models.Review](store, models.ReviewType, id)
func Find[T entity.Entity](s *Store, typeName, id string) (T, error) {
	var zero T
	e, err := s.Get(typeName, id)
	if err != nil {
		return zero, err
	}
	t, ok := e.(T)
	if !ok {
		return zero, errors.NewInvalidArgumentError(typeName,
			fmt.Sprintf("%s is a %T, not a %T", entity.Key(typeName, id), e, zero))
	}
	return t, nil
}

// List returns every registered entity whose Go type is T, oldest first.
func List[T entity.Entity](s *Store) []T {
	var out []T
	for _, e := range s.All() {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Create builds a fresh T through the type registry and registers it.
func Create[T entity.Entity](s *Store, typeName string) (T, error) {
	var zero T
	e, err := s.Create(typeName)
	if err != nil {
		return zero, err
	}
	t, ok := e.(T)
	if !ok {
		// undo the registration of the wrongly typed entity
		_ = s.Delete(e.TypeName(), e.ID())
		return zero, errors.NewInvalidArgumentError(typeName,
			fmt.Sprintf("type %q builds a %T, not a %T", typeName, e, zero))
	}
	return t, nil
}

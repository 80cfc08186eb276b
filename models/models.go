/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"github.com/suparena/objectstore/entity"
	"github.com/suparena/objectstore/registry"
)

// Type names, as written in the "__class__" tag.
const (
	BaseModelType = "BaseModel"
	UserType      = "User"
	StateType     = "State"
	CityType      = "City"
	AmenityType   = "Amenity"
	PlaceType     = "Place"
	ReviewType    = "Review"
)

// Register installs every model type into r.
func Register(r *registry.TypeRegistry) {
	register(r, BaseModelType, func(b *entity.Base) *BaseModel { return &BaseModel{Base: b} })
	register(r, UserType, func(b *entity.Base) *User { return &User{Base: b} })
	register(r, StateType, func(b *entity.Base) *State { return &State{Base: b} })
	register(r, CityType, func(b *entity.Base) *City { return &City{Base: b} })
	register(r, AmenityType, func(b *entity.Base) *Amenity { return &Amenity{Base: b} })
	register(r, PlaceType, func(b *entity.Base) *Place { return &Place{Base: b} })
	register(r, ReviewType, func(b *entity.Base) *Review { return &Review{Base: b} })
}

func register[T entity.Entity](r *registry.TypeRegistry, name string, wrap func(*entity.Base) T) {
	r.Register(name,
		func() entity.Entity { return wrap(entity.NewBase(name)) },
		func(rec entity.Record) (entity.Entity, error) {
			b, err := entity.FromRecord(name, rec)
			if err != nil {
				return nil, err
			}
			return wrap(b), nil
		},
	)
}

func create[T entity.Entity](r entity.Registrar, name string, wrap func(*entity.Base) T) T {
	e := wrap(entity.NewBase(name))
	entity.Register(r, e)
	return e
}

// BaseModel carries no attributes beyond the base ones.
type BaseModel struct {
	*entity.Base
}

// NewBaseModel creates a BaseModel and registers it with r.
func NewBaseModel(r entity.Registrar) *BaseModel {
	return create(r, BaseModelType, func(b *entity.Base) *BaseModel { return &BaseModel{Base: b} })
}

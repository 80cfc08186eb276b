/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import "github.com/suparena/objectstore/entity"

// State groups cities.
type State struct {
	*entity.Base
}

// NewState creates a State and registers it with r.
func NewState(r entity.Registrar) *State {
	return create(r, StateType, func(b *entity.Base) *State { return &State{Base: b} })
}

func (s *State) Name() string     { return s.GetString("name") }
func (s *State) SetName(v string) { s.SetString("name", v) }

// City belongs to a State.
type City struct {
	*entity.Base
}

// NewCity creates a City and registers it with r.
func NewCity(r entity.Registrar) *City {
	return create(r, CityType, func(b *entity.Base) *City { return &City{Base: b} })
}

func (c *City) StateID() string     { return c.GetString("state_id") }
func (c *City) Name() string        { return c.GetString("name") }
func (c *City) SetStateID(v string) { c.SetString("state_id", v) }
func (c *City) SetName(v string)    { c.SetString("name", v) }

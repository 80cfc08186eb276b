/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import "github.com/suparena/objectstore/entity"

// User is an account that owns places and writes reviews.
type User struct {
	*entity.Base
}

// NewUser creates a User and registers it with r.
func NewUser(r entity.Registrar) *User {
	return create(r, UserType, func(b *entity.Base) *User { return &User{Base: b} })
}

func (u *User) Email() string     { return u.GetString("email") }
func (u *User) Password() string  { return u.GetString("password") }
func (u *User) FirstName() string { return u.GetString("first_name") }
func (u *User) LastName() string  { return u.GetString("last_name") }

func (u *User) SetEmail(v string)     { u.SetString("email", v) }
func (u *User) SetPassword(v string)  { u.SetString("password", v) }
func (u *User) SetFirstName(v string) { u.SetString("first_name", v) }
func (u *User) SetLastName(v string)  { u.SetString("last_name", v) }

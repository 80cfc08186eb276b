/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import "github.com/suparena/objectstore/entity"

// Amenity is a feature a Place can offer.
type Amenity struct {
	*entity.Base
}

// NewAmenity creates an Amenity and registers it with r.
func NewAmenity(r entity.Registrar) *Amenity {
	return create(r, AmenityType, func(b *entity.Base) *Amenity { return &Amenity{Base: b} })
}

func (a *Amenity) Name() string     { return a.GetString("name") }
func (a *Amenity) SetName(v string) { a.SetString("name", v) }

// Place is a rentable listing in a City, owned by a User.
type Place struct {
	*entity.Base
}

// NewPlace creates a Place and registers it with r.
func NewPlace(r entity.Registrar) *Place {
	return create(r, PlaceType, func(b *entity.Base) *Place { return &Place{Base: b} })
}

func (p *Place) CityID() string         { return p.GetString("city_id") }
func (p *Place) UserID() string         { return p.GetString("user_id") }
func (p *Place) Name() string           { return p.GetString("name") }
func (p *Place) Description() string    { return p.GetString("description") }
func (p *Place) NumberRooms() int64     { return p.GetInt("number_rooms") }
func (p *Place) NumberBathrooms() int64 { return p.GetInt("number_bathrooms") }
func (p *Place) MaxGuest() int64        { return p.GetInt("max_guest") }
func (p *Place) PriceByNight() int64    { return p.GetInt("price_by_night") }
func (p *Place) Latitude() float64      { return p.GetFloat("latitude") }
func (p *Place) Longitude() float64     { return p.GetFloat("longitude") }
func (p *Place) AmenityIDs() []string   { return p.GetStrings("amenity_ids") }

func (p *Place) SetCityID(v string)         { p.SetString("city_id", v) }
func (p *Place) SetUserID(v string)         { p.SetString("user_id", v) }
func (p *Place) SetName(v string)           { p.SetString("name", v) }
func (p *Place) SetDescription(v string)    { p.SetString("description", v) }
func (p *Place) SetNumberRooms(v int64)     { p.SetInt("number_rooms", v) }
func (p *Place) SetNumberBathrooms(v int64) { p.SetInt("number_bathrooms", v) }
func (p *Place) SetMaxGuest(v int64)        { p.SetInt("max_guest", v) }
func (p *Place) SetPriceByNight(v int64)    { p.SetInt("price_by_night", v) }
func (p *Place) SetLatitude(v float64)      { p.SetFloat("latitude", v) }
func (p *Place) SetLongitude(v float64)     { p.SetFloat("longitude", v) }
func (p *Place) SetAmenityIDs(v []string)   { p.SetStrings("amenity_ids", v) }

// Review is a User's text about a Place.
type Review struct {
	*entity.Base
}

// NewReview creates a Review and registers it with r.
func NewReview(r entity.Registrar) *Review {
	return create(r, ReviewType, func(b *entity.Base) *Review { return &Review{Base: b} })
}

func (r *Review) PlaceID() string     { return r.GetString("place_id") }
func (r *Review) UserID() string      { return r.GetString("user_id") }
func (r *Review) Text() string        { return r.GetString("text") }
func (r *Review) SetPlaceID(v string) { r.SetString("place_id", v) }
func (r *Review) SetUserID(v string)  { r.SetString("user_id", v) }
func (r *Review) SetText(v string)    { r.SetString("text", v) }

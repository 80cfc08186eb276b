/*
Package models defines the concrete entity types of the rental domain:
users, states, cities, amenities, places and reviews.

Each type embeds *entity.Base and only adds typed accessors over attributes;
the attributes themselves live in the base attribute map, so a record contains
exactly the attributes that were set. Register installs all types into a
TypeRegistry so a Store can reload them:

	types := registry.NewTypeRegistry()
	models.Register(types)
	store := objectstore.New(backend, types)

	u := models.NewUser(store) // registered with store
	u.SetEmail("guest@example.com")
	err := u.Save(ctx)
*/
package models

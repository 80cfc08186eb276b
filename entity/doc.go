/*
Package entity provides the base representation every persisted object shares:
an immutable identifier, creation and modification timestamps, and an open set
of ad-hoc attributes, together with the Record form used for serialization.

Fresh creation and reconstruction are two explicit constructors:

	b := entity.NewBase("User")                 // new UUID, created_at = updated_at = now
	b, err := entity.FromRecord("User", record) // rehydrate persisted state

Neither registers with a Store. Registration is its own step, performed by the
"new object" path of concrete types:

	u := &models.User{Base: entity.NewBase("User")}
	entity.Register(store, u)

Records carry timestamps as "2006-01-02T15:04:05.000000" strings and a
"__class__" entry naming the concrete type:

	{
	    "__class__":  "User",
	    "id":         "6c1b1f4e-...",
	    "created_at": "2025-03-01T10:04:05.123456",
	    "updated_at": "2025-03-01T10:04:05.123456",
	    "email":      "a@b.c"
	}
*/
package entity

/*
Package registry maps entity type names to their constructors.

Every concrete type the process can persist registers two functions: one for
fresh creation and one for reconstruction from a record. Reload uses the
"__class__" tag of each stored record to pick the reconstruction function:

	types := registry.NewTypeRegistry()
	types.Register("User",
	    func() entity.Entity { return &User{Base: entity.NewBase("User")} },
	    func(rec entity.Record) (entity.Entity, error) {
	        b, err := entity.FromRecord("User", rec)
	        if err != nil {
	            return nil, err
	        }
	        return &User{Base: b}, nil
	    },
	)

The registry is closed and explicit: there is no reflection, and a name that
was never registered yields an UnknownType error. It is thread-safe and should
be populated once during initialization.
*/
package registry

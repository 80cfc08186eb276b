/*
Package errors provides semantic error types for the objectstore library.

The package defines the error kinds a Store or an entity can return, each with a
sentinel that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("not found")
	    ErrInvalidArgument = errors.New("invalid argument")
	    ErrUnknownType     = errors.New("unknown type")
	    ErrMalformedStore  = errors.New("malformed store")
	    ErrIOFailure       = errors.New("i/o failure")
	)

Usage:

	// Check error type
	if err := store.Reload(ctx); err != nil {
	    if errors.IsUnknownType(err) || errors.IsMalformedStore(err) {
	        // Report to the user, the backing file needs attention
	        return fmt.Errorf("cannot load objects: %w", err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewInvalidArgumentError("id", "must not be null")
	err := errors.NewUnknownTypeError("Spaceship", "Spaceship.42")
	err := errors.NewIOFailureError("write", "file.json", cause)

MalformedStoreError and IOFailureError wrap their cause, so callers can still
reach the underlying *os.PathError or decoder error with errors.As.
*/
package errors

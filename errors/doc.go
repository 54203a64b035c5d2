/*
Package errors provides semantic error types for databag.

Sentinels:

	var (
	    ErrNotFound      = errors.New("not found")
	    ErrAlreadyExists = errors.New("already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrUnknownType   = errors.New("unknown payload type")
	)

Container lookups never return ErrNotFound: a miss in TryGet is a plain
boolean. ErrNotFound is reserved for persistence (a DataStore with no bag
for an owner).

Usage:

	bag, err := codec.New(reg).UnmarshalJSON(data)
	if err != nil {
	    if errors.IsUnknownType(err) {
	        // the file references a payload type this build does not know
	    }
	    return nil, err
	}

Typed errors implement Is against their sentinel, so they still match
after being wrapped with fmt.Errorf("...: %w", err).
*/
package errors

package heap

import "errors"

var (
	// ErrNotInitialized indicates a call was made before New completed
	// successfully.
	ErrNotInitialized = errors.New("heap: not initialized")

	// ErrNoSpace indicates the provider could not satisfy a growth request.
	ErrNoSpace = errors.New("heap: provider exhausted")

	// ErrBadRef indicates a Ref does not name a live allocation, either
	// because it is out of range or because it does not point at an
	// allocated block's payload offset.
	ErrBadRef = errors.New("heap: invalid reference")

	// ErrCorrupt is returned by Check when a structural invariant does not
	// hold. It is fatal: the heap must not be used further once returned.
	ErrCorrupt = errors.New("heap: invariant violation")
)

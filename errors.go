package strainz

import "errors"

// Sentinel errors for common failure cases. Operations wrap these with
// context; check them with errors.Is.
var (
	ErrNotFound            = errors.New("strainz: entity not found")
	ErrAlreadyExists       = errors.New("strainz: entity already exists")
	ErrCannotRemoveStem    = errors.New("strainz: cannot remove stem entity")
	ErrIDMismatch          = errors.New("strainz: payload reports a different ID than it is stored under")
	ErrInvalidID           = errors.New("strainz: invalid entity ID")
	ErrIteratorInvalidated = errors.New("strainz: iterator invalidated by mutation of its child-set")
)

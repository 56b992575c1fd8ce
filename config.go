package strainz

import "cmp"

// settings holds construction-time configuration for a Genealogy.
type settings[ID cmp.Ordered] struct {
	validateID func(ID) error
	capacity   int
}

// Option is a function that configures a Genealogy at construction time.
type Option[ID cmp.Ordered] func(*settings[ID])

// WithIDValidator registers a validation hook applied to every identifier
// before an entity is created under it, the stem included. A rejection is
// surfaced as ErrInvalidID wrapping the hook's error text.
func WithIDValidator[ID cmp.Ordered](validate func(ID) error) Option[ID] {
	return func(s *settings[ID]) {
		s.validateID = validate
	}
}

// WithCapacity pre-sizes the identifier map for the expected number of
// entities.
func WithCapacity[ID cmp.Ordered](n int) Option[ID] {
	return func(s *settings[ID]) {
		s.capacity = n
	}
}

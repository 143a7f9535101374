package measure

import (
	"errors"

	"github.com/miosa/osa-virtual/ui/axis"
)

var (
	// ErrNoSizeFunc is returned when an axis has neither a fixed-size
	// function nor an estimate function.
	ErrNoSizeFunc = errors.New("measure: neither a fixed size nor an estimate function was supplied")

	// ErrAmbiguousSize is returned when an axis has both.
	ErrAmbiguousSize = errors.New("measure: fixed size and estimate functions are mutually exclusive")
)

// Resolver builds the size resolver for one axis.
//
// With fixed set, the resolver is fixed itself. With estimate set, measured
// sizes in cache override the estimate for the key the item currently has.
// Exactly one of fixed and estimate must be non-nil.
func Resolver(fixed, estimate axis.SizeFunc, key axis.KeyFunc, cache *Cache) (axis.SizeFunc, error) {
	switch {
	case fixed == nil && estimate == nil:
		return nil, ErrNoSizeFunc
	case fixed != nil && estimate != nil:
		return nil, ErrAmbiguousSize
	case fixed != nil:
		return fixed, nil
	}
	if cache == nil {
		return estimate, nil
	}
	if key == nil {
		key = axis.IndexKey
	}
	return func(i int) float64 {
		if v, ok := cache.Get(key(i)); ok {
			return v
		}
		return estimate(i)
	}, nil
}

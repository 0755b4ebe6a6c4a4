package entropy

import "errors"

// ErrNegativeCount indicates a sequence was requested with a negative count.
var ErrNegativeCount = errors.New("count must be non-negative")

// ErrInvalidBound indicates a bounded draw was requested with a bound that
// is zero or negative.
var ErrInvalidBound = errors.New("bound must be positive")

// ErrInvalidRange indicates a range was requested whose origin does not lie
// strictly below its bound.
var ErrInvalidRange = errors.New("bound must be greater than origin")

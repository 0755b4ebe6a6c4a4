package entropy

import "math"

// Gaussian returns a normally distributed float64 with mean 0 and standard
// deviation 1.
//
// Normal values are produced in pairs by the polar Box-Muller transform:
// uniform points are drawn until one lands strictly inside the unit disk
// (excluding the center), at which point both coordinates convert to
// independent normal values. The first is returned and the second is
// buffered on the goroutine's generator, so every other call is satisfied
// without drawing. Dispose discards any buffered value along with the rest
// of the goroutine's state.
func (r *Rand) Gaussian() float64 {
	if r.haveGaussian {
		r.haveGaussian = false
		return r.nextGaussian
	}
	value, spare := normPair(r)
	r.nextGaussian = spare
	r.haveGaussian = true
	return value
}

// normPair converts uniform words from src into one accepted Box-Muller
// pair. Points on or outside the unit circle are rejected, as is the exact
// center where the transform divides by zero. A little over one attempt is
// needed on average (the disk covers pi/4 of the square).
func normPair(src source) (value, spare float64) {
	var v1, v2, s float64
	for {
		v1 = 2*unitFloat64(src) - 1
		v2 = 2*unitFloat64(src) - 1
		s = v1*v1 + v2*v2
		if s > 0 && s < 1 {
			break
		}
	}
	multiplier := math.Sqrt(-2 * math.Log(s) / s)
	return v1 * multiplier, v2 * multiplier
}

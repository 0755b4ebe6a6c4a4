package entropy

import "math"

// source supplies mixed words to the samplers. The production
// implementation is *Rand; tests substitute scripted word sequences to pin
// the sampling arithmetic down value by value.
type source interface {
	word64() uint64
	word32() uint32
}

// int64Window maps one or more mixed words onto [origin, bound), or
// returns an unrestricted draw when origin >= bound (the sentinel for "no
// bound"). Callers validate ranges; this assumes any restricted range is
// well-formed.
//
// Three cases keep the result exactly uniform:
//
//  1. Power-of-two width: mask to the low bits. One word, no bias.
//  2. Other representable widths: u mod n over-represents the smallest
//     residues because 2^63 is not a multiple of n. A draw is accepted only
//     if u + m - r does not wrap, which rejects exactly the final partial
//     block of candidates; otherwise a fresh word is drawn.
//  3. Width wider than int64 (only reachable through two-argument ranges):
//     no arithmetic reduction is possible, so draw until a word lands
//     inside the range directly. At least half of all words do.
func int64Window(src source, origin, bound int64) int64 {
	r := int64(src.word64())
	if origin < bound {
		n := bound - origin
		m := n - 1
		switch {
		case n&m == 0:
			r = (r & m) + origin
		case n > 0:
			for u := int64(uint64(r) >> 1); ; u = int64(src.word64() >> 1) {
				r = u % n
				if u+m-r >= 0 {
					break
				}
			}
			r += origin
		default:
			for r < origin || r >= bound {
				r = int64(src.word64())
			}
		}
	}
	return r
}

// int32Window is int64Window over 32-bit words and ranges.
func int32Window(src source, origin, bound int32) int32 {
	r := int32(src.word32())
	if origin < bound {
		n := bound - origin
		m := n - 1
		switch {
		case n&m == 0:
			r = (r & m) + origin
		case n > 0:
			for u := int32(uint32(r) >> 1); ; u = int32(src.word32() >> 1) {
				r = u % n
				if u+m-r >= 0 {
					break
				}
			}
			r += origin
		default:
			for r < origin || r >= bound {
				r = int32(src.word32())
			}
		}
	}
	return r
}

// unitFloat64 maps the top 53 bits of one mixed word onto [0, 1).
func unitFloat64(src source) float64 {
	return float64(src.word64()>>11) * float64Unit
}

// float64Window maps a mixed word onto [origin, bound), or onto [0, 1)
// when origin >= bound. Scaling the unit draw can round exactly onto the
// bound; that draw is replaced by the largest float64 below the bound so
// the result is always strictly inside the range.
func float64Window(src source, origin, bound float64) float64 {
	r := unitFloat64(src)
	if origin < bound {
		r = r*(bound-origin) + origin
		if r >= bound {
			r = math.Float64frombits(math.Float64bits(bound) - 1)
		}
	}
	return r
}

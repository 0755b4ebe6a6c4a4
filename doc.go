// Package entropy generates pseudorandom numbers from goroutine-private
// state, so concurrent draws never contend on a lock and never perturb
// each other's sequences.
//
// # Goroutine affinity
//
// Current returns the generator owned by the calling goroutine, seeding it
// from the operating system on first use. Draws advance only that
// goroutine's seed: a goroutine's output sequence is identical whether or
// not other goroutines are drawing at the same time. Programs that churn
// through short-lived goroutines can call Dispose to release a goroutine's
// state before it exits.
//
// # Bounded draws
//
// The bounded methods (Int64N, Int64Range, and friends) are exactly
// uniform. Power-of-two widths reduce to a mask; other widths use
// rejection to discard the handful of over-represented candidates that
// plain modulo reduction would favor; float ranges are corrected so the
// exclusive bound is never returned even when scaling rounds onto it.
// Bounded methods panic on invalid arguments, in line with the math/rand
// convention.
//
// # Sequences
//
// Int64s, Int32s, Float64s and their ranged forms describe lazy sequences
// of a fixed count of future draws. Sequences split into exact halves for
// parallel consumption and draw from whichever goroutine advances them;
// see Int64Sequence. Sequence constructors validate their arguments and
// return errors rather than panicking, because counts and ranges often
// arrive from configuration rather than source code.
//
// # Security
//
// Values are not cryptographically secure and seeds are not user-settable.
// Use crypto/rand when unpredictability matters.
package entropy

// Package dice implements dice rolling on top of the goroutine-scoped
// random engine.
package dice

import (
	"errors"

	entropy "github.com/louisbranch/entropy.space"
)

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = errors.New("at least one die must be provided")

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = errors.New("dice must have positive sides and count")

// DiceSpec describes a die to roll and how many times to roll it.
type DiceSpec struct {
	Sides int
	Count int
}

// DieRoll captures the results for a single dice spec.
type DieRoll struct {
	Sides   int
	Results []int
	Total   int
}

// RollRequest describes a request to roll one or more dice.
type RollRequest struct {
	Dice []DiceSpec
}

// RollResult captures the results from rolling multiple dice.
type RollResult struct {
	Rolls []DieRoll
	Total int
}

// Roll rolls dice based on the provided request.
//
// # Randomness
//
// Values are drawn from the calling goroutine's engine state via
// entropy.Current. Rolls are not reproducible: there is no seed to set, and
// two identical requests will produce independent results.
//
// # Ordering
//
// Dice specs in RollRequest.Dice are processed in slice order. The resulting
// DieRoll entries in RollResult.Rolls appear in the same order as the
// corresponding DiceSpec entries in RollRequest.Dice.
//
// # Totals
//
// For each DieRoll in RollResult.Rolls, the Total field is the sum of all
// values in Results for that dice specification. The RollResult.Total field
// is the sum of Total for all DieRoll entries (i.e., the sum of every die
// rolled across the entire request).
//
// Constraints and errors
//
//   - At least one DiceSpec must be provided in RollRequest.Dice, otherwise
//     ErrMissingDice is returned.
//   - Each DiceSpec must have Sides > 0 and Count > 0, otherwise
//     ErrInvalidDiceSpec is returned.
//
// Validation runs before any die is rolled, so a rejected request never
// advances the caller's generator state.
//
// Example:
//
//	req := RollRequest{
//	    Dice: []DiceSpec{
//	        {Sides: 6, Count: 2}, // roll 2d6
//	        {Sides: 8, Count: 1}, // roll 1d8
//	    },
//	}
//	result, err := Roll(req)
//
// After a successful call, result.Rolls will contain two DieRoll entries
// (one for the d6s, one for the d8), and result.Total will equal the sum
// of all dice rolled in those entries.
func Roll(request RollRequest) (RollResult, error) {
	if len(request.Dice) == 0 {
		return RollResult{}, ErrMissingDice
	}
	for _, spec := range request.Dice {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return RollResult{}, ErrInvalidDiceSpec
		}
	}

	rng := entropy.Current()
	rolls := make([]DieRoll, 0, len(request.Dice))
	total := 0

	for _, spec := range request.Dice {
		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(rng, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, DieRoll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return RollResult{
		Rolls: rolls,
		Total: total,
	}, nil
}

// rollDie rolls a die with the provided number of sides.
func rollDie(rng *entropy.Rand, sides int) int {
	return int(rng.Int64N(int64(sides))) + 1
}

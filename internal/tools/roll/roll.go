// Package roll parses dice notation and rolls it for the roll tool.
package roll

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/entropy.space/dice"
)

// ErrInvalidNotation indicates dice notation that cannot be parsed.
var ErrInvalidNotation = errors.New("dice notation must look like 2d6")

// Config holds configuration for the roll tool.
type Config struct {
	Dice  string
	Rolls int
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Dice: "2d12", Rolls: 1}
	fs.StringVar(&cfg.Dice, "dice", cfg.Dice, "comma-separated dice notation, e.g. 2d6,1d8")
	fs.IntVar(&cfg.Rolls, "rolls", cfg.Rolls, "number of times to roll the request")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseDice parses comma-separated dice notation into specs. A missing
// count means one die, so "d20" rolls a single d20.
func ParseDice(notation string) ([]dice.DiceSpec, error) {
	var specs []dice.DiceSpec
	for _, part := range strings.Split(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		countText, sidesText, found := strings.Cut(strings.ToLower(part), "d")
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
		}
		count := 1
		if countText != "" {
			parsed, err := strconv.Atoi(countText)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
			}
			count = parsed
		}
		sides, err := strconv.Atoi(sidesText)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
		}
		specs = append(specs, dice.DiceSpec{Sides: sides, Count: count})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidNotation)
	}
	return specs, nil
}

// Run rolls the configured dice and writes the outcomes to out.
func Run(cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if cfg.Rolls <= 0 {
		return errors.New("rolls must be greater than zero")
	}
	specs, err := ParseDice(cfg.Dice)
	if err != nil {
		return err
	}

	var b strings.Builder
	for i := 0; i < cfg.Rolls; i++ {
		result, err := dice.Roll(dice.RollRequest{Dice: specs})
		if err != nil {
			return err
		}
		for _, roll := range result.Rolls {
			fmt.Fprintf(&b, "%dd%d: %v = %d\n", len(roll.Results), roll.Sides, roll.Results, roll.Total)
		}
		if len(result.Rolls) > 1 {
			fmt.Fprintf(&b, "total: %d\n", result.Total)
		}
	}
	_, err = io.WriteString(out, b.String())
	return err
}

// Package diag parses diagnostics command flags and runs the check suite.
package diag

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	diagnostics "github.com/louisbranch/entropy.space/internal/diag"
	"github.com/louisbranch/entropy.space/internal/diag/storage/sqlite"
	entrypoint "github.com/louisbranch/entropy.space/internal/platform/cmd"
)

// Config holds diagnostics command configuration.
type Config struct {
	Trials      int64  `env:"ENTROPY_SPACE_DIAG_TRIALS" envDefault:"200000"`
	Parallelism int    `env:"ENTROPY_SPACE_DIAG_PARALLELISM" envDefault:"0"`
	StorePath   string `env:"ENTROPY_SPACE_DIAG_STORE"`
	Check       string `env:"ENTROPY_SPACE_DIAG_CHECK"`
	Verbose     bool   `env:"ENTROPY_SPACE_DIAG_VERBOSE" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.Int64Var(&cfg.Trials, "trials", cfg.Trials, "Draws per check")
	fs.IntVar(&cfg.Parallelism, "parallelism", cfg.Parallelism, "Goroutines for concurrent checks (0 = GOMAXPROCS)")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "SQLite path for persisting runs (empty = no persistence)")
	fs.StringVar(&cfg.Check, "check", cfg.Check, "Run a single check by name (empty = all)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Log every check outcome, not only failures")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the diagnostics suite described by cfg. It returns a non-nil
// error when any check fails.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDiag, func(ctx context.Context) error {
		suite := &diagnostics.Suite{}

		if name := strings.TrimSpace(cfg.Check); name != "" {
			check, ok := lookupCheck(name)
			if !ok {
				return fmt.Errorf("unknown check %q (available: %s)", name, strings.Join(checkNames(), ", "))
			}
			suite.Checks = []diagnostics.Check{check}
		}

		if cfg.StorePath != "" {
			store, err := sqlite.Open(ctx, cfg.StorePath)
			if err != nil {
				return fmt.Errorf("open diagnostics store: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Printf("close diagnostics store: %v", err)
				}
			}()
			suite.Store = store
		}

		report, err := suite.Run(ctx, diagnostics.Params{Trials: cfg.Trials, Parallelism: cfg.Parallelism})
		if err != nil {
			return err
		}

		failed := 0
		for _, result := range report.Results {
			if !result.Passed {
				failed++
			}
			if cfg.Verbose || !result.Passed {
				log.Printf("%-16s trials=%d statistic=%g threshold=%g passed=%t elapsed=%s",
					result.Name, result.Trials, result.Statistic, result.Threshold, result.Passed, result.Elapsed)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d checks failed", failed, len(report.Results))
		}
		log.Printf("%d checks passed", len(report.Results))
		return nil
	})
}

// lookupCheck finds a registered check by name.
func lookupCheck(name string) (diagnostics.Check, bool) {
	for _, check := range diagnostics.Checks() {
		if check.Name() == name {
			return check, true
		}
	}
	return nil, false
}

func checkNames() []string {
	checks := diagnostics.Checks()
	names := make([]string, 0, len(checks))
	for _, check := range checks {
		names = append(names, check.Name())
	}
	return names
}

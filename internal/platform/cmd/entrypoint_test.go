package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Trials int    `env:"CMD_TEST_TRIALS" envDefault:"1000"`
	Check  string `env:"CMD_TEST_CHECK" envDefault:"all"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_TRIALS", "2000")
	t.Setenv("CMD_TEST_CHECK", "env-check")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.IntVar(&cfgRef.Trials, "trials", cfgRef.Trials, "trials")
	fs.StringVar(&cfgRef.Check, "check", cfgRef.Check, "check")

	if err := ParseArgs(fs, []string{"-trials", "3000"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Trials != 3000 {
		t.Fatalf("expected flag value for trials, got %d", cfgRef.Trials)
	}
	if cfgRef.Check != "env-check" {
		t.Fatalf("expected env default check, got %q", cfgRef.Check)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_TRIALS", "4000")
	t.Setenv("CMD_TEST_CHECK", "configarg-check")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.IntVar(&cfgRef.Trials, "trials", 0, "trials")
	fs.StringVar(&cfgRef.Check, "check", "", "check")
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-trials", "5000"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.Trials != 5000 {
		t.Fatalf("expected parsed flag trials, got %d", cfgRef.Trials)
	}
	if cfgRef.Check != "configarg-check" {
		t.Fatalf("expected env default check, got %q", cfgRef.Check)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected parse config to reject nil target")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(nil, "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(nil, ServiceDiag, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryPropagatesRunError(t *testing.T) {
	want := errors.New("run failed")
	err := RunWithTelemetry(context.Background(), ServiceDiag, func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected run error to propagate, got %v", err)
	}
}

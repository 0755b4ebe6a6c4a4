package main

import (
	"flag"
	"os"

	"github.com/louisbranch/entropy.space/internal/platform/config"
	"github.com/louisbranch/entropy.space/internal/tools/roll"
)

func main() {
	cfg, err := roll.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := roll.Run(cfg, os.Stdout); err != nil {
		config.Exitf("roll: %v", err)
	}
}

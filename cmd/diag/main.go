package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	diagcmd "github.com/louisbranch/entropy.space/internal/cmd/diag"
)

func main() {
	cfg, err := diagcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[DIAG] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := diagcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("diagnostics failed: %v", err)
	}
}

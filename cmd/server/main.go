// Package main starts the safety service and handles termination.
//
// The process is a transport adapter around admission and incident triage so
// persisted event state remains owned by the safety domain.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	safetycmd "github.com/festsafe/festsafe/internal/cmd/safety"
	"github.com/festsafe/festsafe/internal/platform/config"
)

func main() {
	cfg, err := safetycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[SAFETY] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := safetycmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve: %v", err)
	}
}

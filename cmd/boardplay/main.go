package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/boardplay/internal/cmd/boardplay"
	"github.com/louisbranch/boardplay/internal/platform/config"
)

func main() {
	cfg, err := boardplay.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[BOARDPLAY] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.ExitOnError("boardplay", boardplay.Run(ctx, cfg, os.Stdout))
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/dot11dec/internal/config"
	"github.com/danmuck/dot11dec/internal/logging"
	"github.com/danmuck/dot11dec/internal/server"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "optional TOML config")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dot11d: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := log.Logger
	if *configPath != "" {
		logger = logging.FromFile(cfg.Log.Level, cfg.Log.JSON)
	}
	logger = logger.With().Str("app", cfg.Server.Name).Logger()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg.Server, logger).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dot11d: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shotam27/NoGambleMonsterBattle/internal/config"
	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := config.Path()
	cfg, err := config.Load(path)
	if err != nil {
		logging.Fatal("Missing or invalid monster battle configuration", err, logging.Fields{constants.LogFieldConfig: path})
	}
	logging.SetOutput(os.Stderr, logging.ParseLevel(cfg.Server.LogLevel))

	if err := run(ctx, cfg); err != nil {
		logging.Fatal("server stopped with error", err, nil)
	}
	logging.Info("server stopped", nil)
}

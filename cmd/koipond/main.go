// Package main is the entry point for the koi pond viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/koipond/internal/config"
	"github.com/Faultbox/koipond/internal/game"
	"github.com/Faultbox/koipond/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	// os.Exit skips defers, so the pond itself runs inside run.
	err = run(cfg)
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger.Info("=== Koi Pond ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create pond", zap.Error(err))
		return err
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("pond error", zap.Error(err))
		return err
	}

	logger.Info("pond closed normally")
	return nil
}

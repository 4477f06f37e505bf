// Package main is the entry point for the Mars globe viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mars-globe/internal/config"
	"github.com/Faultbox/mars-globe/internal/globe"
	"github.com/Faultbox/mars-globe/internal/logger"
	"github.com/Faultbox/mars-globe/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.SavePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	if err := initLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(knownEase); err != nil {
		logger.Error("invalid config", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("=== Mars Globe ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		v.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func initLogger(lc config.LoggingConfig) error {
	return logger.InitWithFileConfig(lc.Level, logger.FileConfig{
		Path:       lc.LogFile,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
		Compress:   lc.Compress,
	}, true)
}

func knownEase(name string) bool {
	_, err := globe.LookupEase(name)
	return err == nil
}

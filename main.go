package main

import (
	"flag"
	"log/slog"

	"github.com/soocke/junction-planner-go/app"
	"github.com/soocke/junction-planner-go/config"
)

func main() {
	cfgPath := flag.String("config", "junction-planner.json", "path to a JSON or YAML config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and memory diagnostics")
	flag.Parse()

	// Base config from file, defaults when absent
	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("Junction Signal Planner", 1100, 760, cfg, *cfgPath, logger)
	application.Start()
}

package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"docrank/internal/api"
	"docrank/internal/config"
	"docrank/internal/engine"
	"docrank/internal/extract"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	eng, err := engine.FromConfig(cfg)
	if err != nil {
		logger.Error("failed to assemble engine", "error", err)
		os.Exit(1)
	}
	ext := &extract.Extractor{FallbackPdftotext: cfg.Extract.FallbackPdftotext}

	srv := api.NewServer(eng, ext, logger, cfg.Server.MaxUploadBytes)
	logger.Info("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, srv); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docrank/internal/config"
	"docrank/internal/engine"
	"docrank/internal/extract"
	"docrank/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, persona, job string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&persona, "persona", "", "Initial persona text")
	flag.StringVar(&job, "job", "", "Initial job-to-be-done text")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Println("Usage: docrank-tui [--config=config.yaml] [--persona=...] [--job=...] <input-dir>")
		os.Exit(1)
	}
	inputDir := flag.Arg(0)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	eng, err := engine.FromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to assemble engine: %v", err)
	}
	ext := &extract.Extractor{FallbackPdftotext: cfg.Extract.FallbackPdftotext}

	docs, warnings, err := ext.LoadDir(inputDir)
	if err != nil {
		log.Fatalf("failed to load documents: %v", err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}

	m := tui.New(eng, docs, persona, job)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"docrank/internal/config"
	"docrank/internal/engine"
	"docrank/internal/extract"
	"docrank/internal/report"
)

const (
	defaultPersona = "Research Analyst"
	defaultJob     = "Analyze and summarize key findings from the provided documents"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, inputDir, outputPath, persona, job string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docrank/config.yaml if not provided)")
	flag.StringVar(&inputDir, "input", "input", "Directory containing the PDF documents")
	flag.StringVar(&outputPath, "output", "output/docrank_output.json", "Path for the JSON report")
	flag.StringVar(&persona, "persona", "", "Persona text (falls back to persona.txt in the input directory)")
	flag.StringVar(&job, "job", "", "Job-to-be-done text (falls back to job.txt in the input directory)")
	flag.Parse()

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

	persona = resolveText(persona, filepath.Join(inputDir, "persona.txt"), defaultPersona)
	job = resolveText(job, filepath.Join(inputDir, "job.txt"), defaultJob)

	started := time.Now()
	docs, warnings, err := ext.LoadDir(inputDir)
	if err != nil {
		log.Fatalf("failed to load documents: %v", err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}
	log.Printf("processing %d documents with persona %q", len(docs), persona)

	res := eng.Run(docs, persona, job)

	inputs := make([]string, 0, len(docs))
	for _, d := range docs {
		inputs = append(inputs, d.ID)
	}
	rep := report.Build(res, inputs, persona, job, started, time.Since(started))
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("failed to create output directory: %v", err)
		}
	}
	if err := rep.WriteFile(outputPath); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	log.Printf("wrote %d ranked sections and %d excerpts to %s in %.2fs",
		len(rep.ExtractedSections), len(rep.SubsectionAnalysis), outputPath, time.Since(started).Seconds())
}

func resolveText(flagValue, path, fallback string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if data, err := os.ReadFile(path); err == nil {
		if s := strings.TrimSpace(string(data)); s != "" {
			return s
		}
	}
	return fallback
}

package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the semantic embedding backend.
// Type "none" disables the semantic signal entirely.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// ScoringConfig holds the composite-score weights and the incomplete-section
// threshold. Setting keyword and quality weights to zero reduces the scorer
// to the pure embedding-similarity variant.
type ScoringConfig struct {
	SemanticWeight float64 `yaml:"semantic_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
	QualityWeight  float64 `yaml:"quality_weight"`
	MinBodyTokens  int     `yaml:"min_body_tokens"`
}

// RankingConfig bounds the extracted-sections output.
type RankingConfig struct {
	TopSections int `yaml:"top_sections"`
}

// RefinerConfig budgets the sub-section excerpts.
type RefinerConfig struct {
	MaxSentences int `yaml:"max_sentences"`
	MaxChars     int `yaml:"max_chars"`
}

// SegmenterConfig tunes heading detection.
type SegmenterConfig struct {
	MaxHeadingLength int `yaml:"max_heading_length"`
}

// ExtractConfig configures the PDF extraction collaborator.
type ExtractConfig struct {
	FallbackPdftotext bool `yaml:"fallback_pdftotext"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Refiner   RefinerConfig   `yaml:"refiner"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Extract   ExtractConfig   `yaml:"extract"`
	Server    ServerConfig    `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docrank/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docrank", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Embedder: EmbedderConfig{Type: "tfidf"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Scoring.SemanticWeight == 0 && cfg.Scoring.KeywordWeight == 0 && cfg.Scoring.QualityWeight == 0 {
		cfg.Scoring.SemanticWeight = 0.5
		cfg.Scoring.KeywordWeight = 0.3
		cfg.Scoring.QualityWeight = 0.2
	}
	if cfg.Scoring.MinBodyTokens == 0 {
		cfg.Scoring.MinBodyTokens = 10
	}
	if cfg.Ranking.TopSections == 0 {
		cfg.Ranking.TopSections = 10
	}
	if cfg.Refiner.MaxSentences == 0 {
		cfg.Refiner.MaxSentences = 4
	}
	if cfg.Refiner.MaxChars == 0 {
		cfg.Refiner.MaxChars = 500
	}
	if cfg.Segmenter.MaxHeadingLength == 0 {
		cfg.Segmenter.MaxHeadingLength = 120
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8090"
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 50 << 20
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
}

package engine

import (
	"fmt"
	"time"

	"docrank/internal/config"
	"docrank/internal/embedding"
	"docrank/internal/embedding/openai"
	"docrank/internal/embedding/tfidf"
	"docrank/internal/refiner"
	"docrank/internal/scorer"
	"docrank/internal/segmenter"
)

// FromConfig assembles the full pipeline from application configuration.
func FromConfig(cfg *config.AppConfig) (*Engine, error) {
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "openai":
		occ := cfg.Embedder.OpenAI
		if occ == nil {
			occ = &config.OpenAIEmbedderConfig{}
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   occ.BaseURL,
			APIKeyEnv: occ.APIKeyEnv,
			Model:     occ.Model,
			Timeout:   time.Duration(occ.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedder init: %w", err)
		}
		emb = client
	case "none":
		emb = nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}

	seg := segmenter.New(cfg.Segmenter.MaxHeadingLength)
	sc := scorer.New(scorer.Weights{
		Semantic: cfg.Scoring.SemanticWeight,
		Keyword:  cfg.Scoring.KeywordWeight,
		Quality:  cfg.Scoring.QualityWeight,
	}, cfg.Scoring.MinBodyTokens)
	ref := refiner.New(cfg.Refiner.MaxSentences, cfg.Refiner.MaxChars)
	return New(seg, sc, ref, emb, cfg.Ranking.TopSections), nil
}

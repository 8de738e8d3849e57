package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	oai "github.com/sashabaranov/go-openai"
)

// Client is an OpenAI-compatible embeddings backend implementing the
// Embedder interface over the go-openai client.
type Client struct {
	client    *oai.Client
	model     string
	timeout   time.Duration
	dimension int
}

// Config configures the OpenAI-compatible embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a new embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = string(oai.SmallEmbedding3)
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	oc := oai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: t}
	return &Client{
		client:  oai.NewClientWithConfig(oc),
		model:   cfg.Model,
		timeout: t,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// Prepare is a no-op for remote embedding; the dimension is set lazily on
// the first successful embed.
func (c *Client) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
// It is 0 until the first embed succeeds.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	resp, err := c.client.CreateEmbeddings(ctx, oai.EmbeddingRequest{
		Input: []string{text},
		Model: oai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embeddings response carried no data")
	}
	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	if c.dimension == 0 {
		c.dimension = len(vec)
	}
	return vec, nil
}

package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/polyarguminds/polyargu/internal/domain"
)

// GeminiClient is the alternate oracle backend, calling the Gemini API
// directly. One genai client is created per distinct credential so role
// routing still holds.
type GeminiClient struct {
	clients map[string]*genai.Client
	model   string
	keys    RoleKeys
	timeout time.Duration
}

type GeminiConfig struct {
	Model   string
	Keys    RoleKeys
	Timeout time.Duration
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.Keys.Default == "" {
		return nil, fmt.Errorf("gemini client requires a default API key")
	}

	clients := make(map[string]*genai.Client)
	for _, key := range []string{cfg.Keys.Default, cfg.Keys.Pro, cfg.Keys.Con, cfg.Keys.Judge} {
		if key == "" {
			continue
		}
		if _, ok := clients[key]; ok {
			continue
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		clients[key] = client
	}

	return &GeminiClient{
		clients: clients,
		model:   cfg.Model,
		keys:    cfg.Keys,
		timeout: cfg.Timeout,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string, role domain.AgentRole) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	client := c.clients[c.keys.forRole(role)]
	if client == nil {
		client = c.clients[c.keys.Default]
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return result.Text(), nil
}

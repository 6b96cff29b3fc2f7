// Package llm provides oracle transports for the discussion engine. All of
// them implement domain.LLMClient: prompt text in, response text out, with
// API credentials selected by agent role.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/polyarguminds/polyargu/internal/domain"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// RoleKeys holds the API credentials routed by role. PRO, CON, and JUDGE get
// dedicated keys; every other role uses Default. Empty role keys fall back to
// Default.
type RoleKeys struct {
	Pro     string
	Con     string
	Judge   string
	Default string
}

func (k RoleKeys) forRole(role domain.AgentRole) string {
	key := k.Default
	switch role {
	case domain.RolePro:
		key = k.Pro
	case domain.RoleCon:
		key = k.Con
	case domain.RoleJudge:
		key = k.Judge
	}
	if key == "" {
		key = k.Default
	}
	return key
}

// OpenRouterClient talks to OpenRouter's OpenAI-compatible chat completions
// endpoint.
type OpenRouterClient struct {
	client  openai.Client
	model   string
	keys    RoleKeys
	timeout time.Duration
}

type OpenRouterConfig struct {
	Model   string
	Keys    RoleKeys
	Timeout time.Duration
	// Referer and Title populate OpenRouter's optional attribution headers.
	Referer string
	Title   string
}

func NewOpenRouterClient(cfg OpenRouterConfig) *OpenRouterClient {
	opts := []option.RequestOption{
		option.WithBaseURL(openRouterBaseURL),
	}
	if cfg.Referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.Referer))
	}
	if cfg.Title != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.Title))
	}

	return &OpenRouterClient{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		keys:    cfg.Keys,
		timeout: cfg.Timeout,
	}
}

func (c *OpenRouterClient) Generate(ctx context.Context, prompt string, role domain.AgentRole) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.7),
	}, option.WithAPIKey(c.keys.forRole(role)))
	if err != nil {
		return "", fmt.Errorf("openrouter chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

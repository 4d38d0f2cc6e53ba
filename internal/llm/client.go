// Package llm wraps the probabilistic text-generation capability behind the
// single call the prediction pipeline needs. Every invocation is stateless:
// a fresh session identifier, a fresh message pair, no shared history, so
// concurrent predictions cannot interfere.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"geomed/internal/prediction/models"
)

// Config holds the generation-service connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// RequestsPerMinute bounds calls across the process. Zero disables the
	// limiter.
	RequestsPerMinute int
}

// Client issues one generation call per prediction.
type Client struct {
	chatModel model.ChatModel
	limiter   *rate.Limiter
	logger    *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &Client{
		chatModel: chatModel,
		limiter:   limiter,
		logger:    logger,
	}, nil
}

// Infer builds the structured prompt and invokes the generation service
// exactly once. There is no retry here: the pipeline absorbs a failure into
// degraded attributes, and retry policy belongs to the service itself.
func (c *Client) Infer(ctx context.Context, query models.SubjectQuery, evidence models.EvidenceResult) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	sessionID := "country-predict-" + uuid.NewString()
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: buildPrompt(query, evidence)},
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		c.logger.WarnContext(ctx, "generation call failed",
			"session_id", sessionID,
			"subject", query.Name,
			"error", err,
		)
		return "", fmt.Errorf("generate: %w", err)
	}

	c.logger.DebugContext(ctx, "generation call completed",
		"session_id", sessionID,
		"subject", query.Name,
		"response_bytes", len(resp.Content),
	)
	return resp.Content, nil
}

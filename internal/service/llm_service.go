package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"statement-analyzer/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// CompletionRequest is one prompt sent to the completion service. Everything
// request-specific travels in here; completers keep no per-request state.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
}

// Completer returns the model's free-form reply to a prompt.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// NewCompleter builds the process-wide completion client for the configured
// provider. A missing credential does not fail startup; every call then
// returns a ConfigurationError instead.
func NewCompleter(cfg config.CompletionConfig, logger *zap.Logger) (Completer, func() error, error) {
	noop := func() error { return nil }

	if cfg.APIKey() == "" {
		logger.Warn("Completion service credential is not set, analysis requests will fail",
			zap.String("provider", cfg.Provider),
		)
		return unconfiguredCompleter{}, noop, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAICompleter(cfg.OpenAI, cfg.Timeout, logger), noop, nil
	case config.ProviderGigaChat:
		c, err := NewGigaChatCompleter(cfg.GigaChat, cfg.Timeout, logger)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
}

// OpenAICompleter talks to any OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	client *openai.Client
	logger *zap.Logger
}

func NewOpenAICompleter(cfg config.OpenAIConfig, timeout time.Duration, logger *zap.Logger) *OpenAICompleter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	c.logger.Debug("Completion received",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

// GigaChatCompleter uses Sber's GigaChat through gigago.
type GigaChatCompleter struct {
	client *gigago.Client
	logger *zap.Logger
}

// NewGigaChatCompleter fetches the first access token before returning, so a
// bad key or an unreachable OAuth endpoint fails here.
func NewGigaChatCompleter(cfg config.GigaChatConfig, timeout time.Duration, logger *zap.Logger) (*GigaChatCompleter, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if timeout > 0 {
		opts = append(opts, gigago.WithCustomTimeout(timeout))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, gigago.WithCustomURLAI(cfg.BaseURL))
	}
	if cfg.OAuthURL != "" {
		opts = append(opts, gigago.WithCustomURLOauth(cfg.OAuthURL))
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(context.Background(), cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	return &GigaChatCompleter{client: client, logger: logger}, nil
}

func (c *GigaChatCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := c.client.GenerativeModel(req.Model)
	model.SystemInstruction = req.System
	model.Temperature = req.Temperature

	resp, err := model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: req.Prompt},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *GigaChatCompleter) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}

type unconfiguredCompleter struct{}

func (unconfiguredCompleter) Complete(context.Context, CompletionRequest) (string, error) {
	return "", newServiceError(KindConfiguration, "completion service is not configured", ErrMissingAPIKey)
}

package llm

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/router"
)

const systemPrompt = `You answer short factual service questions (weather, time, news, prices).
Reply with a single short paragraph of plain text. If you cannot answer,
say so briefly. Do not use markdown.`

// Handler implements router.QueryHandler using OpenAI-compatible chat APIs.
type Handler struct {
	client llms.Model
	logger *slog.Logger
}

// newHandler is an internal constructor that returns the concrete type.
func newHandler(config *router.Config) (*Handler, error) {
	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Handler{
		client: client,
		logger: slog.Default().With("component", "llm-router"),
	}, nil
}

// NewHandler creates a query handler using the provided configuration.
//
// Returns router.QueryHandler interface to enforce abstraction.
func NewHandler(config *router.Config) (router.QueryHandler, error) {
	return newHandler(config)
}

// HandleQuery forwards the raw query to the external service and wraps the
// answer in the canonical Response shape.
func (h *Handler) HandleQuery(ctx context.Context, rawQuery string) (core.Response, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(rawQuery),
			},
		},
	}

	response, err := h.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		h.logger.Error("service query failed", "err", err)
		return core.Response{}, err
	}

	if len(response.Choices) < 1 {
		h.logger.Debug("no choices returned from model")
		return core.Response{}, router.ErrEmptyAnswer
	}

	answer := strings.TrimSpace(response.Choices[0].Content)
	if answer == "" {
		return core.Response{}, router.ErrEmptyAnswer
	}

	return core.Response{
		Topic:     "service",
		Main:      answer,
		Citations: map[int]core.ID{},
	}, nil
}

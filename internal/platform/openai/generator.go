package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/businessfurkan/eylulakademi-api/internal/config"
	"github.com/businessfurkan/eylulakademi-api/internal/domain"
	"github.com/businessfurkan/eylulakademi-api/internal/generation"
)

// Generator implements generation.Generator by chaining the prompt builder,
// the completion client and the response normalizer.
type Generator struct {
	logger *slog.Logger
	client *Client
}

// Compile-time check that Generator satisfies the generation interface.
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator backed by a chat-completion client built
// from the given upstream configuration.
func NewGenerator(logger *slog.Logger, cfg config.UpstreamConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	client, err := NewClient(logger, cfg)
	if err != nil {
		return nil, err
	}

	return &Generator{
		logger: logger,
		client: client,
	}, nil
}

// Configured reports whether an upstream credential is present.
func (g *Generator) Configured() bool {
	return g.client.Configured()
}

// GenerateFlashcards runs the full pipeline for one request: build the
// audience-specific prompt, call the completion service, normalize the raw
// text into at most count flashcards.
func (g *Generator) GenerateFlashcards(
	ctx context.Context,
	subject, topic string,
	count int,
) ([]domain.Flashcard, error) {
	prompt := generation.BuildPrompt(subject, topic, count)

	g.logger.DebugContext(ctx, "built generation prompt",
		"audience", string(generation.AudienceFor(subject)),
		"topic", topic,
		"count", count,
		"prompt_length", len(prompt))

	rawText, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cards, err := generation.Normalize(rawText, count, topic, subject)
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to normalize generated text",
			"error", err,
			"raw_length", len(rawText))
		return nil, err
	}

	g.logger.InfoContext(ctx, "generated flashcards",
		"requested", count,
		"returned", len(cards),
		"subject", subject,
		"topic", topic)

	return cards, nil
}

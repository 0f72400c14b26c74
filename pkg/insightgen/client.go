// Package insightgen calls the chat-completions API to turn a week of mood
// logs into a short reflection. It never retries and never caches: a failed
// upstream call fails the request it belongs to, keeping failure attribution
// clear to the caller.
package insightgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/quietmind/backend/internal/models"
)

// Per-field substitutes when the model's JSON is valid but incomplete.
const (
	DefaultInsight = "You showed up for yourself this week."
	DefaultTryThis = "Write one sentence about what can wait until tomorrow."

	// fallbackTryThis pairs with raw model text when the output is not JSON
	// at all: the text becomes the insight and this becomes the action.
	fallbackTryThis = "Try 5 slow breaths: inhale 4 seconds, exhale 6 seconds, repeat five times."
)

// UpstreamError reports a non-success response from the completions endpoint.
// Body carries the provider's raw error text for operator diagnostics.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completions endpoint returned status %d: %s", e.Status, e.Body)
}

// Config holds the client settings
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	// BaseURL overrides the API endpoint; empty means the provider default
	BaseURL string
}

// Client generates reflections through the chat-completions API.
type Client struct {
	api         openai.Client
	model       string
	temperature float64
}

// NewClient creates a new reflection client
func NewClient(cfg Config) *Client {
	// The transport's automatic retries are disabled: a slow or failing
	// provider must not silently multiply load.
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:         openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Generate sends the prompt as a single user message and parses the model's
// reply into a Reflection. A reply that is not the requested JSON shape is
// recovered rather than rejected: raw text is wrapped as the insight, and
// missing fields are filled with fixed defaults.
func (c *Client) Generate(ctx context.Context, prompt string) (models.Reflection, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return models.Reflection{}, &UpstreamError{Status: apierr.StatusCode, Body: apierr.RawJSON()}
		}
		return models.Reflection{}, &UpstreamError{Body: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return models.Reflection{}, &UpstreamError{Body: "completions response contained no choices"}
	}

	return ParseReflection(resp.Choices[0].Message.Content), nil
}

// ParseReflection turns raw model output into a Reflection, applying the
// recovery rules above.
func ParseReflection(raw string) models.Reflection {
	var reflection models.Reflection
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &reflection); err != nil {
		return models.Reflection{Insight: raw, TryThis: fallbackTryThis}
	}

	if reflection.Insight == "" {
		reflection.Insight = DefaultInsight
	}
	if reflection.TryThis == "" {
		reflection.TryThis = DefaultTryThis
	}
	return reflection
}

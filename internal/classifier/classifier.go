// Package classifier implements the note classification client for Verdant.
// It sends a user's action note to a text-generation model with a fixed
// instruction prompt and parses the reply into a structured extraction
// result. The client never fails: any model, network, or parse error is
// absorbed into a zero-confidence fallback result that routes the note to
// human review.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// System defines the public contract for note classification.
type System interface {
	// Classify extracts a structured action from free-text note content.
	// It always returns a usable Result; failures degrade to the fallback
	// (category other, confidence 0) rather than surfacing an error.
	Classify(ctx context.Context, noteContent string) Result
}

// Chatter abstracts a single text inference call against the model service.
type Chatter interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

type agentChatter struct {
	cfg gaconfig.AgentConfig
}

// NewAgentChatter creates a Chatter backed by a go-agents agent.
// A fresh agent is constructed per call, matching one attempt per invocation.
func NewAgentChatter(cfg gaconfig.AgentConfig) Chatter {
	return &agentChatter{cfg: cfg}
}

func (c *agentChatter) Chat(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}

type client struct {
	chatter Chatter
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a classification client backed by the configured agent.
func New(cfg gaconfig.AgentConfig, timeout time.Duration, logger *slog.Logger) System {
	return NewWithChatter(NewAgentChatter(cfg), timeout, logger)
}

// NewWithChatter creates a classification client over an explicit Chatter.
func NewWithChatter(chatter Chatter, timeout time.Duration, logger *slog.Logger) System {
	return &client{
		chatter: chatter,
		timeout: timeout,
		logger:  logger.With("system", "classifier"),
	}
}

func (c *client) Classify(ctx context.Context, noteContent string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	content, err := c.chatter.Chat(ctx, Prompt(noteContent))
	if err != nil {
		c.logger.Warn("model call failed", "error", err)
		return Fallback("model classification failed")
	}

	result, err := Decode(content)
	if err != nil {
		c.logger.Warn("model response rejected", "error", err)
		return Fallback("model response could not be parsed")
	}

	c.logger.Info("note classified",
		"category", result.Category,
		"action_type", result.ActionType,
		"confidence", result.Confidence,
	)
	return result
}

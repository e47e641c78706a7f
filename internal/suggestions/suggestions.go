// Package suggestions generates personal action suggestions from article
// content. Given an article a user just read, the model proposes three
// concrete first-person commitments the user could adopt.
package suggestions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/verdantapp/verdant/internal/classifier"
	"github.com/verdantapp/verdant/pkg/formatting"
)

// suggestionCount is the exact number of suggestions a response must carry.
const suggestionCount = 3

// contentLimit caps how much article body is sent to the model.
const contentLimit = 800

// Domain errors for suggestion operations.
var (
	ErrInvalidRequest = errors.New("invalid suggestion request")
	ErrGeneration     = errors.New("suggestion generation failed")
)

// Command carries the article context for generating suggestions.
type Command struct {
	ArticleTitle    string   `json:"article_title"`
	ArticleSubtitle string   `json:"article_subtitle"`
	KeyTakeaways    []string `json:"key_takeaways"`
	ArticleContent  string   `json:"article_content"`
}

// System defines the public contract for suggestion operations.
type System interface {
	Handler() *Handler

	// Generate returns exactly three first-person action suggestions
	// grounded in the given article.
	Generate(ctx context.Context, cmd Command) ([]string, error)
}

type service struct {
	chatter classifier.Chatter
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a suggestions service from the given agent configuration.
// Generation uses a higher sampling temperature than classification since
// variety matters more than determinism here.
func New(cfg gaconfig.AgentConfig, timeout time.Duration, logger *slog.Logger) System {
	return NewWithChatter(classifier.NewAgentChatter(creativeConfig(cfg)), timeout, logger)
}

// NewWithChatter creates a suggestions service around an explicit Chatter,
// primarily for testing.
func NewWithChatter(chatter classifier.Chatter, timeout time.Duration, logger *slog.Logger) System {
	return &service{
		chatter: chatter,
		timeout: timeout,
		logger:  logger.With("system", "suggestions"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Generate(ctx context.Context, cmd Command) ([]string, error) {
	if strings.TrimSpace(cmd.ArticleTitle) == "" {
		return nil, fmt.Errorf("%w: article_title is required", ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.chatter.Chat(ctx, buildPrompt(cmd))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	parsed, err := formatting.Parse[[]string](content)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable model response", ErrGeneration)
	}

	if len(parsed) != suggestionCount {
		return nil, fmt.Errorf("%w: expected %d suggestions, got %d",
			ErrGeneration, suggestionCount, len(parsed))
	}

	s.logger.Info("suggestions generated", "article", cmd.ArticleTitle)
	return parsed, nil
}

// creativeConfig copies the agent configuration with a raised temperature.
func creativeConfig(cfg gaconfig.AgentConfig) gaconfig.AgentConfig {
	if cfg.Provider != nil {
		provider := *cfg.Provider
		provider.Options = make(map[string]any, len(cfg.Provider.Options)+1)
		for k, v := range cfg.Provider.Options {
			provider.Options[k] = v
		}
		provider.Options["temperature"] = 0.8
		cfg.Provider = &provider
	}
	return cfg
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// sanitize strips markup and collapses whitespace before the text is
// embedded in a prompt.
func sanitize(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

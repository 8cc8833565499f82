// Package ai asks a language model which agency should own a new ticket.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/config"
)

// ErrNoSuggestion is returned when the model declines or names an unknown agency.
var ErrNoSuggestion = errors.New("no agency suggestion")

// AgencyOption is an agency the model may pick.
type AgencyOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoutingHint tells the model how similar categories are routed today.
type RoutingHint struct {
	Category string `json:"category"`
	Agency   string `json:"agency"`
}

// Request is the ticket context sent to the model.
type Request struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location,omitempty"`
	Category    string         `json:"category,omitempty"`
	Agencies    []AgencyOption `json:"agencies"`
	Rules       []RoutingHint  `json:"routingRules,omitempty"`
}

type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicSuggester picks an agency with Claude.
type AnthropicSuggester struct {
	messages messageCreator
	model    string
	cfg      config.AIConfig
	logger   *zap.Logger
}

// NewAnthropicSuggester builds a suggester from configuration.
func NewAnthropicSuggester(cfg config.AIConfig, logger *zap.Logger) *AnthropicSuggester {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(1),
	)
	return &AnthropicSuggester{messages: &client.Messages, model: cfg.Model, cfg: cfg, logger: logger}
}

// SuggestAgency returns the id of one of req.Agencies, or ErrNoSuggestion.
func (s *AnthropicSuggester) SuggestAgency(ctx context.Context, req Request) (string, error) {
	if len(req.Agencies) == 0 {
		return "", ErrNoSuggestion
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	contextJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal context: %w", err)
	}

	msg, err := s.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 256,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(string(contextJSON)))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrNoSuggestion)
	}

	agencyID, reason, err := parseSuggestion(msg.Content[0].Text, req.Agencies)
	if err != nil {
		return "", err
	}
	s.logger.Debug("agency suggested", zap.String("agency_id", agencyID), zap.String("reason", reason))
	return agencyID, nil
}

func buildPrompt(contextJSON string) string {
	return fmt.Sprintf(`You route citizen complaints to the government agency responsible for them.

Ticket and available agencies:
%s

Pick exactly one agency from the "agencies" list, using the existing routing rules as precedent.
If none fits, use null.

Output ONLY a JSON object: {"agencyId": "<id from the list or null>", "reason": "<one sentence>"}`, contextJSON)
}

type suggestion struct {
	AgencyID *string `json:"agencyId"`
	Reason   string  `json:"reason"`
}

// parseSuggestion extracts the JSON answer and checks it names a listed agency.
func parseSuggestion(text string, agencies []AgencyOption) (string, string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", "", fmt.Errorf("%w: no JSON object in response", ErrNoSuggestion)
	}

	var out suggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrNoSuggestion, err)
	}
	if out.AgencyID == nil || *out.AgencyID == "" {
		return "", "", ErrNoSuggestion
	}
	for _, a := range agencies {
		if a.ID == *out.AgencyID {
			return a.ID, out.Reason, nil
		}
	}
	return "", "", fmt.Errorf("%w: unknown agency %q", ErrNoSuggestion, *out.AgencyID)
}

package ai

import (
	"context"
	"errors"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/config"
)

var agencies = []AgencyOption{
	{ID: "a-water", Name: "Water Board"},
	{ID: "a-roads", Name: "Roads Department"},
}

func TestParseSuggestion(t *testing.T) {
	t.Parallel()

	id, reason, err := parseSuggestion("Sure!\n```json\n{\"agencyId\": \"a-roads\", \"reason\": \"pothole\"}\n```", agencies)
	require.NoError(t, err)
	assert.Equal(t, "a-roads", id)
	assert.Equal(t, "pothole", reason)

	for _, text := range []string{
		`{"agencyId": null, "reason": "unclear"}`,
		`{"agencyId": "a-fire"}`,
		`no idea`,
		`{"agencyId": `,
	} {
		_, _, err := parseSuggestion(text, agencies)
		assert.ErrorIs(t, err, ErrNoSuggestion, text)
	}
}

type fakeMessages struct {
	text   string
	err    error
	params anthropic.MessageNewParams
}

func (f *fakeMessages) New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	f.params = body
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.Message{Content: []anthropic.ContentBlockUnion{{Type: "text", Text: f.text}}}, nil
}

func TestSuggestAgency(t *testing.T) {
	t.Parallel()

	fake := &fakeMessages{text: `{"agencyId": "a-water", "reason": "leak"}`}
	s := &AnthropicSuggester{messages: fake, model: "claude-test", cfg: config.AIConfig{}, logger: zap.NewNop()}

	id, err := s.SuggestAgency(context.Background(), Request{Title: "Leaking main", Agencies: agencies})
	require.NoError(t, err)
	assert.Equal(t, "a-water", id)
	assert.Equal(t, anthropic.Model("claude-test"), fake.params.Model)
	require.Len(t, fake.params.Messages, 1)
}

func TestSuggestAgency_Failures(t *testing.T) {
	t.Parallel()

	s := &AnthropicSuggester{messages: &fakeMessages{err: errors.New("529 overloaded")}, logger: zap.NewNop()}
	_, err := s.SuggestAgency(context.Background(), Request{Agencies: agencies})
	assert.Error(t, err)

	_, err = s.SuggestAgency(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIScorer rates headline batches via a chat completion. The model is
// treated as a fallible scoring oracle: it is asked for a bare float and the
// reply is parsed strictly, so a chatty or malformed answer surfaces as an
// error for the Oracle to degrade.
type OpenAIScorer struct {
	client *openai.Client
	model  string
}

// NewOpenAIScorer creates a scorer for the given API key and model.
func NewOpenAIScorer(apiKey, model string) *OpenAIScorer {
	return &OpenAIScorer{client: openai.NewClient(apiKey), model: model}
}

func (s *OpenAIScorer) Name() string { return "openai" }

// ScoreHeadlines asks the model for one average sentiment score in [-1, 1]
// across the given headlines.
func (s *OpenAIScorer) ScoreHeadlines(ctx context.Context, assetName string, headlines []string) (float64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Give a sentiment score between -1 and 1 for the following %s news headlines:\n", assetName)
	for _, h := range headlines {
		b.WriteString(h)
		b.WriteByte('\n')
	}
	b.WriteString("Respond with just the average score (e.g., 0.4 or -0.3).")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		MaxTokens: 10,
	})
	if err != nil {
		return 0, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("chat completion: no choices returned")
	}
	return ParseScore(resp.Choices[0].Message.Content)
}

// ParseScore extracts the scalar score from a model reply. The reply is
// expected to be a bare float, optionally surrounded by whitespace.
func ParseScore(reply string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, fmt.Errorf("parse score %q: %w", reply, err)
	}
	return score, nil
}

// NoopScorer always reports neutral sentiment. Used when no API key is
// configured, mirroring the noop recorder fallback.
type NoopScorer struct{}

func (NoopScorer) Name() string { return "noop" }

func (NoopScorer) ScoreHeadlines(_ context.Context, _ string, _ []string) (float64, error) {
	return 0, nil
}

package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Fixed copy used when the model cannot or should not be called. The
// dashboard renders these instead of an error.
const (
	NoFeedbackMessage = "No feedback yet. Once peers start reviewing you, an AI summary of your strengths and growth areas will appear here."
	FallbackMessage   = "Your AI summary is temporarily unavailable. Your feedback is safe — check back in a little while."
)

const insightSystemPrompt = "You are an assistant that summarizes peer feedback. " +
	"Based on the provided ratings, strengths, and areas for improvement, write a concise, " +
	"actionable summary highlighting key strengths, growth areas, and concrete suggestions. " +
	"If the ratings are uniformly high with no improvement areas, say the feedback is " +
	"overwhelmingly positive; if uniformly low with no strengths, reflect that honestly."

// CompletionClient generates a completion for a prompt. It exists so tests
// can substitute a fake for the OpenAI client.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// InsightInput is the exact payload handed to the summarization model.
type InsightInput struct {
	Ratings          []float64 `json:"ratings"`
	Strengths        []string  `json:"strengths"`
	ImprovementAreas []string  `json:"improvementAreas"`
}

// Insight is the natural-language summary shown on the dashboard. Generated
// is false when a fixed message was substituted.
type Insight struct {
	Summary   string `json:"summary"`
	Generated bool   `json:"generated"`
}

// InsightService produces AI summaries of a user's accumulated feedback.
type InsightService struct {
	Feedback *FeedbackService
	Client   CompletionClient
}

// SummarizeInsights gathers the caller's received feedback and asks the model
// for a summary. Empty input short-circuits to a fixed message without a
// model call; a model failure degrades to a fixed fallback rather than
// surfacing an error — the dashboard never breaks on summarization.
func (s *InsightService) SummarizeInsights(ctx context.Context, userID string) (*Insight, error) {
	feedback, err := s.Feedback.GetFeedbackForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	input := InsightInput{}
	for _, f := range feedback {
		input.Ratings = append(input.Ratings, f.Rating)
		if f.Strengths != "" {
			input.Strengths = append(input.Strengths, f.Strengths)
		}
		if f.AreasForImprovement != "" {
			input.ImprovementAreas = append(input.ImprovementAreas, f.AreasForImprovement)
		}
	}

	if len(input.Ratings) == 0 {
		return &Insight{Summary: NoFeedbackMessage}, nil
	}

	summary, err := s.Client.Complete(ctx, insightSystemPrompt, buildInsightPrompt(input))
	if err != nil {
		log.Printf("⚠️ Summarization failed for %s, serving fallback: %v", userID, err)
		return &Insight{Summary: FallbackMessage}, nil
	}
	return &Insight{Summary: summary, Generated: true}, nil
}

func buildInsightPrompt(input InsightInput) string {
	var b strings.Builder
	b.WriteString("Ratings: ")
	for i, r := range input.Ratings {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.2f", r)
	}
	b.WriteString("\nStrengths:\n")
	for _, s := range input.Strengths {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("Areas for Improvement:\n")
	for _, s := range input.ImprovementAreas {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return b.String()
}

// OpenAICompletionClient implements CompletionClient against the OpenAI chat
// completions API.
type OpenAICompletionClient struct {
	client openai.Client
	model  string
}

// NewOpenAICompletionClient builds the production completion client.
func NewOpenAICompletionClient(apiKey, model string) *OpenAICompletionClient {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAICompletionClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Complete sends one system+user exchange and returns the model's reply.
func (c *OpenAICompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

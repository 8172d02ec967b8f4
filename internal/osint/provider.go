package osint

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"

	"github.com/honei/prospect-cli/internal/model"
	"github.com/honei/prospect-cli/pkg/anthropic"
	"github.com/honei/prospect-cli/pkg/gemini"
)

// Sampling parameters for the research call. The upstream is asked for a
// single JSON object, so the output ceiling bounds one full profile.
const (
	researchTemperature = 1.0
	researchTopP        = 0.95
	researchMaxTokens   = 8000
)

// GroundedAnswer is what a research backend returns: free text expected to
// contain one JSON object, plus the grounding citations for it.
type GroundedAnswer struct {
	Text    string
	Sources []model.SearchSource
}

// Provider is the outbound port to a generative-search backend. Exactly one
// logical operation: generate a grounded profile for the given prompts.
type Provider interface {
	ResearchProfile(ctx context.Context, system, prompt string) (*GroundedAnswer, error)
}

// GeminiProvider grounds research through the Gemini googleSearch tool.
type GeminiProvider struct {
	client gemini.Client
}

// NewGeminiProvider wraps a Gemini client as a research Provider.
func NewGeminiProvider(client gemini.Client) *GeminiProvider {
	return &GeminiProvider{client: client}
}

func (p *GeminiProvider) ResearchProfile(ctx context.Context, system, prompt string) (*GroundedAnswer, error) {
	resp, err := p.client.GenerateContent(ctx, gemini.GenerateRequest{
		SystemInstruction: system,
		Prompt:            prompt,
		EnableSearch:      true,
		Temperature:       researchTemperature,
		TopP:              researchTopP,
		MaxOutputTokens:   researchMaxTokens,
	})
	if err != nil {
		var se *gemini.StatusError
		if errors.As(err, &se) {
			return nil, &UpstreamError{StatusCode: se.StatusCode, Body: se.Body}
		}
		return nil, eris.Wrap(err, "osint: gemini research")
	}

	answer := &GroundedAnswer{Text: resp.Text}
	for _, chunk := range resp.Chunks {
		// Chunks without both uri and title are dropped silently.
		if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		answer.Sources = append(answer.Sources, model.SearchSource{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return answer, nil
}

// ClaudeProvider grounds research through the Anthropic web search tool.
type ClaudeProvider struct {
	client anthropic.Client
}

// NewClaudeProvider wraps an Anthropic client as a research Provider.
func NewClaudeProvider(client anthropic.Client) *ClaudeProvider {
	return &ClaudeProvider{client: client}
}

func (p *ClaudeProvider) ResearchProfile(ctx context.Context, system, prompt string) (*GroundedAnswer, error) {
	temp := researchTemperature
	resp, err := p.client.CreateGroundedMessage(ctx, anthropic.GroundedRequest{
		System:      system,
		Prompt:      prompt,
		MaxTokens:   researchMaxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return nil, eris.Wrap(err, "osint: claude research")
	}

	answer := &GroundedAnswer{Text: resp.Text}
	for _, cit := range resp.Citations {
		if cit.URL == "" || cit.Title == "" {
			continue
		}
		answer.Sources = append(answer.Sources, model.SearchSource{
			URI:   cit.URL,
			Title: cit.Title,
		})
	}
	return answer, nil
}

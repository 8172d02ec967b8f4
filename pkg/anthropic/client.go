// Package anthropic wraps the Anthropic SDK for grounded research messages.
package anthropic

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const (
	defaultModel       = "claude-sonnet-4-5-20250929"
	defaultMaxSearches = 8
)

// Client defines the Anthropic operations used by the profile fetcher.
type Client interface {
	// CreateGroundedMessage sends one message with the server-side web
	// search tool enabled and returns the text plus collected citations.
	CreateGroundedMessage(ctx context.Context, req GroundedRequest) (*GroundedResponse, error)
}

// GroundedRequest is our own request type for CreateGroundedMessage.
type GroundedRequest struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int64
	Temperature *float64
	MaxSearches int64
}

// GroundedResponse carries the concatenated text blocks and the web
// citations attached to them.
type GroundedResponse struct {
	Text      string
	Citations []Citation
	Usage     TokenUsage
}

// Citation is a web search citation from a text block.
type Citation struct {
	URL   string
	Title string
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// sdkClient implements Client using the official anthropic-sdk-go.
type sdkClient struct {
	client      sdk.Client
	model       string
	maxSearches int64
}

// Option configures the client.
type Option func(*sdkClient)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *sdkClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxSearches overrides the default web search cap per request.
func WithMaxSearches(n int) Option {
	return func(c *sdkClient) {
		if n > 0 {
			c.maxSearches = int64(n)
		}
	}
}

// NewClient creates a new Anthropic client backed by the SDK.
func NewClient(apiKey string, opts ...Option) Client {
	c := &sdkClient{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
		model:       defaultModel,
		maxSearches: defaultMaxSearches,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *sdkClient) CreateGroundedMessage(ctx context.Context, req GroundedRequest) (*GroundedResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	maxSearches := req.MaxSearches
	if maxSearches <= 0 {
		maxSearches = c.maxSearches
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: req.MaxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
		Tools: []sdk.ToolUnionParam{{
			OfWebSearchTool20250305: &sdk.WebSearchTool20250305Param{
				MaxUses: sdk.Int(maxSearches),
			},
		}},
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "anthropic: create grounded message")
	}

	out := &GroundedResponse{
		Usage: TokenUsage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}
	for _, block := range msg.Content {
		if block.Type != "text" {
			continue
		}
		out.Text += block.Text
		for _, cit := range block.Citations {
			if cit.Type != "web_search_result_location" {
				continue
			}
			out.Citations = append(out.Citations, Citation{
				URL:   cit.URL,
				Title: cit.Title,
			})
		}
	}
	return out, nil
}

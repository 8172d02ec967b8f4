// Package osint fetches structured business profiles from a generative
// search backend using only public sources.
package osint

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/honei/prospect-cli/internal/model"
)

// Fetcher turns a (business, city) target into a BusinessProfile.
type Fetcher struct {
	provider  Provider
	extractor Extractor
}

// FetcherOption configures the fetcher.
type FetcherOption func(*Fetcher)

// WithExtractor overrides the default brace extractor.
func WithExtractor(ex Extractor) FetcherOption {
	return func(f *Fetcher) {
		f.extractor = ex
	}
}

// NewFetcher creates a profile fetcher over the given research provider.
func NewFetcher(provider Provider, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		provider:  provider,
		extractor: BraceExtractor{},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch issues one grounded research request and returns the normalized
// profile. Citation sources always come from grounding metadata, replacing
// anything the model wrote into that field.
func (f *Fetcher) Fetch(ctx context.Context, businessName, city string) (*model.BusinessProfile, error) {
	businessName = strings.TrimSpace(businessName)
	city = strings.TrimSpace(city)
	if businessName == "" || city == "" {
		return nil, eris.New("osint: se requieren negocio y ciudad")
	}

	log := zap.L().With(zap.String("business", businessName), zap.String("city", city))
	log.Info("fetching business profile")

	answer, err := f.provider.ResearchProfile(ctx, SystemInstruction(), ResearchPrompt(businessName, city))
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(answer.Text) == "" {
		return nil, &EmptyResponseError{}
	}

	raw, err := f.extractor.Extract(answer.Text)
	if err != nil {
		return nil, err
	}

	var profile model.BusinessProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, &MalformedResponseError{Reason: err.Error()}
	}

	profile.GoogleSearchSources = answer.Sources
	profile.Normalize()

	log.Info("profile fetched",
		zap.Int("strategic_contacts", len(profile.StrategicContacts)),
		zap.Int("sources", len(profile.GoogleSearchSources)),
		zap.Float64("fit_score", profile.HoneiAnalysis.FitScore),
	)
	return &profile, nil
}

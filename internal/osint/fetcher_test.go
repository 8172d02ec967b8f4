package osint

import (
	"context"
	"testing"

	"github.com/honei/prospect-cli/internal/model"
)

// stubProvider returns a canned answer or error.
type stubProvider struct {
	answer *GroundedAnswer
	err    error
	calls  int
}

func (s *stubProvider) ResearchProfile(ctx context.Context, system, prompt string) (*GroundedAnswer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.answer, nil
}

func TestFetch_Success(t *testing.T) {
	p := &stubProvider{answer: &GroundedAnswer{
		Text: "Aquí está el resultado:\n{\"businessName\":\"Bar Uno\",\"city\":\"Madrid\",\"googleSearchSources\":[{\"uri\":\"https://hallucinated.example\",\"title\":\"fake\"}]}",
		Sources: []model.SearchSource{
			{URI: "https://baruno.es/aviso-legal", Title: "Aviso Legal"},
		},
	}}

	profile, err := NewFetcher(p).Fetch(context.Background(), " Bar Uno ", " Madrid ")
	if err != nil {
		t.Fatal(err)
	}

	if profile.BusinessName != "Bar Uno" || profile.City != "Madrid" {
		t.Errorf("unexpected identity: %+v", profile.Key())
	}
	// Model-produced sources are clobbered by grounding metadata.
	if len(profile.GoogleSearchSources) != 1 || profile.GoogleSearchSources[0].URI != "https://baruno.es/aviso-legal" {
		t.Errorf("sources = %+v, want grounding metadata only", profile.GoogleSearchSources)
	}
	// Normalization applied at the fetch boundary.
	if profile.PainPoints == nil || profile.CRMStatus != model.CRMStatusNuevo {
		t.Error("fetched profile must be normalized")
	}
}

func TestFetch_EmptyInputs(t *testing.T) {
	p := &stubProvider{}
	f := NewFetcher(p)

	if _, err := f.Fetch(context.Background(), "  ", "Madrid"); err == nil {
		t.Error("blank business name should fail")
	}
	if _, err := f.Fetch(context.Background(), "Bar Uno", "\t"); err == nil {
		t.Error("blank city should fail")
	}
	if p.calls != 0 {
		t.Error("no request may be issued for invalid input")
	}
}

func TestFetch_EmptyResponse(t *testing.T) {
	p := &stubProvider{answer: &GroundedAnswer{Text: "   \n"}}
	_, err := NewFetcher(p).Fetch(context.Background(), "Bar Uno", "Madrid")
	if !IsEmptyResponse(err) {
		t.Errorf("got %v, want EmptyResponseError", err)
	}
}

func TestFetch_MalformedResponse(t *testing.T) {
	p := &stubProvider{answer: &GroundedAnswer{Text: "no data found"}}
	_, err := NewFetcher(p).Fetch(context.Background(), "Bar Uno", "Madrid")
	if !IsMalformed(err) {
		t.Errorf("got %v, want MalformedResponseError", err)
	}
}

func TestFetch_UpstreamErrorPassesThrough(t *testing.T) {
	p := &stubProvider{err: &UpstreamError{StatusCode: 429, Body: "quota"}}
	_, err := NewFetcher(p).Fetch(context.Background(), "Bar Uno", "Madrid")

	ue, ok := IsUpstream(err)
	if !ok || ue.StatusCode != 429 {
		t.Errorf("got %v, want UpstreamError 429", err)
	}
}

func TestFetch_NoSourcesYieldsEmptySlice(t *testing.T) {
	p := &stubProvider{answer: &GroundedAnswer{Text: `{"businessName":"Bar Dos","city":"Valencia"}`}}
	profile, err := NewFetcher(p).Fetch(context.Background(), "Bar Dos", "Valencia")
	if err != nil {
		t.Fatal(err)
	}
	if profile.GoogleSearchSources == nil || len(profile.GoogleSearchSources) != 0 {
		t.Errorf("sources = %#v, want empty non-nil slice", profile.GoogleSearchSources)
	}
}

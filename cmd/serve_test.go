package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honei/prospect-cli/internal/history"
	"github.com/honei/prospect-cli/internal/model"
	"github.com/honei/prospect-cli/internal/osint"
	"github.com/honei/prospect-cli/pkg/abstract"
)

type fakeProvider struct {
	answer *osint.GroundedAnswer
	err    error
}

func (f *fakeProvider) ResearchProfile(ctx context.Context, system, prompt string) (*osint.GroundedAnswer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

type memPort struct {
	data []byte
}

func (m *memPort) Load(ctx context.Context) ([]byte, error) { return m.data, nil }
func (m *memPort) Save(ctx context.Context, b []byte) error { m.data = b; return nil }

type fakeVerifier struct {
	result *abstract.Verification
}

func (f *fakeVerifier) Verify(ctx context.Context, email string) (*abstract.Verification, error) {
	return f.result, nil
}

func newTestServer(t *testing.T, provider osint.Provider, verifier abstract.Client) *apiServer {
	t.Helper()
	st, err := history.NewStore(context.Background(), &memPort{})
	require.NoError(t, err)
	return &apiServer{
		fetcher:  osint.NewFetcher(provider),
		store:    st,
		verifier: verifier,
	}
}

func TestServe_Health(t *testing.T) {
	api := newTestServer(t, &fakeProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	api.routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServe_Research_PersistsAndReturnsProfile(t *testing.T) {
	provider := &fakeProvider{answer: &osint.GroundedAnswer{
		Text: `Aquí tienes el informe: {"businessName":"Bar Manolo","city":"Madrid","honeiAnalysis":{"fitScore":70}}`,
		Sources: []model.SearchSource{
			{URI: "https://example.com", Title: "Ejemplo"},
		},
	}}
	api := newTestServer(t, provider, nil)

	body, _ := json.Marshal(map[string]string{"businessName": "Bar Manolo", "city": "Madrid"})
	req := httptest.NewRequest(http.MethodPost, "/api/business-profile", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	api.routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Profile  model.BusinessProfile `json:"profile"`
		Angle    string                `json:"angle"`
		NextStep string                `json:"nextStep"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Bar Manolo", resp.Profile.BusinessName)
	assert.Len(t, resp.Profile.GoogleSearchSources, 1)
	assert.NotEmpty(t, resp.Angle)
	assert.NotEmpty(t, resp.NextStep)

	// Dossier lands in history.
	assert.Equal(t, 1, api.store.Len())
}

func TestServe_Research_MissingFields(t *testing.T) {
	api := newTestServer(t, &fakeProvider{}, nil)

	body, _ := json.Marshal(map[string]string{"businessName": "Bar Manolo"})
	req := httptest.NewRequest(http.MethodPost, "/api/business-profile", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	api.routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServe_Research_MalformedUpstream(t *testing.T) {
	provider := &fakeProvider{answer: &osint.GroundedAnswer{Text: "sin datos estructurados"}}
	api := newTestServer(t, provider, nil)

	body, _ := json.Marshal(map[string]string{"businessName": "Bar Manolo", "city": "Madrid"})
	req := httptest.NewRequest(http.MethodPost, "/api/business-profile", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	api.routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, 0, api.store.Len())
}

func TestServe_Verify(t *testing.T) {
	verifier := &fakeVerifier{result: &abstract.Verification{
		Email: "hola@bar.es",
		State: abstract.StateVerified,
	}}
	api := newTestServer(t, &fakeProvider{}, verifier)

	body, _ := json.Marshal(map[string]string{"email": "hola@bar.es"})
	req := httptest.NewRequest(http.MethodPost, "/api/verify-email", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	api.routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var v abstract.Verification
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.Equal(t, abstract.StateVerified, v.State)
}

func TestServe_Verify_NotConfigured(t *testing.T) {
	api := newTestServer(t, &fakeProvider{}, nil)

	body, _ := json.Marshal(map[string]string{"email": "hola@bar.es"})
	req := httptest.NewRequest(http.MethodPost, "/api/verify-email", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	api.routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestServe_History_FilterValidation(t *testing.T) {
	api := newTestServer(t, &fakeProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/history?status=Inventado", nil)
	rr := httptest.NewRecorder()
	api.routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rr = httptest.NewRecorder()
	api.routes().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []model.BusinessProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}

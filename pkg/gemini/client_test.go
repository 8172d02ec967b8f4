package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "Resultado: "}, {"text": "{\"businessName\":\"Bar Uno\"}"}]},
				"groundingMetadata": {"groundingChunks": [
					{"web": {"uri": "https://example.es", "title": "Bar Uno"}},
					{"web": {"uri": "", "title": "sin uri"}},
					{}
				]}
			}]
		}`))
	}))
	defer srv.Close()

	// No WithModel: the default must route to gemini-3-pro-preview.
	c := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := c.GenerateContent(context.Background(), GenerateRequest{
		SystemInstruction: "sys",
		Prompt:            "investiga",
		EnableSearch:      true,
		Temperature:       1,
		TopP:              0.95,
		MaxOutputTokens:   8000,
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-3-pro-preview:generateContent", gotPath)
	assert.Equal(t, "Resultado: {\"businessName\":\"Bar Uno\"}", resp.Text)
	assert.Len(t, resp.Chunks, 3)

	// Search tool and sampling parameters must survive marshaling.
	assert.Contains(t, gotBody, "tools")
	gen := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, float64(1), gen["temperature"])
	assert.Equal(t, 0.95, gen["topP"])
	assert.Equal(t, float64(8000), gen["maxOutputTokens"])
}

func TestGenerateContent_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"key not valid"}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := c.GenerateContent(context.Background(), GenerateRequest{Prompt: "x"})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Contains(t, se.Body, "key not valid")
}

func TestGenerateContent_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	resp, err := c.GenerateContent(context.Background(), GenerateRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
	assert.Empty(t, resp.Chunks)
}

func TestWithModel_OverridesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL), WithModel("gemini-2.5-flash"))
	_, err := c.GenerateContent(context.Background(), GenerateRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
}

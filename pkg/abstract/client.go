// Package abstract provides a client for the Abstract email-validation API.
package abstract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://emailvalidation.abstractapi.com/v1/"

// State is the local tri-state classification of a verification result.
type State string

const (
	StateVerified   State = "verified"
	StateUnverified State = "unverified"
	StateError      State = "error"
)

// Verification is the mapped result for one address.
type Verification struct {
	Email        string `json:"email"`
	State        State  `json:"state"`
	Status       string `json:"status"`
	StatusDetail string `json:"statusDetail"`
}

// Client defines the email verification operation.
type Client interface {
	Verify(ctx context.Context, email string) (*Verification, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates an Abstract email-validation client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type wireResponse struct {
	Email          string `json:"email"`
	Deliverability string `json:"deliverability"`
}

func (c *httpClient) Verify(ctx context.Context, email string) (*Verification, error) {
	if email == "" {
		return nil, eris.New("abstract: email is required")
	}

	reqURL := fmt.Sprintf("%s?api_key=%s&email=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "abstract: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Network failures map to the error state with a detail string,
		// mirroring the verified/unverified/error contract.
		return &Verification{
			Email:        email,
			State:        StateError,
			Status:       "ERROR",
			StatusDetail: err.Error(),
		}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "abstract: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return &Verification{
			Email:        email,
			State:        StateError,
			Status:       "ERROR",
			StatusDetail: fmt.Sprintf("verification API returned %d: %s", resp.StatusCode, string(body)),
		}, nil
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, eris.Wrap(err, "abstract: unmarshal response")
	}

	status := wire.Deliverability
	if status == "" {
		status = "UNKNOWN"
	}

	v := &Verification{Email: email, Status: status}
	if status == "DELIVERABLE" {
		v.State = StateVerified
		v.StatusDetail = "Email address is safe to send to"
	} else {
		v.State = StateUnverified
		v.StatusDetail = fmt.Sprintf("Email deliverability: %s", status)
	}
	return v, nil
}

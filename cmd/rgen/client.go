package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fyrsmithlabs/readmegen/internal/summary"
)

// HealthResponse matches internal/http HealthResponse
type HealthResponse struct {
	Status string `json:"status"`
}

// ModelsResponse matches internal/http ModelsResponse
type ModelsResponse struct {
	Models  []string `json:"models"`
	Default string   `json:"default"`
}

// SessionSnapshot matches internal/session Snapshot
type SessionSnapshot struct {
	ID string `json:"id"`
}

// FetchRequest matches internal/http FetchRequest
type FetchRequest struct {
	URL         string `json:"url"`
	GitHubToken string `json:"github_token,omitempty"`
}

// FetchResponse matches internal/http FetchResponse
type FetchResponse struct {
	Summary *summary.RepositorySummary `json:"summary"`
}

// AnalyzeRequest matches internal/http AnalyzeRequest
type AnalyzeRequest struct {
	Context string `json:"context,omitempty"`
	Model   string `json:"model,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
}

// AnalyzeResponse matches internal/http AnalyzeResponse
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
	Error    string `json:"error,omitempty"`
}

// GenerateRequest matches internal/http GenerateRequest
type GenerateRequest struct {
	ProjectName    string `json:"project_name"`
	GitHubUsername string `json:"github_username,omitempty"`
	License        string `json:"license,omitempty"`
	ExtraDesc      string `json:"extra_description,omitempty"`
	CustomSections string `json:"custom_sections,omitempty"`
	Model          string `json:"model,omitempty"`
	APIKey         string `json:"api_key,omitempty"`
}

// GenerateResponse matches internal/http GenerateResponse
type GenerateResponse struct {
	Readme string `json:"readme"`
	Error  string `json:"error,omitempty"`
}

// apiClient is a thin JSON client for the readmegend API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Completions can take a while on large prompts.
		http: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *apiClient) getJSON(path string, out any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.baseURL+path, err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *apiClient) postJSON(path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", c.baseURL+path, err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// createSession opens a fresh session on the server.
func (c *apiClient) createSession() (string, error) {
	var snap SessionSnapshot
	if err := c.postJSON("/api/v1/sessions", nil, &snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

// deleteSession is best-effort cleanup after one-shot commands.
func (c *apiClient) deleteSession(id string) {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/api/v1/sessions/"+id, nil)
	if err != nil {
		return
	}
	if resp, err := c.http.Do(req); err == nil {
		resp.Body.Close()
	}
}

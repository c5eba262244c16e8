package http

import (
	"github.com/fyrsmithlabs/readmegen/internal/config"
	"github.com/fyrsmithlabs/readmegen/internal/scanner"
	"github.com/fyrsmithlabs/readmegen/internal/summary"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// FetchRequest is the request body for POST /api/v1/sessions/:id/fetch.
type FetchRequest struct {
	URL         string        `json:"url"`
	GitHubToken config.Secret `json:"github_token,omitempty"`
}

// FetchResponse is the response body for a successful remote fetch.
type FetchResponse struct {
	Summary *summary.RepositorySummary `json:"summary"`
}

// ScanRequest is the request body for POST /api/v1/sessions/:id/scan.
type ScanRequest struct {
	Path string `json:"path"`
}

// ScanResponse is the response body for a local scan. Skipped lists
// entries the walk could not read; the summary is still usable.
type ScanResponse struct {
	Summary *summary.RepositorySummary `json:"summary"`
	Skipped []scanner.SkipNote         `json:"skipped,omitempty"`
}

// FileContentRequest is the request body for POST /api/v1/sessions/:id/file.
type FileContentRequest struct {
	Path        string        `json:"path"`
	Branch      string        `json:"branch,omitempty"`
	GitHubToken config.Secret `json:"github_token,omitempty"`
}

// FileContentResponse carries best-effort file content. Content is empty
// when the fetch failed; Error carries the cause for inspection.
type FileContentResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// AnalyzeRequest is the request body for POST /api/v1/sessions/:id/analyze.
type AnalyzeRequest struct {
	Context string        `json:"context,omitempty"`
	Model   string        `json:"model,omitempty"`
	APIKey  config.Secret `json:"api_key,omitempty"`
}

// AnalyzeResponse is the analysis result. On completion failure, Analysis
// still carries the legacy inline error rendering and Error carries the
// structured cause.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
	Error    string `json:"error,omitempty"`
}

// GenerateRequest is the request body for POST /api/v1/sessions/:id/generate.
type GenerateRequest struct {
	ProjectName    string        `json:"project_name"`
	GitHubUsername string        `json:"github_username,omitempty"`
	License        string        `json:"license,omitempty"`
	ExtraDesc      string        `json:"extra_description,omitempty"`
	CustomSections string        `json:"custom_sections,omitempty"`
	Model          string        `json:"model,omitempty"`
	APIKey         config.Secret `json:"api_key,omitempty"`
}

// GenerateResponse is the README result, with the same dual error channel
// as AnalyzeResponse.
type GenerateResponse struct {
	Readme string `json:"readme"`
	Error  string `json:"error,omitempty"`
}

// ModelsResponse lists the completion models callers may select.
type ModelsResponse struct {
	Models  []string `json:"models"`
	Default string   `json:"default"`
}

// Package http provides the HTTP API for readmegen.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/readmegen/internal/config"
	"github.com/fyrsmithlabs/readmegen/internal/github"
	"github.com/fyrsmithlabs/readmegen/internal/llm"
	"github.com/fyrsmithlabs/readmegen/internal/prompt"
	"github.com/fyrsmithlabs/readmegen/internal/scanner"
	"github.com/fyrsmithlabs/readmegen/internal/session"
	"github.com/fyrsmithlabs/readmegen/internal/source"
	"github.com/fyrsmithlabs/readmegen/internal/summary"
)

// RepositoryFetcher fetches repository metadata and file content from a
// hosted remote.
type RepositoryFetcher interface {
	FetchRepository(ctx context.Context, ref string, token config.Secret) (*summary.RepositorySummary, error)
	FetchFileContent(ctx context.Context, owner, repo, path, branch string, token config.Secret) (string, error)
}

// DirectoryScanner walks a local directory tree into a summary.
type DirectoryScanner interface {
	Scan(ctx context.Context, root string) (*scanner.Result, error)
}

// Completer issues LLM completion calls.
type Completer interface {
	Complete(ctx context.Context, systemInstruction string, req llm.Request) (string, error)
}

// Server provides HTTP endpoints for readmegen.
type Server struct {
	echo     *echo.Echo
	logger   *zap.Logger
	config   *Config
	sessions *session.Store
	fetcher  RepositoryFetcher
	scanner  DirectoryScanner
	llm      Completer
	metrics  *Metrics
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
	// DefaultModel is reported by GET /api/v1/models.
	DefaultModel string
	// GitHubToken is used for remote fetches when a request does not
	// carry its own token.
	GitHubToken config.Secret
}

// NewServer creates a new HTTP server.
func NewServer(sessions *session.Store, fetcher RepositoryFetcher, dirScanner DirectoryScanner, completer Completer, logger *zap.Logger, cfg *Config) (*Server, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store cannot be nil")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("repository fetcher cannot be nil")
	}
	if dirScanner == nil {
		return nil, fmt.Errorf("directory scanner cannot be nil")
	}
	if completer == nil {
		return nil, fmt.Errorf("completer cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host:         "localhost",
			Port:         8080,
			DefaultModel: config.DefaultModel,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		logger:   logger,
		config:   cfg,
		sessions: sessions,
		fetcher:  fetcher,
		scanner:  dirScanner,
		llm:      completer,
		metrics:  NewMetrics(),
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.GET("/models", s.handleModels)

	v1.POST("/sessions", s.handleCreateSession)
	v1.GET("/sessions/:id", s.handleGetSession)
	v1.DELETE("/sessions/:id", s.handleDeleteSession)
	v1.POST("/sessions/:id/reset", s.handleResetSession)

	v1.POST("/sessions/:id/fetch", s.handleFetch)
	v1.POST("/sessions/:id/scan", s.handleScan)
	v1.POST("/sessions/:id/manual", s.handleManual)
	v1.POST("/sessions/:id/file", s.handleFileContent)

	v1.POST("/sessions/:id/analyze", s.handleAnalyze)
	v1.POST("/sessions/:id/generate", s.handleGenerate)
	v1.GET("/sessions/:id/readme", s.handleReadmeDownload)
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleModels lists the completion models callers may select.
func (s *Server) handleModels(c echo.Context) error {
	return c.JSON(http.StatusOK, ModelsResponse{
		Models:  llm.SupportedModels,
		Default: s.config.DefaultModel,
	})
}

func (s *Server) handleCreateSession(c echo.Context) error {
	sess := s.sessions.Create()
	s.metrics.SessionsActive.Set(float64(s.sessions.Len()))
	s.logger.Debug("session created", zap.String("session_id", sess.ID))
	return c.JSON(http.StatusCreated, sess.View())
}

func (s *Server) handleGetSession(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(c echo.Context) error {
	s.sessions.Delete(c.Param("id"))
	s.metrics.SessionsActive.Set(float64(s.sessions.Len()))
	return c.NoContent(http.StatusNoContent)
}

// handleResetSession clears all derived state but keeps the session alive.
func (s *Server) handleResetSession(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	sess.Reset()
	return c.JSON(http.StatusOK, sess.View())
}

// handleFetch summarizes a hosted repository into the session.
func (s *Server) handleFetch(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	var req FetchRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid fetch request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url field is required")
	}

	sum, err := s.fetcher.FetchRepository(c.Request().Context(), req.URL, s.githubToken(req.GitHubToken))
	if err != nil {
		s.metrics.FetchTotal.WithLabelValues(outcomeError).Inc()
		return fetchError(err)
	}
	s.metrics.FetchTotal.WithLabelValues(outcomeOK).Inc()

	sess.SetSummary(sum, nil)
	s.logger.Info("repository fetched",
		zap.String("session_id", sess.ID),
		zap.String("repo", sum.Name),
		zap.Int("file_count", sum.FileCount),
	)

	return c.JSON(http.StatusOK, FetchResponse{Summary: sum})
}

// githubToken prefers the request-supplied token over the configured one.
func (s *Server) githubToken(requestToken config.Secret) config.Secret {
	if requestToken.IsSet() {
		return requestToken
	}
	return s.config.GitHubToken
}

// fetchError maps remote fetch failures to HTTP errors.
func fetchError(err error) error {
	if errors.Is(err, source.ErrInvalidRef) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var remote *github.RemoteError
	if errors.As(err, &remote) {
		msg := remote.Error()
		if remote.RateLimited() {
			msg += "; supply a github_token to raise the rate limit"
		}
		return echo.NewHTTPError(http.StatusBadGateway, msg)
	}
	var transport *github.TransportError
	if errors.As(err, &transport) {
		return echo.NewHTTPError(http.StatusBadGateway, transport.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// handleScan summarizes a local directory into the session.
func (s *Server) handleScan(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid scan request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path field is required")
	}
	if err := source.ValidateLocalPath(req.Path); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := s.scanner.Scan(c.Request().Context(), req.Path)
	if err != nil {
		s.metrics.ScanTotal.WithLabelValues(outcomeError).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.metrics.ScanTotal.WithLabelValues(outcomeOK).Inc()

	sess.SetSummary(res.Summary, res.Skipped)
	s.logger.Info("directory scanned",
		zap.String("session_id", sess.ID),
		zap.String("path", req.Path),
		zap.Int("file_count", res.Summary.FileCount),
		zap.Int("skipped", len(res.Skipped)),
	)

	return c.JSON(http.StatusOK, ScanResponse{Summary: res.Summary, Skipped: res.Skipped})
}

// handleManual records user-typed project information, replacing any
// previously fetched or scanned summary.
func (s *Server) handleManual(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	var req prompt.ManualInput
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid manual request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description field is required")
	}

	sess.SetManual(req)
	return c.JSON(http.StatusOK, sess.View())
}

// handleFileContent returns best-effort content for one file of the loaded
// project. Failures are reported in the response body, not as HTTP errors,
// so callers can inspect why content is missing.
func (s *Server) handleFileContent(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	var req FileContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path field is required")
	}

	snap := sess.View()
	if snap.Summary == nil {
		return echo.NewHTTPError(http.StatusConflict, "no repository loaded; fetch or scan first")
	}

	var content string
	if snap.Summary.Local {
		content, err = scanner.ReadLocalFile(req.Path, scanner.DefaultReadLines)
	} else {
		branch := req.Branch
		if branch == "" {
			branch = snap.Summary.DefaultBranch
		}
		content, err = s.fetcher.FetchFileContent(c.Request().Context(),
			snap.Summary.Owner, snap.Summary.Name, req.Path, branch, s.githubToken(req.GitHubToken))
	}
	if err != nil {
		s.logger.Debug("file content unavailable",
			zap.String("session_id", sess.ID),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return c.JSON(http.StatusOK, FileContentResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, FileContentResponse{Content: content})
}

// handleAnalyze runs the project-analysis completion for the loaded project.
func (s *Server) handleAnalyze(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	snap := sess.View()
	var composed string
	switch {
	case snap.Manual != nil:
		composed = prompt.Manual(*snap.Manual, req.Context)
	case snap.Summary != nil:
		composed = prompt.Analysis(summaryView(snap.Summary), req.Context)
	default:
		return echo.NewHTTPError(http.StatusConflict, "no project loaded; fetch, scan, or provide manual input first")
	}

	text, err := s.llm.Complete(c.Request().Context(), prompt.SystemInstruction, llm.Request{
		Prompt: composed,
		Model:  req.Model,
		APIKey: req.APIKey,
	})
	if herr := completionHTTPError(err); herr != nil {
		return herr
	}

	rendered := llm.RenderCompletion(text, err)
	sess.SetAnalysis(rendered)

	resp := AnalyzeResponse{Analysis: rendered}
	if err != nil {
		s.metrics.CompletionsTotal.WithLabelValues("analysis", outcomeError).Inc()
		resp.Error = err.Error()
	} else {
		s.metrics.CompletionsTotal.WithLabelValues("analysis", outcomeOK).Inc()
	}
	return c.JSON(http.StatusOK, resp)
}

// handleGenerate runs the README completion using the stored analysis.
func (s *Server) handleGenerate(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ProjectName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "project_name field is required")
	}

	snap := sess.View()
	if snap.Analysis == "" {
		return echo.NewHTTPError(http.StatusConflict, "no analysis available; run analyze first")
	}

	preq := prompt.ReadmeRequest{
		ProjectName:    req.ProjectName,
		License:        req.License,
		GitHubUsername: req.GitHubUsername,
		AnalysisText:   snap.Analysis,
		UserDesc:       req.ExtraDesc,
		CustomSections: req.CustomSections,
	}
	if snap.Summary != nil && !snap.Summary.Local {
		v := summaryView(snap.Summary)
		preq.Repo = &v
	}

	text, err := s.llm.Complete(c.Request().Context(), prompt.SystemInstruction, llm.Request{
		Prompt: prompt.Readme(preq),
		Model:  req.Model,
		APIKey: req.APIKey,
	})
	if herr := completionHTTPError(err); herr != nil {
		return herr
	}

	rendered := llm.RenderCompletion(text, err)
	sess.SetReadme(rendered)

	resp := GenerateResponse{Readme: rendered}
	if err != nil {
		s.metrics.CompletionsTotal.WithLabelValues("readme", outcomeError).Inc()
		resp.Error = err.Error()
	} else {
		s.metrics.CompletionsTotal.WithLabelValues("readme", outcomeOK).Inc()
	}
	return c.JSON(http.StatusOK, resp)
}

// completionHTTPError maps request-validation failures to 400. Endpoint
// failures (CompletionError) are not HTTP errors; callers render those
// inline and return them in the response body.
func completionHTTPError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, llm.ErrMissingAPIKey) ||
		errors.Is(err, llm.ErrUnknownModel) ||
		errors.Is(err, llm.ErrEmptyPrompt) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var cerr *llm.CompletionError
	if errors.As(err, &cerr) {
		return nil
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// handleReadmeDownload serves the generated README as a markdown attachment.
func (s *Server) handleReadmeDownload(c echo.Context) error {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	snap := sess.View()
	if snap.Readme == "" {
		return echo.NewHTTPError(http.StatusNotFound, "no README generated yet")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="README.md"`)
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(snap.Readme))
}

// summaryView adapts a repository summary for prompt composition.
func summaryView(s *summary.RepositorySummary) prompt.SummaryView {
	return prompt.SummaryView{
		Name:            s.Name,
		Description:     s.Description,
		Language:        s.Language,
		Stars:           s.Stars,
		Forks:           s.Forks,
		OpenIssues:      s.OpenIssues,
		Topics:          s.Topics,
		RepoURL:         s.RepoURL,
		FileCount:       s.FileCount,
		Languages:       s.Languages,
		SampleFiles:     s.SampleFiles,
		HasDependencies: s.HasDependencies(),
		HasContainer:    s.HasContainerDefinition,
		HasTests:        s.HasTests,
		ConfigFiles:     s.ConfigFiles,
		Remote:          !s.Local,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Package llm calls the completion endpoint that produces project analyses
// and README documents.
//
// The client speaks the OpenAI-compatible chat API through langchaingo,
// pointed at Groq by default. Every request is a single non-streaming call
// with a system instruction plus one user message; there is no retry policy.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/readmegen/internal/config"
)

// Completion parameters, fixed by contract.
const (
	temperature = 0.7
	maxTokens   = 4096
)

// Client-side request pacing. Keeps a busy session under the provider's
// per-minute quota without retrying anything.
const (
	requestsPerSecond = 2
	burstSize         = 4
)

var (
	// ErrMissingAPIKey indicates no API key was configured or supplied.
	ErrMissingAPIKey = errors.New("completion API key not set")

	// ErrUnknownModel indicates a model identifier outside the allow-list.
	ErrUnknownModel = errors.New("unknown completion model")

	// ErrEmptyPrompt indicates an empty prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// CompletionError is a failure from the completion endpoint. The original
// front end displayed these inline as if they were completion text;
// RenderCompletion preserves that while keeping the error inspectable.
type CompletionError struct {
	Model string
	Err   error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion call failed (model %s): %v", e.Model, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// RenderCompletion returns text, or the legacy inline rendering of err when
// the call failed. The error string matches what the original tool printed
// in place of a completion.
func RenderCompletion(text string, err error) string {
	if err != nil {
		return fmt.Sprintf("Error calling Groq API: %v", err)
	}
	return text
}

// Request is one completion request.
type Request struct {
	// Prompt is the composed user message.
	Prompt string
	// Model overrides the configured default when non-empty. Must be in
	// the allow-list.
	Model string
	// APIKey overrides the configured key when set (user-entered mode).
	APIKey config.Secret
}

// modelFactory builds a chat model; swappable in tests.
type modelFactory func(apiKey, baseURL, model string) (llms.Model, error)

// Service issues completion calls.
type Service struct {
	cfg      config.LLMConfig
	logger   *zap.Logger
	limiter  *rate.Limiter
	newModel modelFactory
}

// NewService creates a completion service from config.
func NewService(cfg config.LLMConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:      cfg,
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
		newModel: newOpenAIModel,
	}
}

func newOpenAIModel(apiKey, baseURL, model string) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
}

// Complete sends the prompt with the fixed system instruction and returns
// the single generated completion.
//
// Validation failures (missing key, unknown model, empty prompt) return
// sentinel errors before any call. Endpoint failures return a
// *CompletionError; callers that need the legacy inline rendering pass the
// result through RenderCompletion.
func (s *Service) Complete(ctx context.Context, systemInstruction string, req Request) (string, error) {
	if req.Prompt == "" {
		return "", ErrEmptyPrompt
	}

	model := req.Model
	if model == "" {
		model = s.cfg.Model
	}
	if !IsSupportedModel(model) {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}

	apiKey := req.APIKey
	if !apiKey.IsSet() {
		apiKey = s.cfg.APIKey
	}
	if !apiKey.IsSet() {
		return "", ErrMissingAPIKey
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	client, err := s.newModel(apiKey.Value(), s.cfg.BaseURL, model)
	if err != nil {
		return "", &CompletionError{Model: model, Err: err}
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemInstruction),
		llms.TextParts(schema.ChatMessageTypeHuman, req.Prompt),
	}

	resp, err := client.GenerateContent(ctx, messages,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		s.logger.Warn("completion call failed",
			zap.String("model", model),
			zap.Error(err))
		return "", &CompletionError{Model: model, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Model: model, Err: errors.New("empty response")}
	}

	s.logger.Debug("completion succeeded",
		zap.String("model", model),
		zap.Int("prompt_chars", len(req.Prompt)),
		zap.Int("completion_chars", len(resp.Choices[0].Content)))

	return resp.Choices[0].Content, nil
}

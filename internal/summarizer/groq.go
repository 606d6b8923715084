package summarizer

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/ethanbaker/minutes/internal/errors"
	"github.com/ethanbaker/minutes/pkg/utils"
)

// Completion policy. These are fixed and not exposed as configuration
const (
	BaseURL     = "https://api.groq.com/openai/v1/"
	Model       = "llama3-8b-8192"
	Temperature = 0.7
	MaxTokens   = 2000
)

// GroqSummarizer calls Groq's OpenAI-compatible chat completions API
type GroqSummarizer struct {
	client  openai.Client
	timeout time.Duration
	log     *slog.Logger
}

// NewGroqSummarizer builds a summarizer. Extra request options are applied
// after the defaults, which lets tests point the client at a local server
// The SDK's automatic retries are disabled; a failed call is reported as is
func NewGroqSummarizer(apiKey string, timeout time.Duration, log *slog.Logger, opts ...option.RequestOption) *GroqSummarizer {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(BaseURL),
		option.WithMaxRetries(0),
	}

	return &GroqSummarizer{
		client:  openai.NewClient(append(base, opts...)...),
		timeout: timeout,
		log:     log.With("component", "summarizer"),
	}
}

// Summarize validates the request, sends one completion call and returns the
// first choice's text
func (s *GroqSummarizer) Summarize(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	ctx, cancel := utils.DetachedContext(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt()),
			openai.UserMessage(UserPrompt(req.Transcript, req.Instruction)),
		},
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(MaxTokens),
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Completion call failed",
			"error", err,
			"model", Model,
			"transcriptChars", len(req.Transcript),
			"elapsedMs", time.Since(start).Milliseconds())

		return Result{}, errors.NewSummarizationFailed(err)
	}

	if len(resp.Choices) == 0 {
		err := stderrors.New("completion response contained no choices")
		s.log.ErrorContext(ctx, "Completion call returned no choices",
			"model", Model,
			"responseId", resp.ID)

		return Result{}, errors.NewSummarizationFailed(err)
	}

	s.log.InfoContext(ctx, "Summary generated",
		"model", Model,
		"summaryChars", len(resp.Choices[0].Message.Content),
		"elapsedMs", time.Since(start).Milliseconds())

	return Result{
		Content:          resp.Choices[0].Message.Content,
		SourceTranscript: req.Transcript,
		Instruction:      req.Instruction,
	}, nil
}

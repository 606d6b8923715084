package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ethanbaker/minutes/internal/errors"
	"github.com/ethanbaker/minutes/internal/mailer"
	"github.com/ethanbaker/minutes/internal/summarizer"
)

// Sharer delivers a summary to its recipients
type Sharer interface {
	Share(ctx context.Context, req mailer.ShareRequest) (mailer.Outcome, error)
}

// Handlers holds the services behind the MCP tools
type Handlers struct {
	summarizer summarizer.Summarizer
	sharer     Sharer
	log        *slog.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(s summarizer.Summarizer, sharer Sharer, log *slog.Logger) *Handlers {
	return &Handlers{
		summarizer: s,
		sharer:     sharer,
		log:        log.With("component", "mcp"),
	}
}

// GenerateSummaryArgs are the arguments of generate_summary
type GenerateSummaryArgs struct {
	Transcript   string `json:"transcript"`
	CustomPrompt string `json:"customPrompt"`
}

// ShareSummaryArgs are the arguments of share_summary
type ShareSummaryArgs struct {
	Summary    string `json:"summary"`
	Recipients string `json:"recipients"`
	Subject    string `json:"subject"`
	Message    string `json:"message,omitempty"`
}

// GenerateSummaryOutput is the result of generate_summary
type GenerateSummaryOutput struct {
	Summary      string `json:"summary"`
	CustomPrompt string `json:"customPrompt"`
}

// ShareSummaryOutput is the result of share_summary
type ShareSummaryOutput struct {
	Recipients []string `json:"recipients"`
	Demo       bool     `json:"demo"`
	Preview    string   `json:"preview,omitempty"`
}

// HandleGenerateSummary handles the generate_summary tool call
func (h *Handlers) HandleGenerateSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GenerateSummaryArgs](req)
	if err != nil {
		return errorResult(invalidArgs(err)), nil
	}

	res, err := h.summarizer.Summarize(ctx, summarizer.Request{
		Transcript:  input.Transcript,
		Instruction: input.CustomPrompt,
	})
	if err != nil {
		h.log.WarnContext(ctx, "generate_summary failed", "error", err)
		return errorResult(err), nil
	}

	return successResult(GenerateSummaryOutput{
		Summary:      res.Content,
		CustomPrompt: res.Instruction,
	})
}

// HandleShareSummary handles the share_summary tool call
func (h *Handlers) HandleShareSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ShareSummaryArgs](req)
	if err != nil {
		return errorResult(invalidArgs(err)), nil
	}

	outcome, err := h.sharer.Share(ctx, mailer.ShareRequest{
		Summary:    input.Summary,
		Recipients: input.Recipients,
		Subject:    input.Subject,
		Message:    input.Message,
	})
	if err != nil {
		h.log.WarnContext(ctx, "share_summary failed", "error", err)
		return errorResult(err), nil
	}

	out := ShareSummaryOutput{Recipients: outcome.SentTo()}
	if demo, ok := outcome.(mailer.Demo); ok {
		out.Demo = true
		out.Preview = demo.Preview
	}
	return successResult(out)
}

func invalidArgs(err error) error {
	vErr := errors.NewValidation("Invalid tool arguments")
	vErr.Detail = err.Error()
	vErr.Err = err
	return vErr
}

// Result helpers

// errorResult renders err as {"error":{code,message,status[,details]}} with
// IsError set. Internal error details are withheld
func errorResult(err error) *mcp.CallToolResult {
	mErr := errors.As(err)

	errorObj := map[string]any{
		"code":    mErr.Code,
		"message": mErr.Message,
		"status":  mErr.Status,
	}
	if mErr.Code != errors.ErrInternal && mErr.Detail != "" {
		errorObj["details"] = mErr.Detail
	}
	if cat := errors.CategoryOf(mErr); cat != "" {
		errorObj["category"] = cat
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

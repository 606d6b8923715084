package summarizer

import (
	"context"
	"strings"

	"github.com/ethanbaker/minutes/internal/errors"
)

// Request pairs a transcript with the caller's free-form instruction
type Request struct {
	Transcript  string
	Instruction string
}

// Result is the generated summary. Content is the model output, verbatim
type Result struct {
	Content          string
	SourceTranscript string
	Instruction      string
}

// Summarizer produces a structured summary of a meeting transcript
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (Result, error)
}

// Validate reports which required fields are blank
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Transcript) == "" {
		missing = append(missing, "transcript")
	}
	if strings.TrimSpace(r.Instruction) == "" {
		missing = append(missing, "customPrompt")
	}
	if len(missing) > 0 {
		return errors.NewValidation("Transcript and custom prompt are required", missing...)
	}
	return nil
}

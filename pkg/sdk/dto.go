package sdk

import "fmt"

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Status  int    `json:"-"`                 // HTTP status, not serialized
	Error   string `json:"error"`             // Human-readable error category
	Details string `json:"details,omitempty"` // Optional detail, often the underlying cause
	Code    string `json:"code,omitempty"`    // Machine-readable error code
}

// AsGinResponse converts the ErrorResponse to a format suitable for Gin framework
func (r ErrorResponse) AsGinResponse() (int, any) {
	return r.Status, r
}

func NewErrorResponse(status int, code, message, details string) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Error:   message,
		Details: details,
		Code:    code,
	}
}

// APIError is returned by the Client when the server answers with a non-2xx status
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

/** Health */

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

/** Transcripts */

// UploadTranscriptResponse is returned by POST /api/upload-transcript
type UploadTranscriptResponse struct {
	Success    bool   `json:"success"`
	Transcript string `json:"transcript"`
	Filename   string `json:"filename"`
}

/** Summaries */

// GenerateSummaryRequest is the body of POST /api/generate-summary
type GenerateSummaryRequest struct {
	Transcript   string `json:"transcript"`
	CustomPrompt string `json:"customPrompt"`
}

// GenerateSummaryResponse is returned by POST /api/generate-summary
type GenerateSummaryResponse struct {
	Success            bool   `json:"success"`
	Summary            string `json:"summary"`
	OriginalTranscript string `json:"originalTranscript"`
	CustomPrompt       string `json:"customPrompt"`
}

/** Sharing */

// ShareSummaryRequest is the body of POST /api/share-summary
type ShareSummaryRequest struct {
	Summary    string `json:"summary"`
	Recipients string `json:"recipients"` // Comma-separated addresses
	Subject    string `json:"subject"`
	Message    string `json:"message"` // Optional note placed above the summary
}

// EmailContent echoes what would have been sent in demo mode
type EmailContent struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Message string   `json:"message,omitempty"`
	Summary string   `json:"summary"` // Truncated preview
}

// ShareSummaryResponse is returned by POST /api/share-summary
type ShareSummaryResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Recipients   []string      `json:"recipients"`
	Demo         bool          `json:"demo,omitempty"`
	EmailContent *EmailContent `json:"emailContent,omitempty"`
}

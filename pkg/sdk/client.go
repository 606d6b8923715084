package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Client wraps calls to the summarizer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Check the health of the backend
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload a transcript file. contentType is sent as the part's declared type
func (c *Client) UploadTranscript(ctx context.Context, filename, contentType string, r io.Reader) (*UploadTranscriptResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload-transcript", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out UploadTranscriptResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Generate a summary of a transcript
func (c *Client) GenerateSummary(ctx context.Context, in *GenerateSummaryRequest) (*GenerateSummaryResponse, error) {
	var out GenerateSummaryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/generate-summary", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Share a summary by email
func (c *Client) ShareSummary(ctx context.Context, in *ShareSummaryRequest) (*ShareSummaryResponse, error) {
	var out ShareSummaryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/share-summary", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

// do performs the request and decodes either the success or the error body
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)

		apiErr := &APIError{Status: resp.StatusCode}
		var errBody ErrorResponse
		if json.Unmarshal(b, &errBody) == nil && errBody.Error != "" {
			apiErr.Code = errBody.Code
			apiErr.Message = errBody.Error
			apiErr.Details = errBody.Details
		} else {
			apiErr.Message = strings.TrimSpace(string(b))
		}
		return apiErr
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

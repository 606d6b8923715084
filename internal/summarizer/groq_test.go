package summarizer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openai/openai-go/v2/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanbaker/minutes/internal/errors"
)

// completionRequest is the subset of the chat completion payload checked here
type completionRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int64   `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   Model,
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func newTestSummarizer(t *testing.T, handler http.HandlerFunc) (*GroqSummarizer, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGroqSummarizer("test-key", 0, log, option.WithBaseURL(srv.URL+"/")), &calls
}

func TestSummarizeScenario(t *testing.T) {
	var got completionRequest
	var auth, path string

	s, calls := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionBody("- Ship v2 by Friday"))
	})

	res, err := s.Summarize(context.Background(), Request{
		Transcript:  "Alice: let's ship v2 Friday.",
		Instruction: "List action items",
	})
	require.NoError(t, err)

	assert.Equal(t, "- Ship v2 by Friday", res.Content)
	assert.Equal(t, "Alice: let's ship v2 Friday.", res.SourceTranscript)
	assert.Equal(t, "List action items", res.Instruction)
	assert.EqualValues(t, 1, calls.Load())

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, Model, got.Model)
	assert.InDelta(t, Temperature, got.Temperature, 1e-9)
	assert.EqualValues(t, MaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, SystemPrompt(), got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, UserPrompt("Alice: let's ship v2 Friday.", "List action items"), got.Messages[1].Content)
}

func TestSummarizeValidationSkipsRemote(t *testing.T) {
	s, calls := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, completionBody("unused"))
	})

	tests := []struct {
		name    string
		req     Request
		missing []string
	}{
		{"both empty", Request{}, []string{"transcript", "customPrompt"}},
		{"blank transcript", Request{Transcript: " \n\t", Instruction: "x"}, []string{"transcript"}},
		{"blank prompt", Request{Transcript: "x", Instruction: "   "}, []string{"customPrompt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Summarize(context.Background(), tt.req)
			require.Error(t, err)

			mErr := errors.As(err)
			assert.Equal(t, errors.ErrValidation, mErr.Code)
			assert.Equal(t, tt.missing, mErr.Data["missing"])
		})
	}

	assert.EqualValues(t, 0, calls.Load())
}

func TestSummarizeUpstreamErrorNotRetried(t *testing.T) {
	s, calls := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"message":"model overloaded","type":"server_error"}}`)
	})

	_, err := s.Summarize(context.Background(), Request{Transcript: "t", Instruction: "i"})
	require.Error(t, err)

	mErr := errors.As(err)
	assert.Equal(t, errors.ErrSummarizationFailed, mErr.Code)
	assert.Equal(t, http.StatusInternalServerError, mErr.Status)
	assert.NotEmpty(t, mErr.Detail)
	assert.EqualValues(t, 1, calls.Load())
}

func TestSummarizeMalformedBody(t *testing.T) {
	s, _ := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices": "nope"`)
	})

	_, err := s.Summarize(context.Background(), Request{Transcript: "t", Instruction: "i"})
	assert.True(t, errors.Is(err, errors.ErrSummarizationFailed))
}

func TestSummarizeNoChoices(t *testing.T) {
	s, _ := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	})

	_, err := s.Summarize(context.Background(), Request{Transcript: "t", Instruction: "i"})
	require.Error(t, err)
	assert.Equal(t, "completion response contained no choices", errors.As(err).Detail)
}

func TestSummarizeSurvivesCallerCancel(t *testing.T) {
	release := make(chan struct{})
	s, _ := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionBody("done"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		cancel()
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	res, err := s.Summarize(ctx, Request{Transcript: "t", Instruction: "i"})
	require.NoError(t, err)
	assert.Equal(t, "done", res.Content)
}

func TestSummarizeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewGroqSummarizer("k", 50*time.Millisecond, log, option.WithBaseURL(srv.URL+"/"))

	_, err := s.Summarize(context.Background(), Request{Transcript: "t", Instruction: "i"})
	assert.True(t, errors.Is(err, errors.ErrSummarizationFailed))
}

func TestUserPrompt(t *testing.T) {
	got := UserPrompt("  hello  \n", "\tbullets ")
	assert.Equal(t, "Transcript: hello\n\nCustom Instructions: bullets\n\nPlease generate a structured summary following the custom instructions.", got)
}

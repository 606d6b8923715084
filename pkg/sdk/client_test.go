package sdk_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/openai/openai-go/v2/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanbaker/minutes/internal/api"
	"github.com/ethanbaker/minutes/internal/mailer"
	"github.com/ethanbaker/minutes/internal/summarizer"
	"github.com/ethanbaker/minutes/pkg/sdk"
	"github.com/ethanbaker/minutes/pkg/utils"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   summarizer.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": "## Decisions\n- Ship v2"},
			}},
		})
	}))
	t.Cleanup(llm.Close)

	settings, err := utils.LoadSettings(utils.NewConfig(nil))
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	services := api.Services{
		Summarizer: summarizer.NewGroqSummarizer("k", 0, log, option.WithBaseURL(llm.URL+"/")),
		Dispatcher: mailer.NewDispatcher(mailer.Unconfigured{}, nil, mailer.NewRenderer(settings.SummaryFormat), 0, log),
	}

	srv := httptest.NewServer(api.NewEngine(settings, services, log))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRoundTrip(t *testing.T) {
	srv := newServer(t)
	client := sdk.NewClient(srv.URL + "/")
	ctx := context.Background()

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OK", health.Status)

	up, err := client.UploadTranscript(ctx, "sync.txt", "text/plain", strings.NewReader("Alice: ship v2"))
	require.NoError(t, err)
	assert.Equal(t, "Alice: ship v2", up.Transcript)
	assert.Equal(t, "sync.txt", up.Filename)

	sum, err := client.GenerateSummary(ctx, &sdk.GenerateSummaryRequest{
		Transcript:   up.Transcript,
		CustomPrompt: "Decisions only",
	})
	require.NoError(t, err)
	assert.Equal(t, "## Decisions\n- Ship v2", sum.Summary)

	share, err := client.ShareSummary(ctx, &sdk.ShareSummaryRequest{
		Summary:    sum.Summary,
		Recipients: "team@example.com",
		Subject:    "Sync",
	})
	require.NoError(t, err)
	assert.True(t, share.Demo)
	assert.Equal(t, []string{"team@example.com"}, share.Recipients)
	require.NotNil(t, share.EmailContent)
	assert.Equal(t, sum.Summary+"...", share.EmailContent.Summary)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := newServer(t)
	client := sdk.NewClient(srv.URL)
	ctx := context.Background()

	_, err := client.UploadTranscript(ctx, "a.pdf", "application/pdf", strings.NewReader("%PDF"))
	var apiErr *sdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", apiErr.Code)
	assert.Equal(t, "Unsupported file type: application/pdf", apiErr.Message)

	_, err = client.ShareSummary(ctx, &sdk.ShareSummaryRequest{Summary: "s", Recipients: "bogus", Subject: "x"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_RECIPIENT", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "bogus")
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := sdk.NewClient(srv.URL).Health(context.Background())
	var apiErr *sdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

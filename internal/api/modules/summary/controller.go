package summary_module

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/minutes/internal/api/respond"
	"github.com/ethanbaker/minutes/internal/summarizer"
	"github.com/ethanbaker/minutes/pkg/sdk"
)

// Controller serves summary generation
type Controller struct {
	summarizer summarizer.Summarizer
}

// GenerateSummary handles POST requests with a transcript and a custom prompt
func (ctl *Controller) GenerateSummary(c *gin.Context) {
	// Parse request body. An empty body falls through to field validation
	var req sdk.GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !respond.IsEmptyBody(err) {
		respond.Error(c, respond.BindError(err, respond.JSONBodyLimit))
		return
	}

	res, err := ctl.summarizer.Summarize(c.Request.Context(), summarizer.Request{
		Transcript:  req.Transcript,
		Instruction: req.CustomPrompt,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, sdk.GenerateSummaryResponse{
		Success:            true,
		Summary:            res.Content,
		OriginalTranscript: res.SourceTranscript,
		CustomPrompt:       res.Instruction,
	})
}

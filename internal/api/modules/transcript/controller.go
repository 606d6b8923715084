package transcript_module

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/minutes/internal/api/respond"
	"github.com/ethanbaker/minutes/internal/errors"
	"github.com/ethanbaker/minutes/internal/transcript"
	"github.com/ethanbaker/minutes/pkg/sdk"
)

// UploadTranscript handles POST requests carrying a multipart "file" field
func UploadTranscript(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		switch {
		case respond.IsTooLarge(err):
			respond.Error(c, errors.NewPayloadTooLarge(transcript.MaxUploadBytes))
		case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
			respond.Error(c, errors.NewNoFile())
		default:
			respond.Error(c, errors.NewInternal("Failed to upload file", err))
		}
		return
	}

	t, err := transcript.Ingest(file)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, sdk.UploadTranscriptResponse{
		Success:    true,
		Transcript: t.Text,
		Filename:   t.Filename,
	})
}

package share_module

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/minutes/internal/api/respond"
	"github.com/ethanbaker/minutes/internal/errors"
	"github.com/ethanbaker/minutes/internal/mailer"
	"github.com/ethanbaker/minutes/pkg/sdk"
)

// Controller serves summary sharing
type Controller struct {
	sharer Sharer
}

// ShareSummary handles POST requests to email a summary
func (ctl *Controller) ShareSummary(c *gin.Context) {
	// Parse request body. An empty body falls through to field validation
	var req sdk.ShareSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !respond.IsEmptyBody(err) {
		respond.Error(c, respond.BindError(err, respond.JSONBodyLimit))
		return
	}

	outcome, err := ctl.sharer.Share(c.Request.Context(), mailer.ShareRequest{
		Summary:    req.Summary,
		Recipients: req.Recipients,
		Subject:    req.Subject,
		Message:    req.Message,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	switch o := outcome.(type) {
	case mailer.Demo:
		c.JSON(http.StatusOK, sdk.ShareSummaryResponse{
			Success:    true,
			Message:    "Summary shared successfully (Demo Mode)",
			Recipients: o.Recipients,
			Demo:       true,
			EmailContent: &sdk.EmailContent{
				To:      o.Recipients,
				Subject: o.Subject,
				Message: o.Message,
				Summary: o.Preview,
			},
		})
	case mailer.Sent:
		c.JSON(http.StatusOK, sdk.ShareSummaryResponse{
			Success:    true,
			Message:    "Summary shared successfully",
			Recipients: o.Recipients,
		})
	default:
		respond.Error(c, errors.NewInternal("Failed to share summary", nil))
	}
}

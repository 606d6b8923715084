package share_module

import (
	"context"

	"github.com/ethanbaker/minutes/internal/mailer"
	"github.com/gin-gonic/gin"
)

// Sharer delivers a summary to its recipients
type Sharer interface {
	Share(ctx context.Context, req mailer.ShareRequest) (mailer.Outcome, error)
}

// RegisterRoutes registers the routes for the share module
func RegisterRoutes(g *gin.RouterGroup, sharer Sharer, middleware ...gin.HandlerFunc) {
	ctl := &Controller{sharer: sharer}

	handlers := append(middleware, ctl.ShareSummary)
	g.POST("/share-summary", handlers...)
}

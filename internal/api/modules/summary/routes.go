package summary_module

import (
	"github.com/ethanbaker/minutes/internal/summarizer"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the routes for the summary module
func RegisterRoutes(g *gin.RouterGroup, s summarizer.Summarizer, middleware ...gin.HandlerFunc) {
	ctl := &Controller{summarizer: s}

	handlers := append(middleware, ctl.GenerateSummary)
	g.POST("/generate-summary", handlers...)
}

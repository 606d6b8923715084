package transcript_module

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the transcript module
func RegisterRoutes(g *gin.RouterGroup, middleware ...gin.HandlerFunc) {
	handlers := append(middleware, UploadTranscript)
	g.POST("/upload-transcript", handlers...)
}

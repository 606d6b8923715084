package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ethanbaker/minutes/pkg/sdk"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestId"

// requestID reuses an inbound X-Request-ID or mints a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request after it completes
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	log = log.With("component", "api")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		log.Log(c.Request.Context(), level, "Request handled",
			"requestId", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latencyMs", time.Since(start).Milliseconds())
	}
}

// recovery is the catch-all fault boundary: any panic becomes a generic
// 500 JSON body with the panic value attached
func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "Handler panicked",
			"component", "api",
			"requestId", c.GetString(requestIDKey),
			"panic", fmt.Sprint(recovered))

		c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusInternalServerError,
			"INTERNAL", "Something went wrong!", fmt.Sprint(recovered)).AsGinResponse())
	})
}

// bodyLimit caps the request body at n bytes
func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

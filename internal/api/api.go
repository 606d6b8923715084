package api

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/minutes/internal/api/respond"
	"github.com/ethanbaker/minutes/internal/mailer"
	"github.com/ethanbaker/minutes/internal/summarizer"
	"github.com/ethanbaker/minutes/internal/transcript"
	"github.com/ethanbaker/minutes/pkg/utils"

	health_module "github.com/ethanbaker/minutes/internal/api/modules/health"
	share_module "github.com/ethanbaker/minutes/internal/api/modules/share"
	summary_module "github.com/ethanbaker/minutes/internal/api/modules/summary"
	transcript_module "github.com/ethanbaker/minutes/internal/api/modules/transcript"
)

// uploadOverhead leaves room for multipart framing around a maximum size file
const uploadOverhead int64 = 1 << 20

// Services are the long-lived handles shared by every request
type Services struct {
	Summarizer summarizer.Summarizer
	Dispatcher *mailer.Dispatcher
}

// NewEngine builds the gin engine with every route registered
func NewEngine(settings utils.Settings, services Services, log *slog.Logger) *gin.Engine {
	// Add app level settings/routes
	engine := gin.New()
	engine.NoRoute(api_utils.NoRouteHandler)
	engine.MaxMultipartMemory = transcript.MaxUploadBytes + uploadOverhead

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	engine.Use(
		requestID(),
		requestLogger(log),
		recovery(log),
	)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     settings.CORSAllowedOrigins,
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)
	transcript_module.RegisterRoutes(baseGroup, bodyLimit(transcript.MaxUploadBytes+uploadOverhead))
	summary_module.RegisterRoutes(baseGroup, services.Summarizer, bodyLimit(respond.JSONBodyLimit))
	share_module.RegisterRoutes(baseGroup, services.Dispatcher, bodyLimit(respond.JSONBodyLimit))

	return engine
}

// Start runs the API server until SIGINT/SIGTERM, then shuts down gracefully
func Start(settings utils.Settings, services Services, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           NewEngine(settings, services, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("Server is running",
		"component", "api",
		"port", settings.Port,
		"health", "http://localhost:"+settings.Port+"/api/health",
		"demoMode", services.Dispatcher.DemoMode())

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigCh:
		log.Info("Shutdown signal is received",
			"component", "api",
			"signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-presign/pkg/simplepresign"
	"github.com/tendant/simple-presign/pkg/simplepresign/api"
	"github.com/tendant/simple-presign/pkg/simplepresign/urllog"
	urllogmemory "github.com/tendant/simple-presign/pkg/simplepresign/urllog/memory"
	urllogpostgres "github.com/tendant/simple-presign/pkg/simplepresign/urllog/postgres"
)

func main() {
	// Load configuration from environment
	serverConfig, err := loadServerConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	// Build signer from configuration
	signer, err := serverConfig.Signer.BuildSigner(
		simplepresign.WithHooks(simplepresign.LoggingHooks(slog.Default())),
	)
	if err != nil {
		log.Fatalf("Failed to build signer: %v", err)
	}

	// Pick the issuance log backend
	ctx := context.Background()
	var store urllog.Store
	if serverConfig.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, serverConfig.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		defer pool.Close()
		store = urllogpostgres.NewWithPool(pool)
		log.Printf("Issuance log: postgres")
	} else {
		store = urllogmemory.New()
		log.Printf("Issuance log: in-memory (set DATABASE_URL for postgres)")
	}

	handler := api.NewSignHandler(signer, store, serverConfig.Signer.ValidityMinutes)
	server := NewHTTPServer(handler, serverConfig)

	// Create HTTP server instance
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: server.Routes(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Presign server starting on port %s (env: %s)", serverConfig.Port, serverConfig.Environment)
		log.Printf("Endpoint: %s (path-style: %t, region: %s)",
			serverConfig.Signer.EndpointHost, serverConfig.Signer.UsePathStyle, serverConfig.Signer.Region)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline to wait for
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// HTTPServer wraps the sign handler for HTTP access
type HTTPServer struct {
	handler *api.SignHandler
	config  *serverConfig
}

// NewHTTPServer creates a new HTTP server wrapper
func NewHTTPServer(handler *api.SignHandler, config *serverConfig) *HTTPServer {
	return &HTTPServer{
		handler: handler,
		config:  config,
	}
}

// Routes sets up the HTTP routes
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(api.RequestIDMiddleware)
	r.Use(api.RecoveryMiddleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", s.handleHealth)

	// API routes, optionally behind bearer-token auth
	r.Route("/api/v1", func(r chi.Router) {
		routes := s.handler.Routes()
		if s.config.JWTSecret != "" {
			routes = api.RequireJWT(api.NewJWTAuth([]byte(s.config.JWTSecret)), routes)
		}
		r.Mount("/", routes)
	})

	return r
}

// Health check endpoint
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{
		"status": "healthy",
		"environment": "%s",
		"endpoint_host": "%s"
	}`, s.config.Environment, s.config.Signer.EndpointHost)
}

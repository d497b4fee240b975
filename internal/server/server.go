package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/muliwe/go-bmi-classifier/internal/classifier"
	"github.com/muliwe/go-bmi-classifier/internal/logger"
	"github.com/muliwe/go-bmi-classifier/internal/measurement"
)

// Config holds server configuration
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	EnableDebug    bool
	AllowedOrigins []string
	LoggerConfig   logger.Config
	ClassifierCfg  classifier.Config

	// TLS configuration
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
		RequestTimeout: 5 * time.Second,
		EnableDebug:    false,
		AllowedOrigins: []string{"http://localhost:3000"},
		LoggerConfig:   logger.DefaultConfig(),
		ClassifierCfg:  classifier.DefaultConfig(),
		TLSEnabled:     false,
	}
}

// Server represents the HTTP server
type Server struct {
	cfg        Config
	httpServer *http.Server
	handler    *Handler
	logger     *logger.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	l, err := logger.New(cfg.LoggerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	collector := measurement.NewCollector()
	clf := classifier.New(cfg.ClassifierCfg)
	handler := NewHandler(collector, clf, l)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(handler, cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.TLSEnabled {
		httpServer.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"h2", "http/1.1"},
		}
	}

	return &Server{
		cfg:        cfg,
		httpServer: httpServer,
		handler:    handler,
		logger:     l,
	}, nil
}

// NewRouter mounts the handler's endpoints on a chi router
func NewRouter(h *Handler, cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/bmi", h.HandleIndex)
	r.Post("/bmi", h.HandleIndex)
	r.Get("/classify", h.HandleClassify)
	r.Get("/categories", h.HandleCategories)
	r.Get("/health", h.HandleHealth)
	if cfg.EnableDebug {
		r.Get("/debug", h.HandleDebug)
	}
	return r
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		protocol := "HTTP"
		if s.cfg.TLSEnabled {
			protocol = "HTTPS"
		}
		log.Printf("BMI Server starting on %s (%s)", s.cfg.Addr, protocol)
		log.Printf("Endpoints: /bmi (index), /classify, /categories, /health")
		if s.cfg.EnableDebug {
			log.Printf("Debug endpoint enabled: /debug")
		}
		log.Printf("Logs: %s", s.logger.LogPath())

		var err error
		if s.cfg.TLSEnabled {
			log.Printf("TLS Certificate: %s", s.cfg.TLSCertFile)
			err = s.httpServer.ListenAndServeTLS(s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Server shutting down...")

	if err := s.Close(); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	return s.logger.Close()
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

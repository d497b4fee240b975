package main

import (
	"log"
	"os"
	"strings"

	"github.com/muliwe/go-bmi-classifier/internal/server"
)

func main() {
	cfg := server.DefaultConfig()

	// Allow port override from environment
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.EnableDebug = true
	}

	if dir := os.Getenv("LOG_DIR"); dir != "" {
		cfg.LoggerConfig.LogDir = dir
	}
	if os.Getenv("LOG_STDOUT") == "true" {
		cfg.LoggerConfig.Stdout = true
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	// TLS configuration from environment
	tlsCert := os.Getenv("TLS_CERT")
	tlsKey := os.Getenv("TLS_KEY")
	if tlsCert != "" && tlsKey != "" {
		cfg.TLSEnabled = true
		cfg.TLSCertFile = tlsCert
		cfg.TLSKeyFile = tlsKey
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

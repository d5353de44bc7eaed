package main

import (
	"fmt"
	"os"

	"github.com/tendant/simple-presign/pkg/simplepresign/config"
)

// serverConfig holds everything the executable needs beyond the signer
// itself: listen address, environment name, issuance log backend, and the
// optional bearer-token secret.
type serverConfig struct {
	Port        string
	Environment string
	DatabaseURL string
	JWTSecret   string
	Signer      *config.SignerConfig
}

// loadServerConfigFromEnv constructs a serverConfig by reading process
// environment variables. This keeps environment-specific logic within the
// executable instead of the library.
func loadServerConfigFromEnv() (*serverConfig, error) {
	signerConfig, err := config.Load(config.WithEnv("PRESIGN_"))
	if err != nil {
		return nil, fmt.Errorf("failed to load signer config: %w", err)
	}

	cfg := &serverConfig{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("PRESIGN_JWT_SECRET", ""),
		Signer:      signerConfig,
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/chi-demo/middleware"

	"github.com/tendant/simple-presign/pkg/simplepresign"
	"github.com/tendant/simple-presign/pkg/simplepresign/api"
	urllogpostgres "github.com/tendant/simple-presign/pkg/simplepresign/urllog/postgres"
)

type Config struct {
	DB           DbConfig
	S3           S3Config
	ApiKeySHA256 string `env:"API_KEY_SHA256" env-default:"1"`
}

type DbConfig struct {
	Port     uint16 `env:"PRESIGN_PG_PORT" env-default:"5432"`
	Host     string `env:"PRESIGN_PG_HOST" env-default:"localhost"`
	Name     string `env:"PRESIGN_PG_NAME" env-default:"presign_db"`
	User     string `env:"PRESIGN_PG_USER" env-default:"presign"`
	Password string `env:"PRESIGN_PG_PASSWORD" env-default:"pwd"`
}

type S3Config struct {
	EndpointHost    string `env:"AWS_S3_ENDPOINT" env-default:"localhost:9000"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"true"`
	ValidityMinutes int    `env:"PRESIGN_VALIDITY_MINUTES" env-default:"5"`
}

func (c DbConfig) toDatabaseUrl() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

func NewDbPool(ctx context.Context, dbConfig DbConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbConfig.toDatabaseUrl())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func buildSigner(config S3Config) (*simplepresign.Signer, error) {
	return simplepresign.New(
		simplepresign.WithCredentials(simplepresign.Credentials{
			AccessKeyID:     config.AccessKeyID,
			SecretAccessKey: config.SecretAccessKey,
		}),
		simplepresign.WithEndpoint(config.EndpointHost),
		simplepresign.WithRegion(config.Region),
		simplepresign.WithPathStyle(config.UsePathStyle),
		simplepresign.WithHooks(simplepresign.LoggingHooks(slog.Default())),
	)
}

func main() {
	// Load configuration
	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}
	apiKeyConfig := middleware.ApiKeyConfig{
		APIKeys: map[string]string{
			"key1": config.ApiKeySHA256,
		},
	}

	// Initialize database connection
	ctx := context.Background()
	dbPool, err := NewDbPool(ctx, config.DB)
	if err != nil {
		slog.Error("Failed to connect to database", "err", err)
		os.Exit(1)
	}

	// Initialize the issuance log and the signer
	store := urllogpostgres.NewWithPool(dbPool)

	signer, err := buildSigner(config.S3)
	if err != nil {
		slog.Error("Failed to build signer", "err", err)
		os.Exit(1)
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	// Initialize API handlers
	signHandler := api.NewSignHandler(signer, store, config.S3.ValidityMinutes)

	apiKeyMiddleware, err := middleware.ApiKeyMiddleware(apiKeyConfig)
	if err != nil {
		slog.Error("Failed initialize API Key middleware", "err", err)
		return
	}
	server.R.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			r.Mount("/presign", signHandler.Routes())
		})
	})

	defer dbPool.Close()

	// Start server
	server.Run()
}

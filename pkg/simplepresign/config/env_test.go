package config

import (
	"strings"
	"testing"
)

func setSigningEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	// Blank out everything WithEnv reads so ambient values cannot leak in.
	for _, key := range []string{
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION",
		"S3_ENDPOINT", "S3_PATH_STYLE", "VALIDITY_MINUTES", "EXTRA_QUERY_PARAM",
	} {
		t.Setenv(key, "")
	}
	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func TestEnvCredentialsAndEndpoint(t *testing.T) {
	setSigningEnv(t, map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKIDEXAMPLE",
		"AWS_SECRET_ACCESS_KEY": "secret",
		"S3_ENDPOINT":           "localhost:9000",
	})

	cfg, err := Load(WithEnv(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessKeyID != "AKIDEXAMPLE" {
		t.Errorf("expected access key ID %q, got %q", "AKIDEXAMPLE", cfg.AccessKeyID)
	}
	if cfg.SecretAccessKey != "secret" {
		t.Errorf("expected secret to be read, got %q", cfg.SecretAccessKey)
	}
	if cfg.EndpointHost != "localhost:9000" {
		t.Errorf("expected endpoint %q, got %q", "localhost:9000", cfg.EndpointHost)
	}
	if cfg.Region != "us-west-1" {
		t.Errorf("expected default region us-west-1, got %q", cfg.Region)
	}
	if !cfg.UsePathStyle {
		t.Error("expected path-style addressing by default")
	}
	if cfg.ValidityMinutes != 5 {
		t.Errorf("expected default validity 5, got %d", cfg.ValidityMinutes)
	}
}

func TestEnvPrefix(t *testing.T) {
	setSigningEnv(t, map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKIDEXAMPLE",
		"AWS_SECRET_ACCESS_KEY": "secret",
		"PRESIGN_S3_ENDPOINT":   "s3.amazonaws.com",
		"S3_ENDPOINT":           "wrong.example.com",
	})

	cfg, err := Load(WithEnv("PRESIGN_"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EndpointHost != "s3.amazonaws.com" {
		t.Errorf("expected prefixed endpoint to win, got %q", cfg.EndpointHost)
	}
}

func TestEnvOverrides(t *testing.T) {
	tests := []struct {
		name      string
		vars      map[string]string
		check     func(*SignerConfig) string
		wantError string
	}{
		{
			name: "region override",
			vars: map[string]string{"AWS_REGION": "auto"},
			check: func(c *SignerConfig) string {
				if c.Region != "auto" {
					return "region not applied"
				}
				return ""
			},
		},
		{
			name: "path style off",
			vars: map[string]string{"S3_PATH_STYLE": "false"},
			check: func(c *SignerConfig) string {
				if c.UsePathStyle {
					return "path style should be off"
				}
				return ""
			},
		},
		{
			name: "validity minutes",
			vars: map[string]string{"VALIDITY_MINUTES": "30"},
			check: func(c *SignerConfig) string {
				if c.ValidityMinutes != 30 {
					return "validity not applied"
				}
				return ""
			},
		},
		{
			name: "extra query param",
			vars: map[string]string{"EXTRA_QUERY_PARAM": "download-marker"},
			check: func(c *SignerConfig) string {
				if c.ExtraQueryParam != "download-marker" {
					return "extra query param not applied"
				}
				return ""
			},
		},
		{
			name:      "invalid boolean",
			vars:      map[string]string{"S3_PATH_STYLE": "yep"},
			wantError: "invalid boolean",
		},
		{
			name:      "invalid integer",
			vars:      map[string]string{"VALIDITY_MINUTES": "soon"},
			wantError: "invalid integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := map[string]string{
				"AWS_ACCESS_KEY_ID":     "AKIDEXAMPLE",
				"AWS_SECRET_ACCESS_KEY": "secret",
				"S3_ENDPOINT":           "s3.amazonaws.com",
			}
			for k, v := range tt.vars {
				base[k] = v
			}
			setSigningEnv(t, base)

			cfg, err := Load(WithEnv(""))
			if tt.wantError != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantError) {
					t.Errorf("expected error containing %q, got %v", tt.wantError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if msg := tt.check(cfg); msg != "" {
				t.Error(msg)
			}
		})
	}
}

func TestEnvMissingCredentials(t *testing.T) {
	setSigningEnv(t, map[string]string{
		"S3_ENDPOINT": "s3.amazonaws.com",
	})

	_, err := Load(WithEnv(""))
	if err == nil {
		t.Fatal("expected error for missing credentials, got nil")
	}
	if !strings.Contains(err.Error(), "access_key_id is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

package presets

import (
	"fmt"
	"testing"
	"time"

	"github.com/tendant/simple-presign/pkg/simplepresign"
)

// Provider Presets
//
// This package provides ready-made signer constructors for the common
// S3-compatible providers. Presets pick the endpoint pattern, addressing
// style, and region convention each provider expects; everything else stays
// customizable through regular signer options.

// AmazonS3 creates a signer for Amazon S3 regional endpoints.
//
// Addressing is virtual-hosted-style, which AWS requires for new buckets.
// The endpoint follows the s3.{region}.amazonaws.com pattern.
//
// Example:
//
//	signer, err := presets.AmazonS3(creds, "us-east-1")
func AmazonS3(creds simplepresign.Credentials, region string, opts ...simplepresign.Option) (*simplepresign.Signer, error) {
	if region == "" {
		return nil, fmt.Errorf("amazon s3 preset requires a region")
	}
	base := []simplepresign.Option{
		simplepresign.WithCredentials(creds),
		simplepresign.WithEndpoint("s3." + region + ".amazonaws.com"),
		simplepresign.WithRegion(region),
		simplepresign.WithPathStyle(false),
	}
	return simplepresign.New(append(base, opts...)...)
}

// CloudflareR2 creates a signer for a Cloudflare R2 account endpoint.
//
// R2 endpoints are {accountID}.r2.cloudflarestorage.com and sign with the
// literal region "auto". Addressing is path-style.
//
// Example:
//
//	signer, err := presets.CloudflareR2(creds, "0123456789abcdef0123456789abcdef")
func CloudflareR2(creds simplepresign.Credentials, accountID string, opts ...simplepresign.Option) (*simplepresign.Signer, error) {
	if accountID == "" {
		return nil, fmt.Errorf("cloudflare r2 preset requires an account ID")
	}
	base := []simplepresign.Option{
		simplepresign.WithCredentials(creds),
		simplepresign.WithEndpoint(accountID + ".r2.cloudflarestorage.com"),
		simplepresign.WithRegion("auto"),
		simplepresign.WithPathStyle(true),
	}
	return simplepresign.New(append(base, opts...)...)
}

// DigitalOceanSpaces creates a signer for a DigitalOcean Spaces region such
// as "nyc3" or "ams3". Addressing is virtual-hosted-style, matching the
// {bucket}.{region}.digitaloceanspaces.com URLs Spaces documents.
func DigitalOceanSpaces(creds simplepresign.Credentials, region string, opts ...simplepresign.Option) (*simplepresign.Signer, error) {
	if region == "" {
		return nil, fmt.Errorf("digitalocean spaces preset requires a region")
	}
	base := []simplepresign.Option{
		simplepresign.WithCredentials(creds),
		simplepresign.WithEndpoint(region + ".digitaloceanspaces.com"),
		simplepresign.WithRegion(region),
		simplepresign.WithPathStyle(false),
	}
	return simplepresign.New(append(base, opts...)...)
}

// LinodeObjectStorage creates a signer for a Linode Object Storage cluster
// such as "us-east-1" or "eu-central-1". Addressing is virtual-hosted-style.
func LinodeObjectStorage(creds simplepresign.Credentials, region string, opts ...simplepresign.Option) (*simplepresign.Signer, error) {
	if region == "" {
		return nil, fmt.Errorf("linode object storage preset requires a region")
	}
	base := []simplepresign.Option{
		simplepresign.WithCredentials(creds),
		simplepresign.WithEndpoint(region + ".linodeobjects.com"),
		simplepresign.WithRegion(region),
		simplepresign.WithPathStyle(false),
	}
	return simplepresign.New(append(base, opts...)...)
}

// MinIO creates a signer for a MinIO deployment reachable at host or
// host:port. Addressing is path-style and the region defaults to MinIO's
// us-east-1 unless overridden with a WithRegion option.
//
// Example:
//
//	signer, err := presets.MinIO(creds, "localhost:9000")
func MinIO(creds simplepresign.Credentials, hostPort string, opts ...simplepresign.Option) (*simplepresign.Signer, error) {
	if hostPort == "" {
		return nil, fmt.Errorf("minio preset requires a host or host:port")
	}
	base := []simplepresign.Option{
		simplepresign.WithCredentials(creds),
		simplepresign.WithEndpoint(hostPort),
		simplepresign.WithRegion("us-east-1"),
		simplepresign.WithPathStyle(true),
	}
	return simplepresign.New(append(base, opts...)...)
}

// NewTesting creates a signer configured for unit tests.
//
// Features:
//   - Fixed example credentials (nothing real, nothing secret)
//   - Fixed clock, so URLs are identical across runs
//   - Path-style addressing against s3.amazonaws.com
//
// Example:
//
//	func TestMyFeature(t *testing.T) {
//	    signer := presets.NewTesting(t)
//	    url, err := signer.SignURL(...)
//	}
func NewTesting(t *testing.T, opts ...TestingOption) *simplepresign.Signer {
	t.Helper()

	cfg := &testConfig{
		creds: simplepresign.Credentials{
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
		},
		endpoint: "s3.amazonaws.com",
		now:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	signer, err := simplepresign.New(
		simplepresign.WithCredentials(cfg.creds),
		simplepresign.WithEndpoint(cfg.endpoint),
		simplepresign.WithClock(func() time.Time { return cfg.now }),
	)
	if err != nil {
		t.Fatalf("failed to create test signer: %v", err)
	}
	return signer
}

// testConfig holds testing preset configuration
type testConfig struct {
	creds    simplepresign.Credentials
	endpoint string
	now      time.Time
}

// TestingOption is a functional option for NewTesting
type TestingOption func(*testConfig)

// WithTestCredentials overrides the fixed example credentials.
func WithTestCredentials(creds simplepresign.Credentials) TestingOption {
	return func(cfg *testConfig) {
		cfg.creds = creds
	}
}

// WithTestEndpoint overrides the fixed test endpoint.
func WithTestEndpoint(host string) TestingOption {
	return func(cfg *testConfig) {
		cfg.endpoint = host
	}
}

// WithTestTime pins the signer clock to the given instant.
func WithTestTime(now time.Time) TestingOption {
	return func(cfg *testConfig) {
		cfg.now = now
	}
}

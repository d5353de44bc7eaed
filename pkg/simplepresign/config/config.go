package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tendant/simple-presign/pkg/simplepresign"
)

// MaxValidityMinutes is the longest validity the configuration layer
// accepts: seven days, the hard ceiling services place on X-Amz-Expires.
const MaxValidityMinutes = 7 * 24 * 60

// Option applies configuration to a SignerConfig instance.
type Option func(*SignerConfig) error

// Load constructs a SignerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*SignerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() SignerConfig {
	return SignerConfig{
		Region:          simplepresign.DefaultRegion,
		UsePathStyle:    true,
		ValidityMinutes: simplepresign.DefaultValidityMinutes,
	}
}

// SignerConfig represents signing configuration for the presign service.
type SignerConfig struct {
	// Credentials
	AccessKeyID     string
	SecretAccessKey string

	// Endpoint configuration
	EndpointHost string // bare host or host:port, no scheme, no path
	Region       string
	UsePathStyle bool

	// Request defaults
	ValidityMinutes int    // applied to requests that do not choose one
	ExtraQueryParam string // marker parameter appended to every URL

	// StrictAWSKeyFormat additionally requires the access key ID to look
	// like an AWS-issued one. Off by default: R2, MinIO, and Spaces issue
	// keys in their own formats.
	StrictAWSKeyFormat bool
}

var awsAccessKeyPattern = regexp.MustCompile(`^[A-Z0-9]{20}$`)

// Validate validates the signer configuration.
func (c *SignerConfig) Validate() error {
	if c.AccessKeyID == "" {
		return errors.New("access_key_id is required")
	}
	if c.SecretAccessKey == "" {
		return errors.New("secret_access_key is required")
	}
	if c.StrictAWSKeyFormat && !awsAccessKeyPattern.MatchString(c.AccessKeyID) {
		return fmt.Errorf("access_key_id %q does not match the AWS key format", c.AccessKeyID)
	}

	if c.EndpointHost == "" {
		return errors.New("endpoint_host is required")
	}
	if strings.Contains(c.EndpointHost, "://") {
		return errors.New("endpoint_host must be a bare host or host:port, not a URL")
	}
	if strings.Contains(c.EndpointHost, "/") {
		return errors.New("endpoint_host must not contain a path")
	}

	if c.Region == "" {
		return errors.New("region is required")
	}

	if c.ValidityMinutes <= 0 {
		return errors.New("validity_minutes must be positive")
	}
	if c.ValidityMinutes > MaxValidityMinutes {
		return fmt.Errorf("validity_minutes must not exceed %d (seven days)", MaxValidityMinutes)
	}

	return nil
}

// BuildSigner creates a Signer instance from the signer configuration.
// Extra options are applied after the configuration-derived ones, so callers
// can attach hooks or a test clock.
func (c *SignerConfig) BuildSigner(extra ...simplepresign.Option) (*simplepresign.Signer, error) {
	opts := []simplepresign.Option{
		simplepresign.WithCredentials(simplepresign.Credentials{
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
		}),
		simplepresign.WithEndpoint(c.EndpointHost),
		simplepresign.WithRegion(c.Region),
		simplepresign.WithPathStyle(c.UsePathStyle),
	}
	if c.ExtraQueryParam != "" {
		opts = append(opts, simplepresign.WithExtraQueryParam(c.ExtraQueryParam))
	}
	opts = append(opts, extra...)
	return simplepresign.New(opts...)
}

// Credentials returns the configured key pair in the core type.
func (c *SignerConfig) Credentials() simplepresign.Credentials {
	return simplepresign.Credentials{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
	}
}

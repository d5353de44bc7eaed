package config

import (
	"fmt"
)

// WithCredentials sets the access key pair.
func WithCredentials(accessKeyID, secretAccessKey string) Option {
	return func(c *SignerConfig) error {
		if accessKeyID == "" {
			return fmt.Errorf("access key ID cannot be empty")
		}
		if secretAccessKey == "" {
			return fmt.Errorf("secret access key cannot be empty")
		}
		c.AccessKeyID = accessKeyID
		c.SecretAccessKey = secretAccessKey
		return nil
	}
}

// WithEndpointHost sets the endpoint as a bare host or host:port.
func WithEndpointHost(host string) Option {
	return func(c *SignerConfig) error {
		if host == "" {
			return fmt.Errorf("endpoint host cannot be empty")
		}
		c.EndpointHost = host
		return nil
	}
}

// WithRegion sets the signing region.
func WithRegion(region string) Option {
	return func(c *SignerConfig) error {
		if region == "" {
			return fmt.Errorf("region cannot be empty")
		}
		c.Region = region
		return nil
	}
}

// WithPathStyle selects path-style or virtual-hosted-style addressing.
func WithPathStyle(usePathStyle bool) Option {
	return func(c *SignerConfig) error {
		c.UsePathStyle = usePathStyle
		return nil
	}
}

// WithValidityMinutes sets the default validity applied to requests that do
// not choose one.
func WithValidityMinutes(minutes int) Option {
	return func(c *SignerConfig) error {
		if minutes <= 0 {
			return fmt.Errorf("validity minutes must be positive, got: %d", minutes)
		}
		if minutes > MaxValidityMinutes {
			return fmt.Errorf("validity minutes must not exceed %d, got: %d", MaxValidityMinutes, minutes)
		}
		c.ValidityMinutes = minutes
		return nil
	}
}

// WithExtraQueryParam sets a marker parameter appended to every signed URL.
func WithExtraQueryParam(name string) Option {
	return func(c *SignerConfig) error {
		c.ExtraQueryParam = name
		return nil
	}
}

// WithStrictAWSKeyFormat requires the access key ID to match the AWS-issued
// key format. Leave off for R2, MinIO, Spaces, and other providers.
func WithStrictAWSKeyFormat() Option {
	return func(c *SignerConfig) error {
		c.StrictAWSKeyFormat = true
		return nil
	}
}

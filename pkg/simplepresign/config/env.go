package config

import (
	"fmt"
	"os"
	"strconv"
)

// WithEnv applies environment variable overrides using the provided prefix.
//
// Credentials come from the canonical AWS variables, never prefixed:
//
//	AWS_ACCESS_KEY_ID     - Access key ID
//	AWS_SECRET_ACCESS_KEY - Secret access key
//	AWS_REGION            - Signing region (default: "us-west-1")
//
// Signer knobs honor the prefix:
//
//	S3_ENDPOINT       - Endpoint host or host:port (e.g. "s3.amazonaws.com",
//	                    "localhost:9000")
//	S3_PATH_STYLE     - "true" for path-style (default), "false" for
//	                    virtual-hosted-style
//	VALIDITY_MINUTES  - Default URL validity in minutes (default: 5)
//	EXTRA_QUERY_PARAM - Marker parameter name appended to every URL
//
// That's it! Use the programmatic options for anything else.
func WithEnv(prefix string) Option {
	return func(c *SignerConfig) error {
		if v, ok := os.LookupEnv("AWS_ACCESS_KEY_ID"); ok && v != "" {
			c.AccessKeyID = v
		}
		if v, ok := os.LookupEnv("AWS_SECRET_ACCESS_KEY"); ok && v != "" {
			c.SecretAccessKey = v
		}
		if v, ok := os.LookupEnv("AWS_REGION"); ok && v != "" {
			c.Region = v
		}

		if v, ok := lookupEnv(prefix, "S3_ENDPOINT"); ok && v != "" {
			c.EndpointHost = v
		}
		if v, set, err := parseBoolEnv(prefix, "S3_PATH_STYLE"); err != nil {
			return err
		} else if set {
			c.UsePathStyle = v
		}
		if v, set, err := parseIntEnv(prefix, "VALIDITY_MINUTES"); err != nil {
			return err
		} else if set {
			c.ValidityMinutes = v
		}
		if v, ok := lookupEnv(prefix, "EXTRA_QUERY_PARAM"); ok && v != "" {
			c.ExtraQueryParam = v
		}

		return nil
	}
}

func lookupEnv(prefix, key string) (string, bool) {
	return os.LookupEnv(prefix + key)
}

func parseBoolEnv(prefix, key string) (bool, bool, error) {
	raw, ok := lookupEnv(prefix, key)
	if !ok || raw == "" {
		return false, false, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("invalid boolean for %s%s: %w", prefix, key, err)
	}
	return parsed, true, nil
}

func parseIntEnv(prefix, key string) (int, bool, error) {
	raw, ok := lookupEnv(prefix, key)
	if !ok || raw == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid integer for %s%s: %w", prefix, key, err)
	}
	return parsed, true, nil
}

// Package awssdk presigns GET URLs through the official AWS SDK signer.
//
// It exists as an independent reference engine: the SDK computes signatures
// with its own SigV4 implementation, so agreement between this package and
// the local signer is strong evidence both are correct. The SDK stamps its
// own clock and appends an x-id operation parameter, so comparisons are
// structural rather than byte-for-byte.
package awssdk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tendant/simple-presign/pkg/simplepresign"
	"github.com/tendant/simple-presign/pkg/utils"
)

// Config options for the SDK-backed presigner.
type Config struct {
	Region          string // signing region (default: us-west-1)
	AccessKeyID     string // access key ID
	SecretAccessKey string // secret access key
	EndpointHost    string // bare host or host:port; https is assumed
	UsePathStyle    bool   // path-style addressing (default: virtual-hosted)
}

// Presigner wraps the AWS SDK presign client behind the same request shape
// the local signer takes.
type Presigner struct {
	presignClient *s3.PresignClient
	config        Config
}

// New creates an SDK-backed presigner. No network traffic happens here or
// during presigning; the SDK signs entirely locally.
func New(cfg Config) (*Presigner, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("access key pair is required")
	}
	if cfg.EndpointHost == "" {
		return nil, errors.New("endpoint host is required")
	}
	if cfg.Region == "" {
		cfg.Region = simplepresign.DefaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://" + cfg.EndpointHost)
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Presigner{
		presignClient: s3.NewPresignClient(client),
		config:        cfg,
	}, nil
}

// PresignGet produces a presigned GET URL through the SDK signer. The
// request timestamp is ignored: the SDK always signs with the current time.
func (p *Presigner) PresignGet(ctx context.Context, req simplepresign.SignRequest) (string, error) {
	input, err := p.getObjectInput(req)
	if err != nil {
		return "", err
	}

	result, err := p.presignClient.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ValidityMinutes) * time.Minute
	})
	if err != nil {
		return "", fmt.Errorf("sdk presign failed: %w", err)
	}
	return result.URL, nil
}

// PresignDownload is PresignGet with a Content-Disposition response override
// naming the sanitized download filename, so browsers save the object under
// that name instead of the object key.
func (p *Presigner) PresignDownload(ctx context.Context, req simplepresign.SignRequest, downloadFilename string) (string, error) {
	input, err := p.getObjectInput(req)
	if err != nil {
		return "", err
	}
	input.ResponseContentDisposition = aws.String(utils.ContentDispositionAttachment(downloadFilename))

	result, err := p.presignClient.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ValidityMinutes) * time.Minute
	})
	if err != nil {
		return "", fmt.Errorf("sdk presign failed: %w", err)
	}
	return result.URL, nil
}

func (p *Presigner) getObjectInput(req simplepresign.SignRequest) (*s3.GetObjectInput, error) {
	bucket := strings.TrimSpace(req.Bucket)
	objectKey := strings.TrimSpace(req.ObjectKey)
	if bucket == "" {
		return nil, simplepresign.ErrEmptyBucket
	}
	if objectKey == "" {
		return nil, simplepresign.ErrEmptyObjectKey
	}
	if req.ValidityMinutes <= 0 {
		return nil, simplepresign.ErrInvalidValidity
	}
	return &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	}, nil
}

// Package simplepresign creates SigV4 query-string presigned GET URLs for
// S3-compatible object storage.
//
// URLs are computed entirely in memory from a long-term access key pair: no
// SDK client, no network round-trip, no stored state. The same code signs
// for AWS S3, Cloudflare R2, DigitalOcean Spaces, Linode Object Storage,
// MinIO, and anything else that verifies Signature Version 4.
//
// # Key Features
//
//   - Pure function over (request, configuration, timestamp)
//   - Path-style and virtual-hosted-style addressing
//   - Deterministic output for a fixed request timestamp
//   - Derived-key caching across calls sharing a scope date
//   - Lifecycle hooks for audit and veto logic
//
// # Basic Usage
//
// Construct a Signer once and reuse it:
//
//	signer, err := simplepresign.New(
//	    simplepresign.WithCredentials(simplepresign.Credentials{
//	        AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
//	        SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	    }),
//	    simplepresign.WithEndpoint("s3.amazonaws.com"),
//	    simplepresign.WithRegion("us-east-1"),
//	)
//
//	result, err := signer.Presign(simplepresign.SignRequest{
//	    Bucket:          "reports",
//	    ObjectKey:       "2026/q2/summary.pdf",
//	    ValidityMinutes: 15,
//	})
//	// result.URL is ready to hand to any HTTP client.
//
// One-off signing without holding a Signer:
//
//	url, err := simplepresign.SignURL(simplepresign.SignRequest{
//	    Bucket:    "reports",
//	    ObjectKey: "2026/q2/summary.pdf",
//	}, creds, "s3.amazonaws.com")
//
// # Addressing Styles
//
// Path-style (the default) places the bucket in the path and suits MinIO and
// most self-hosted gateways:
//
//	https://host/bucket/key?...
//
// Virtual-hosted-style places the bucket in the host and is what AWS S3
// prefers for new buckets:
//
//	https://bucket.host/key?...
//
// The style changes the signed host header, so a URL signed in one style is
// only valid in that style.
//
// # Security Notes
//
//   - The secret access key is used only as HMAC key material and never
//     appears in output, String, or LogValue.
//   - Anyone holding a signed URL can read the object until it expires;
//     treat the URLs themselves as bearer credentials.
//   - Clock skew between signer and service eats into the validity window;
//     very short windows need synchronized clocks.
package simplepresign

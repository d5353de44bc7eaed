package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tendant/simple-presign/pkg/simplepresign"
	"github.com/tendant/simple-presign/pkg/simplepresign/awssdk"
)

func main() {
	// Define command-line flags
	region := flag.String("region", "us-west-1", "Region for the credential scope")
	bucket := flag.String("bucket", "", "Bucket name")
	accessKey := flag.String("access-key", "", "Access key ID")
	secretKey := flag.String("secret-key", "", "Secret access key")
	endpoint := flag.String("endpoint", "s3.amazonaws.com", "Endpoint host, e.g. s3.amazonaws.com or localhost:9000")
	usePathStyle := flag.Bool("use-path-style", true, "Use path-style addressing")
	validityMinutes := flag.Int("validity", 5, "Validity in minutes for signed URLs")
	extraParam := flag.String("extra-param", "", "Extra query parameter name appended before the signature")

	// Define commands
	command := flag.String("command", "help", "Command to execute: sign, compare, help")
	objectKey := flag.String("key", "", "Object key for operations")

	// MinIO shortcut
	useMinio := flag.Bool("use-minio", false, "Use MinIO defaults (sets endpoint, path-style, etc.)")
	minioEndpoint := flag.String("minio-endpoint", "localhost:9000", "MinIO server endpoint host")

	flag.Parse()

	// Apply MinIO defaults if requested
	if *useMinio {
		*endpoint = *minioEndpoint
		*usePathStyle = true
		*region = "us-east-1"
		if *accessKey == "" {
			*accessKey = "minioadmin"
		}
		if *secretKey == "" {
			*secretKey = "minioadmin"
		}
	}

	// Check for required parameters
	if *bucket == "" && *command != "help" && *command != "" {
		log.Fatal("Bucket name is required")
	}

	// Check for environment variables if flags not provided
	if *accessKey == "" {
		*accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	}

	if *secretKey == "" {
		*secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	// Skip signer initialization for help command
	var signer *simplepresign.Signer

	if *command != "help" && *command != "" {
		fmt.Println("Signing with the following configuration:")
		fmt.Printf("  Region: %s\n", *region)
		fmt.Printf("  Bucket: %s\n", *bucket)
		fmt.Printf("  Endpoint: %s\n", *endpoint)
		fmt.Printf("  Use Path Style: %v\n", *usePathStyle)
		fmt.Printf("  Access Key: %s\n", *accessKey)
		fmt.Println()

		var err error
		signer, err = simplepresign.New(
			simplepresign.WithCredentials(simplepresign.Credentials{
				AccessKeyID:     *accessKey,
				SecretAccessKey: *secretKey,
			}),
			simplepresign.WithEndpoint(*endpoint),
			simplepresign.WithRegion(*region),
			simplepresign.WithPathStyle(*usePathStyle),
		)
		if err != nil {
			log.Fatalf("Failed to initialize signer: %v", err)
		}
	}

	// Execute command
	switch strings.ToLower(*command) {
	case "sign":
		if *objectKey == "" {
			log.Fatal("Object key is required for sign")
		}

		req := simplepresign.SignRequest{
			Bucket:          *bucket,
			ObjectKey:       *objectKey,
			ValidityMinutes: *validityMinutes,
			ExtraQueryParam: *extraParam,
		}

		startTime := time.Now()
		result, err := signer.Presign(req)
		duration := time.Since(startTime)
		if err != nil {
			log.Fatalf("Failed to sign URL: %v", err)
		}
		fmt.Printf("Presigned GET URL for %s/%s (valid for %d minutes):\n%s\n",
			*bucket, *objectKey, *validityMinutes, result.URL)
		fmt.Printf("Expires at %s\n", result.ExpiresAt.Format(time.RFC3339))
		fmt.Printf("Generated in %v\n", duration)
		fmt.Println("\nTo use this URL with curl:")
		fmt.Printf("curl \"%s\" -o downloaded-file.txt\n", result.URL)

	case "compare":
		if *objectKey == "" {
			log.Fatal("Object key is required for compare")
		}

		req := simplepresign.SignRequest{
			Bucket:          *bucket,
			ObjectKey:       *objectKey,
			ValidityMinutes: *validityMinutes,
		}

		localURL, err := signer.SignURL(req)
		if err != nil {
			log.Fatalf("Local signing failed: %v", err)
		}

		sdkPresigner, err := awssdk.New(awssdk.Config{
			Region:          *region,
			AccessKeyID:     *accessKey,
			SecretAccessKey: *secretKey,
			EndpointHost:    *endpoint,
			UsePathStyle:    *usePathStyle,
		})
		if err != nil {
			log.Fatalf("Failed to initialize SDK presigner: %v", err)
		}

		sdkURL, err := sdkPresigner.PresignGet(context.Background(), req)
		if err != nil {
			log.Fatalf("SDK signing failed: %v", err)
		}

		fmt.Printf("Local URL:\n%s\n\n", localURL)
		fmt.Printf("SDK URL:\n%s\n\n", sdkURL)

		diffs, err := awssdk.StructuralDiff(localURL, sdkURL)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		if len(diffs) == 0 {
			fmt.Println("Both engines agree structurally.")
		} else {
			fmt.Println("Structural differences:")
			for _, d := range diffs {
				fmt.Printf("  - %s\n", d)
			}
			os.Exit(1)
		}

	case "help", "":
		fmt.Println("Presigned URL Tool")
		fmt.Println("\nCommands:")
		fmt.Println("  sign     Generate a presigned GET URL")
		fmt.Println("  compare  Sign with both the local engine and the AWS SDK and diff the results")
		fmt.Println("  help     Show this help message")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  Sign a URL for AWS S3:")
		fmt.Println("    presign -bucket my-bucket -access-key AKIAXXXX -secret-key XXXX -command sign -key test/file.txt")
		fmt.Println("\n  Sign a URL for MinIO:")
		fmt.Println("    presign -use-minio -bucket my-bucket -command sign -key test/file.txt")
		fmt.Println("\n  Check the local engine against the AWS SDK:")
		fmt.Println("    presign -use-minio -bucket my-bucket -command compare -key test/file.txt")

	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}

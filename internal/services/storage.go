package services

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// ExportStorage archives generated export files (booking CSVs) to S3, or
// to a local directory when AWS credentials are not configured.
type ExportStorage struct {
	uploader *s3manager.Uploader
	bucket   string
	localDir string
	useS3    bool
}

// NewExportStorage initializes either S3 or local storage based on
// AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and S3_BUCKET.
func NewExportStorage() (*ExportStorage, error) {
	awsRegion := os.Getenv("AWS_REGION")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	bucket := os.Getenv("S3_BUCKET")

	if awsRegion != "" && awsAccessKey != "" && awsSecretKey != "" && bucket != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(awsRegion),
			Credentials: credentials.NewStaticCredentials(
				awsAccessKey,
				awsSecretKey,
				"", // Token (optional)
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %v", err)
		}

		log.Println("AWS S3 export storage initialized successfully")
		return &ExportStorage{
			uploader: s3manager.NewUploader(sess),
			bucket:   bucket,
			useS3:    true,
		}, nil
	}

	// Fallback to local storage
	localDir := os.Getenv("EXPORT_DIR")
	if localDir == "" {
		localDir = "./exports"
	}
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %v", err)
	}

	log.Printf("Local export storage initialized at %s", localDir)
	return &ExportStorage{localDir: localDir}, nil
}

// SaveExport stores a named export file and returns its location.
func (s *ExportStorage) SaveExport(name string, data []byte) (string, error) {
	key := fmt.Sprintf("exports/%s-%s", time.Now().Format("20060102-150405"), name)

	if s.useS3 {
		result, err := s.uploader.Upload(&s3manager.UploadInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("text/csv"),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload export to S3: %v", err)
		}
		return result.Location, nil
	}

	path := filepath.Join(s.localDir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %v", err)
	}
	return path, nil
}

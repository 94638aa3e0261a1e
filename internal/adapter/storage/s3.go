package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/argosbackup/argos/internal/config"
	"github.com/argosbackup/argos/internal/domain"
)

// S3Store is the alternative remote target: the day directory becomes a key
// prefix `{prefix}/{hostname}-{id}/{weekday}/` in the bucket.
type S3Store struct {
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

func NewS3(cfg *appconfig.RemoteConfig) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Store{
		uploader: s3manager.NewUploader(s3.NewFromConfig(awsCfg)),
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
	}, nil
}

func (s *S3Store) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.prefix)
}

// EnsureDayDir is a no-op: S3 has no directories to provision.
func (s *S3Store) EnsureDayDir(ctx context.Context, rc domain.RunContext) error {
	return nil
}

func (s *S3Store) CopyDayDir(ctx context.Context, rc domain.RunContext) (string, error) {
	entries, err := os.ReadDir(rc.LocalDayDir)
	if err != nil {
		return "", fmt.Errorf("read day directory: %w", err)
	}

	uploaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key := dayKey(s.prefix, rc, entry.Name())
		if err := s.uploadFile(ctx, filepath.Join(rc.LocalDayDir, entry.Name()), key); err != nil {
			return fmt.Sprintf("uploaded %d object(s) before failure", uploaded), err
		}
		uploaded++
	}

	return fmt.Sprintf("uploaded %d object(s) to s3://%s", uploaded, s.bucket), nil
}

func (s *S3Store) uploadFile(ctx context.Context, localPath, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}

	return nil
}

func dayKey(prefix string, rc domain.RunContext, filename string) string {
	return path.Join(prefix, rc.HostDir(), rc.Weekday, filename)
}

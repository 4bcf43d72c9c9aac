package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/HovVathana/shoppink-backend/config"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
)

// allowed upload content types, keyed to their object key extension
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ErrUnsupportedContentType is returned for uploads outside the image types
// the storefront can render.
var ErrUnsupportedContentType = fmt.Errorf("unsupported content type")

// PresignedUpload is a one-shot PUT URL the client uploads directly to.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
	ExpiresIn int64  `json:"expires_in"`
}

type S3Storage struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
	baseURL   string
	expiry    time.Duration
}

func NewS3Storage(ctx context.Context, cfg *appconfig.S3Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	logger.Info("S3 storage initialized", map[string]interface{}{
		"bucket": cfg.Bucket,
		"region": cfg.Region,
	})

	return &S3Storage{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		expiry:    15 * time.Minute,
	}, nil
}

func (s *S3Storage) publicURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// PresignUpload issues a presigned PUT URL under the given folder. The object
// key is randomized so client-supplied names never collide or traverse.
func (s *S3Storage) PresignUpload(ctx context.Context, folder, contentType string) (*PresignedUpload, error) {
	ext, ok := allowedContentTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, ErrUnsupportedContentType
	}

	key := path.Join(folder, uuid.New().String()+ext)
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		logger.Error("Failed to presign upload", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		PublicURL: s.publicURL(key),
		Key:       key,
		ExpiresIn: int64(s.expiry.Seconds()),
	}, nil
}

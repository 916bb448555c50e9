package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
	ErrStorageNotReady    = errors.New("object storage is not configured")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, content []byte, folder string, allowedTypes ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client   *s3.Client
		uploader *manager.Uploader
		bucket   string
		region   string
		endpoint string
	}
)

func NewAwsS3() (AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" || region == "" {
		return nil, ErrStorageNotReady
	}
	endpoint := strings.TrimRight(utils.GetConfig("AWS_S3_ENDPOINT"), "/")

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}, nil
}

// UploadFile stores content under folder/fileName and returns the object key.
// The extension of fileName is taken from the detected content type.
func (s *awsS3) UploadFile(ctx context.Context, fileName string, content []byte, folder string, allowedTypes ...string) (string, error) {
	mtype, err := DetectType(content, allowedTypes...)
	if err != nil {
		return "", err
	}

	objectKey := strings.Trim(folder, "/") + "/" + fileName + mtype.Extension()
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(mtype.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return PublicLink(s.endpoint, s.bucket, s.region, objectKey)
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	return ObjectKeyFromLink(s.endpoint, s.bucket, s.region, link)
}

func PublicLink(endpoint, bucket, region, objectKey string) string {
	if endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpoint, bucket, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, objectKey)
}

// ObjectKeyFromLink is the inverse of PublicLink; it returns "" for foreign links.
func ObjectKeyFromLink(endpoint, bucket, region, link string) string {
	prefix := PublicLink(endpoint, bucket, region, "")
	if link == "" || !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

// DetectType sniffs content and checks it against allowedTypes (all types when empty).
func DetectType(content []byte, allowedTypes ...string) (*mimetype.MIME, error) {
	mtype := mimetype.Detect(content)
	if len(allowedTypes) == 0 {
		return mtype, nil
	}
	for _, allowed := range allowedTypes {
		if mtype.Is(allowed) {
			return mtype, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, mtype.String())
}

package services

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service issues presigned URLs for profile photo upload and download. The
// server never proxies image bytes.
type S3Service struct {
	Presigner *s3.PresignClient
	Bucket    string
}

// NewS3Service builds the S3 service for the configured region and bucket.
func NewS3Service(region, bucket string) (*S3Service, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &S3Service{
		Presigner: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		Bucket:    bucket,
	}, nil
}

// GenerateUploadURL generates a presigned URL for uploading a profile photo
func (s *S3Service) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := "profile-pics/" + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigned, err := s.Presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presigned.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a stored photo
func (s *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}
	presigned, err := s.Presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}

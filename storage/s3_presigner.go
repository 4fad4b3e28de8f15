package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3PresignerConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UploadExpiry    time.Duration
	DownloadExpiry  time.Duration
}

type s3Presigner struct {
	presignClient  *s3.PresignClient
	bucketName     string
	uploadExpiry   time.Duration
	downloadExpiry time.Duration
}

func NewS3Presigner(cfg S3PresignerConfig) (Presigner, error) {
	if cfg.Region == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" {
		return nil, errors.New("invalid S3 presigner configuration: region, credentials and bucket are required")
	}
	if cfg.UploadExpiry <= 0 {
		cfg.UploadExpiry = 15 * time.Minute
	}
	if cfg.DownloadExpiry <= 0 {
		cfg.DownloadExpiry = 5 * time.Minute
	}

	sdkCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg)

	return &s3Presigner{
		presignClient:  s3.NewPresignClient(client),
		bucketName:     cfg.BucketName,
		uploadExpiry:   cfg.UploadExpiry,
		downloadExpiry: cfg.DownloadExpiry,
	}, nil
}

func (p *s3Presigner) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req, err := p.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.uploadExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload (key: %s): %w", key, err)
	}
	return req.URL, nil
}

func (p *s3Presigner) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := p.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.downloadExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign download (key: %s): %w", key, err)
	}
	return req.URL, nil
}

package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/CloudGalleryGo/CloudGallery/internal/config"
)

// Client is the object-storage adapter for uploaded image files. Objects
// are made publicly readable and addressed by the bucket's public URL
// scheme, so no presigning is needed to display them.
type Client struct {
	s3Client   *s3.Client
	uploader   *manager.Uploader
	bucketName string
	region     string
	logger     *slog.Logger
}

// NewClient builds an S3 client from the static credentials in cfg.
func NewClient(cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	if cfg.AWSAccessKey == "" || cfg.AWSSecretKey == "" || cfg.BucketName == "" {
		return nil, fmt.Errorf("AWS credentials (AWS_ACCESS_KEY, AWS_SECRET_KEY, BUCKET_NAME) must be set in environment variables")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg)

	return &Client{
		s3Client:   s3Client,
		uploader:   manager.NewUploader(s3Client),
		bucketName: cfg.BucketName,
		region:     cfg.AWSRegion,
		logger:     logger,
	}, nil
}

// UploadFile uploads the object under key, sets its ACL to public-read and
// returns the public URL. No existence check is made first; repeated keys
// overwrite the previously stored object.
func (c *Client) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s to bucket %s: %w", key, c.bucketName, err)
	}

	_, err = c.s3Client.PutObjectAcl(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to set public-read ACL on %s: %w", key, err)
	}

	url := PublicURL(c.bucketName, c.region, key)
	c.logger.Info("file uploaded to object storage", "key", key, "url", url)
	return url, nil
}

// PublicURL computes the public object URL by convention from bucket,
// region and key.
func PublicURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

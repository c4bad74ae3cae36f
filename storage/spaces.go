// Package storage archives acquired transcripts to an S3-compatible bucket.
// The archive is optional and best-effort; the sqlite cache is the source of
// truth for reuse, the bucket is for durability across deployments.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Endpoint  string
	Bucket    string
}

type SpacesClient struct {
	client *s3.Client
	bucket string
}

func NewSpacesClient(cfg SpacesConfig) (*SpacesClient, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: cfg.Endpoint,
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	return &SpacesClient{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

type archivedTranscript struct {
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *SpacesClient) SaveTranscript(ctx context.Context, videoID, text, source string) error {
	data := archivedTranscript{
		Text:      text,
		Source:    source,
		Timestamp: time.Now(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %v", err)
	}

	key := fmt.Sprintf("transcripts/%s.json", videoID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(jsonData),
	})
	if err != nil {
		return fmt.Errorf("failed to save to Spaces: %v", err)
	}

	return nil
}

func (s *SpacesClient) GetTranscript(ctx context.Context, videoID string) (string, string, error) {
	key := fmt.Sprintf("transcripts/%s.json", videoID)
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to get from Spaces: %v", err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read object body: %v", err)
	}

	var data archivedTranscript
	if err := json.Unmarshal(body, &data); err != nil {
		return "", "", fmt.Errorf("failed to decode data: %v", err)
	}

	return data.Text, data.Source, nil
}

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrObjectExists   = errors.New("object already exists")
)

// Object is a single entry returned by List.
type Object struct {
	Key  string
	Name string
	Size int64
}

// S3Store keeps user documents in a single bucket.
type S3Store struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

func NewS3Store(cfg aws.Config, bucket, publicBaseURL string, optFns ...func(*s3.Options)) *S3Store {
	return &S3Store{
		client:        s3.NewFromConfig(cfg, optFns...),
		bucket:        bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// Upload writes body at key. Without overwrite an existing object is left
// untouched and ErrObjectExists is returned.
func (s *S3Store) Upload(ctx context.Context, key string, body []byte, contentType string, overwrite bool) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if !overwrite {
		input.IfNoneMatch = aws.String("*")
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "PreconditionFailed":
				return fmt.Errorf("%s: %w", key, ErrObjectExists)
			case "EntityTooLarge":
				log.Printf("Object %s is too large for a single PUT to %s", key, s.bucket)
			}
		}
		return fmt.Errorf("couldn't upload %s to %s: %w", key, s.bucket, err)
	}
	return nil
}

// PublicURL returns the address the object is served from. The blob itself
// is not checked.
func (s *S3Store) PublicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) Download(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%s: %w", key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("couldn't get object %s:%s: %w", s.bucket, key, err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read object body from %s: %w", key, err)
	}
	return body, nil
}

// Remove deletes every key. Missing keys are not an error.
func (s *S3Store) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("couldn't delete %s from %s: %w", key, s.bucket, err)
		}
	}
	return nil
}

// List returns the objects under prefix whose base name contains search.
// Results come back in key order.
func (s *S3Store) List(ctx context.Context, prefix, search string) ([]Object, error) {
	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't list %s/%s: %w", s.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			name := path.Base(key)
			if search != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(search)) {
				continue
			}
			objects = append(objects, Object{Key: key, Name: name, Size: aws.ToInt64(obj.Size)})
		}
	}
	return objects, nil
}

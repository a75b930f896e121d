// Package assets stores project media and exported scripts in S3 (or any
// S3-compatible provider).
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"sceneforge/script"
)

// Config configures the asset store. Credentials come from the standard AWS
// chain; only the bucket is required.
type Config struct {
	Bucket string
	// Region to use for requests. If empty, AWS defaults apply.
	Region string
	// Profile selects a named shared config/credentials profile.
	Profile string
	// UsePathStyle forces path-style addressing (needed by MinIO and some
	// other S3-compatible providers).
	UsePathStyle bool
	// Endpoint overrides the S3 endpoint for S3-compatible providers.
	Endpoint string
}

// Store wraps the AWS SDK S3 client behind the narrow surface the editor
// needs: scene media in, exported scripts out.
type Store struct {
	client *s3.Client
	bucket string
}

// NewStoreFromEnv creates a Store using environment variables ASSETS_BUCKET
// (required), AWS_REGION, AWS_PROFILE, ASSETS_ENDPOINT and
// ASSETS_PATH_STYLE.
func NewStoreFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("ASSETS_BUCKET")
	if bucket == "" {
		return nil, errors.New("ASSETS_BUCKET not set")
	}
	pathStyle := false
	if ps := os.Getenv("ASSETS_PATH_STYLE"); ps != "" {
		if b, err := strconv.ParseBool(ps); err == nil {
			pathStyle = b
		}
	}
	return NewStore(ctx, Config{
		Bucket:       bucket,
		Region:       os.Getenv("AWS_REGION"),
		Profile:      os.Getenv("AWS_PROFILE"),
		Endpoint:     os.Getenv("ASSETS_ENDPOINT"),
		UsePathStyle: pathStyle,
	})
}

// NewStore creates a Store using the default AWS configuration chain with
// optional overrides from Config.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("asset bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	c := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{client: c, bucket: cfg.Bucket}, nil
}

// Key layout: everything belonging to one project lives under its id so a
// project delete is a single prefix sweep.
func scriptKey(projectID string) string {
	return fmt.Sprintf("projects/%s/script.json", projectID)
}

func mediaKey(projectID string, scene int, name string) string {
	return fmt.Sprintf("projects/%s/scenes/%d/%s", projectID, scene, name)
}

// PutScript marshals the exported script and uploads it as the project's
// script.json, returning the object key.
func (s *Store) PutScript(ctx context.Context, projectID string, sc *script.Script) (string, error) {
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal script: %w", err)
	}
	key := scriptKey(projectID)
	if err := s.put(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("upload script for project %s: %w", projectID, err)
	}
	return key, nil
}

// GetScript downloads and decodes a previously exported script.
func (s *Store) GetScript(ctx context.Context, projectID string) (*script.Script, error) {
	body, err := s.get(ctx, scriptKey(projectID))
	if err != nil {
		return nil, fmt.Errorf("download script for project %s: %w", projectID, err)
	}
	defer body.Close()

	var sc script.Script
	if err := json.NewDecoder(body).Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode script for project %s: %w", projectID, err)
	}
	return &sc, nil
}

// PutSceneMedia uploads a media file (image, audio) for one scene and
// returns its object key.
func (s *Store) PutSceneMedia(ctx context.Context, projectID string, scene int, name, contentType string, body io.Reader) (string, error) {
	key := mediaKey(projectID, scene, name)
	if err := s.put(ctx, key, body, contentType); err != nil {
		return "", fmt.Errorf("upload %s for project %s scene %d: %w", name, projectID, scene, err)
	}
	return key, nil
}

// GetSceneMedia fetches a scene media object. Caller must Close the body.
func (s *Store) GetSceneMedia(ctx context.Context, projectID string, scene int, name string) (io.ReadCloser, error) {
	return s.get(ctx, mediaKey(projectID, scene, name))
}

// HasScript reports whether the project has an exported script, without
// downloading it.
func (s *Store) HasScript(ctx context.Context, projectID string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(scriptKey(projectID)),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}
	return false, err
}

// DeleteProject removes every object stored under the project's prefix.
func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	prefix := fmt.Sprintf("projects/%s/", projectID)
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return fmt.Errorf("list assets for project %s: %w", projectID, err)
		}
		for _, obj := range out.Contents {
			if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    obj.Key,
			}); err != nil {
				return fmt.Errorf("delete %s: %w", aws.ToString(obj.Key), err)
			}
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			return nil
		}
		token = out.NextContinuationToken
	}
}

func (s *Store) put(ctx context.Context, key string, body io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	_, err := s.client.PutObject(ctx, in)
	return err
}

func (s *Store) get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

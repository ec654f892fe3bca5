// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package storage provides the S3-compatible object store holding paper PDFs.

Objects are keyed deterministically from the paper id, version number, and a
sanitized title:

	papers/<paperId>-<version>-<sanitized-title>.<ext>

so a given version of a paper always resolves to the same key without a
lookup table.
*/
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/peerreview/journalhub/internal/platform/config"
	"github.com/peerreview/journalhub/pkg/slug"
)

// ObjectStore wraps the S3 client with the bucket the platform writes into.
type ObjectStore struct {
	client *s3.Client
	bucket string
}

// New builds an [ObjectStore] from application configuration.
func New(ctx context.Context, cfg *config.Config) (*ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithBaseEndpoint(cfg.S3Endpoint),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessID,
			cfg.S3AccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load S3 configuration: %w", err)
	}

	return &ObjectStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
	}, nil
}

// PaperKey builds the deterministic object key for one version of a paper.
//
// The title is sanitized through [slug.From]; the extension is stored without
// a leading dot.
func PaperKey(paperID, version int, title, extension string) string {
	extension = strings.TrimPrefix(extension, ".")
	return fmt.Sprintf("papers/%d-%d-%s.%s", paperID, version, slug.From(title), extension)
}

// Upload writes content under key, replacing any existing object.
func (store *ObjectStore) Upload(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: failed to upload %s: %w", key, err)
	}

	return nil
}

// Download fetches the object stored under key.
func (store *ObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	output, err := store.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to download %s: %w", key, err)
	}
	defer output.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, output.Body); err != nil {
		return nil, fmt.Errorf("storage: failed to read body of %s: %w", key, err)
	}

	return buf.Bytes(), nil
}

// Exists reports whether an object is stored under key.
func (store *ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := store.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("storage: failed to stat %s: %w", key, err)
	}

	return true, nil
}

// Delete removes the object stored under key.
func (store *ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: failed to delete %s: %w", key, err)
	}

	return nil
}

// Move relocates an object by copying to the new key and deleting the old one.
//
// This is NOT atomic: a crash between copy and delete leaves the object under
// both keys. Callers tolerate the duplicate because keys are deterministic
// and re-running the move converges.
func (store *ObjectStore) Move(ctx context.Context, fromKey, toKey string) error {
	_, err := store.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(store.bucket),
		CopySource: aws.String(store.bucket + "/" + fromKey),
		Key:        aws.String(toKey),
	})
	if err != nil {
		return fmt.Errorf("storage: failed to copy %s to %s: %w", fromKey, toKey, err)
	}

	if err := store.Delete(ctx, fromKey); err != nil {
		return err
	}

	return nil
}

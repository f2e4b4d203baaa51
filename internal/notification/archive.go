package notification

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type MinIOStore struct {
	client *minio.Client
	bucket string
	region string
	logger zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

// NewMinIOStore does not contact the server; the bucket is created on first Put.
func NewMinIOStore(endpoint, accessKey, secretKey, bucket, region string, useSSL bool, logger zerolog.Logger) (*MinIOStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.Info().
		Str("endpoint", endpoint).
		Str("bucket", bucket).
		Bool("ssl", useSSL).
		Msg("MinIO archive configured")

	return &MinIOStore{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}, nil
}

func (s *MinIOStore) ensureBucket(ctx context.Context) error {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	if s.bucketEnsured {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.Info().Str("bucket", s.bucket).Msg("Created new bucket")
	}

	s.bucketEnsured = true
	return nil
}

func (s *MinIOStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug().
		Str("bucket", s.bucket).
		Str("key", key).
		Str("etag", info.ETag).
		Msg("Object uploaded to MinIO")

	return nil
}

// ArchiveSender keeps a copy of every rendered message, delivered or not, under
// <kind>/<recordID>.html. Archive failures are logged and never change the result
// of the wrapped sender.
type ArchiveSender struct {
	next   Sender
	store  ObjectStore
	logger zerolog.Logger
}

func NewArchiveSender(next Sender, store ObjectStore, logger zerolog.Logger) *ArchiveSender {
	return &ArchiveSender{next: next, store: store, logger: logger}
}

func (s *ArchiveSender) Send(ctx context.Context, msg Message) error {
	sendErr := s.next.Send(ctx, msg)

	if err := s.store.Put(ctx, ArchiveKey(msg), []byte(msg.HTML), "text/html; charset=utf-8"); err != nil {
		s.logger.Error().
			Err(err).
			Str("kind", string(msg.Kind)).
			Str("record_id", msg.RecordID).
			Msg("Failed to archive email")
	}

	return sendErr
}

func ArchiveKey(msg Message) string {
	return path.Join(string(msg.Kind), msg.RecordID+".html")
}

package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"barkeep/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// objectPrefix namespaces backup documents inside the bucket.
const objectPrefix = "backups/"

// Offsite copies backup documents to and from an S3-compatible bucket.
type Offsite struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewOffsite creates an offsite backup component.
func NewOffsite(client storage.Client, bucket string, logger *zap.Logger) *Offsite {
	return &Offsite{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

func (o *Offsite) ensureBucket(ctx context.Context) error {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Push uploads a backup document under the backups/ prefix.
func (o *Offsite) Push(ctx context.Context, filename string, data []byte) error {
	if err := o.ensureBucket(ctx); err != nil {
		return err
	}

	objectName := objectPrefix + filename
	_, err := o.client.PutObject(
		ctx,
		o.bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to upload backup: %w", err)
	}

	o.logger.Info("backup pushed",
		zap.String("object", objectName),
		zap.Int("bytes", len(data)))
	return nil
}

// List returns the stored backup filenames, oldest first. The dated filename
// scheme makes lexical order chronological.
func (o *Offsite) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range o.client.ListObjects(ctx, o.bucket, minio.ListObjectsOptions{Prefix: objectPrefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", obj.Err)
		}
		names = append(names, strings.TrimPrefix(obj.Key, objectPrefix))
	}
	sort.Strings(names)
	return names, nil
}

// Pull downloads a stored backup document. An empty filename selects the
// most recent one.
func (o *Offsite) Pull(ctx context.Context, filename string) (string, []byte, error) {
	if filename == "" {
		names, err := o.List(ctx)
		if err != nil {
			return "", nil, err
		}
		if len(names) == 0 {
			return "", nil, fmt.Errorf("no backups found in bucket %s", o.bucket)
		}
		filename = names[len(names)-1]
	}

	obj, err := o.client.GetObject(ctx, o.bucket, objectPrefix+filename, minio.GetObjectOptions{})
	if err != nil {
		return "", nil, fmt.Errorf("failed to download backup: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read backup %s: %w", filename, err)
	}
	return filename, data, nil
}

// Prune deletes the oldest stored backups, keeping the most recent keep
// documents. It returns the deleted filenames.
func (o *Offsite) Prune(ctx context.Context, keep int) ([]string, error) {
	names, err := o.List(ctx)
	if err != nil {
		return nil, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(names) <= keep {
		return nil, nil
	}

	doomed := names[:len(names)-keep]
	for _, name := range doomed {
		if err := o.client.RemoveObject(ctx, o.bucket, objectPrefix+name, minio.RemoveObjectOptions{}); err != nil {
			return nil, fmt.Errorf("failed to delete backup %s: %w", name, err)
		}
		o.logger.Info("backup pruned", zap.String("object", objectPrefix+name))
	}
	return doomed, nil
}

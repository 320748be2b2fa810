// Package bucketstore implements store.Store on any objstore.Bucket (S3, GCS,
// filesystem, in-memory...). Each entry is one JSON object holding the ETag, the
// store time and the body, so a reader always sees a validator together with the
// body it describes.
package bucketstore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/goccy/go-json"
	"github.com/mrchypark/shopclient/pkg/store"
	"github.com/thanos-io/objstore"
)

// DefaultPrefix is the object prefix used when none is given.
const DefaultPrefix = "responses"

// BucketStore wraps an objstore.Bucket.
type BucketStore struct {
	bucket objstore.Bucket
	prefix string
	logger log.Logger
}

// New creates a store that keeps objects under prefix in bucket.
func New(bucket objstore.Bucket, prefix string, logger log.Logger) *BucketStore {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &BucketStore{
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// 컴파일 타임에 인터페이스 만족 확인
var _ store.Store = (*BucketStore)(nil)

// object is the stored document. Body is base64 in JSON.
type object struct {
	ETag     string    `json:"etag"`
	StoredAt time.Time `json:"stored_at"`
	Body     []byte    `json:"body"`
}

// Get reads and decodes the object of key. A partially written or otherwise
// undecodable object is reported as ErrNotFound so the caller refetches.
func (b *BucketStore) Get(ctx context.Context, key string) (*store.Entry, error) {
	r, err := b.bucket.Get(ctx, b.objectPath(key))
	if err != nil {
		if b.bucket.IsObjNotFoundErr(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("bucketstore: get %q: %w", key, err)
	}
	defer r.Close()

	var obj object
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		level.Warn(b.logger).Log("msg", "ignoring undecodable object", "key", key, "err", err)
		return nil, store.ErrNotFound
	}
	return &store.Entry{ETag: obj.ETag, Body: obj.Body, StoredAt: obj.StoredAt}, nil
}

// Set writes e as a single object, replacing the previous one.
func (b *BucketStore) Set(ctx context.Context, key string, e *store.Entry) error {
	data, err := json.Marshal(object{ETag: e.ETag, StoredAt: e.StoredAt, Body: e.Body})
	if err != nil {
		return fmt.Errorf("bucketstore: marshal %q: %w", key, err)
	}
	if err := b.bucket.Upload(ctx, b.objectPath(key), bytes.NewReader(data)); err != nil {
		level.Error(b.logger).Log("msg", "object upload failed", "key", key, "err", err)
		return fmt.Errorf("bucketstore: upload %q: %w", key, err)
	}
	return nil
}

// Delete removes the object of key. A missing object is not an error.
func (b *BucketStore) Delete(ctx context.Context, key string) error {
	if err := b.bucket.Delete(ctx, b.objectPath(key)); err != nil && !b.bucket.IsObjNotFoundErr(err) {
		level.Error(b.logger).Log("msg", "failed to delete object", "key", key, "err", err)
		return fmt.Errorf("bucketstore: delete %q: %w", key, err)
	}
	return nil
}

func (b *BucketStore) objectPath(key string) string {
	return path.Join(b.prefix, key+".json")
}

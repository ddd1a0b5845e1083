package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"specy-indexer/core/chain"
	"specy-indexer/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archiver writes delivered blocks to object storage so they can be replayed
// with ObjectSource.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
}

// NewArchiver creates an archiver writing under prefix in bucket.
func NewArchiver(client storage.Client, bucket, prefix string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix}
}

// ObjectName returns the archive object name of a block. Zero padded heights
// keep lexical and chain order aligned.
func ObjectName(prefix string, header chain.BlockHeader) string {
	return fmt.Sprintf("%s%020d-%s.json", prefix, header.Height, header.Hash)
}

// Archive stores b and returns the object name.
func (a *Archiver) Archive(ctx context.Context, b chain.Block) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("failed to encode block %d: %w", b.Header.Height, err)
	}
	name := ObjectName(a.prefix, b.Header)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to archive block %d: %w", b.Header.Height, err)
	}
	return name, nil
}

// Package storage wraps the MinIO client for the block archive.
//
// Delivered blocks can be written to an S3 compatible bucket and later
// replayed from it. The Client interface covers only the calls the archive
// and the replay feed make, so tests can substitute core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
package storage

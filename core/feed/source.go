package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"specy-indexer/core/chain"
	"specy-indexer/core/storage"

	"github.com/minio/minio-go/v7"
)

// Handler receives each block of a feed together with the name it was read from.
type Handler func(ctx context.Context, source string, b chain.Block) error

// Source yields blocks in delivery order.
type Source interface {
	Each(ctx context.Context, fn Handler) error
}

// FileSource reads blocks from a file, or from every feed file in a directory
// in lexical order.
type FileSource struct {
	Path string
}

// Each implements Source.
func (s FileSource) Each(ctx context.Context, fn Handler) error {
	info, err := os.Stat(s.Path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return s.readFile(ctx, s.Path, fn)
	}

	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return err
	}
	// ReadDir returns entries sorted by file name.
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatOf(entry.Name()); err != nil {
			continue
		}
		if err := s.readFile(ctx, filepath.Join(s.Path, entry.Name()), fn); err != nil {
			return err
		}
	}
	return nil
}

func (s FileSource) readFile(ctx context.Context, path string, fn Handler) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	blocks, err := Decode(f, format)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return each(ctx, path, blocks, fn)
}

// ObjectSource reads blocks from every feed object under a bucket prefix in
// lexical order of object names.
type ObjectSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// Each implements Source.
func (s ObjectSource) Each(ctx context.Context, fn Handler) error {
	var names []string
	for obj := range s.Client.ListObjects(ctx, s.Bucket, minio.ListObjectsOptions{Prefix: s.Prefix, Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list %s/%s: %w", s.Bucket, s.Prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if _, err := FormatOf(obj.Key); err != nil {
			continue
		}
		names = append(names, obj.Key)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.readObject(ctx, name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (s ObjectSource) readObject(ctx context.Context, name string, fn Handler) error {
	format, err := FormatOf(name)
	if err != nil {
		return err
	}
	obj, err := s.Client.GetObject(ctx, s.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get %s/%s: %w", s.Bucket, name, err)
	}
	defer obj.Close()

	blocks, err := Decode(obj, format)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", s.Bucket, name, err)
	}
	return each(ctx, name, blocks, fn)
}

func each(ctx context.Context, source string, blocks []chain.Block, fn Handler) error {
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, source, b); err != nil {
			return err
		}
	}
	return nil
}

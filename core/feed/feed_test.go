package feed

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"specy-indexer/core/chain"
	"specy-indexer/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const jsonBlock = `{"header":{"hash":"0xB1","height":1,"time":"2024-01-02T03:04:05Z"},
 "transactions":[{"hash":"0xT1","events":[{"type":"transfer","attributes":[{"key":"amount","value":"10"}]}]}]}`

const yamlBlocks = `header:
  hash: "0xB1"
  height: 1
  time: 2024-01-02T03:04:05Z
transactions:
  - hash: "0xT1"
    events:
      - type: rule
        attributes:
          - key: rule_name
            value: r1
---
header:
  hash: "0xB2"
  height: 2
  time: 2024-01-02T03:04:06Z
`

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.json":       FormatJSON,
		"dir/b.JSONL":  FormatJSON,
		"c.ndjson":     FormatJSON,
		"d.yaml":       FormatYAML,
		"blocks/e.yml": FormatYAML,
	}
	for name, want := range tests {
		got, err := FormatOf(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := FormatOf("notes.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode(t *testing.T) {
	t.Run("JSON Object", func(t *testing.T) {
		blocks, err := Decode(strings.NewReader(jsonBlock), FormatJSON)
		require.NoError(t, err)
		require.Len(t, blocks, 1)

		b := blocks[0]
		assert.Equal(t, uint64(1), b.Header.Height)
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), b.Header.Time.UTC())
		require.Len(t, b.Transactions, 1)
		assert.Equal(t, "0xB1", b.Transactions[0].Block.Hash)
		assert.Equal(t, "10", b.Transactions[0].Events[0].Value("amount"))
	})

	t.Run("JSON Array", func(t *testing.T) {
		blocks, err := Decode(strings.NewReader("  ["+jsonBlock+","+jsonBlock+"]"), FormatJSON)
		require.NoError(t, err)
		assert.Len(t, blocks, 2)
	})

	t.Run("JSON Lines", func(t *testing.T) {
		line := strings.ReplaceAll(jsonBlock, "\n", "")
		blocks, err := Decode(strings.NewReader(line+"\n"+line+"\n"), FormatJSON)
		require.NoError(t, err)
		assert.Len(t, blocks, 2)
	})

	t.Run("Empty", func(t *testing.T) {
		blocks, err := Decode(strings.NewReader("\n "), FormatJSON)
		require.NoError(t, err)
		assert.Empty(t, blocks)
	})

	t.Run("YAML Documents", func(t *testing.T) {
		blocks, err := Decode(strings.NewReader(yamlBlocks), FormatYAML)
		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, "r1", blocks[0].Transactions[0].Events[0].Value("rule_name"))
		assert.Equal(t, "0xB1", blocks[0].Transactions[0].Block.Hash)
		assert.Equal(t, uint64(2), blocks[1].Header.Height)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"header":`), FormatJSON)
		assert.Error(t, err)

		_, err = Decode(strings.NewReader("x"), Format("toml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func collect(t *testing.T, src Source) ([]string, []uint64) {
	t.Helper()
	var (
		sources []string
		heights []uint64
	)
	err := src.Each(context.Background(), func(_ context.Context, source string, b chain.Block) error {
		sources = append(sources, source)
		heights = append(heights, b.Header.Height)
		return nil
	})
	require.NoError(t, err)
	return sources, heights
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(yamlBlocks), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(jsonBlock), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("skip"), 0o644))

	sources, heights := collect(t, FileSource{Path: dir})
	assert.Equal(t, []uint64{1, 1, 2}, heights)
	assert.Equal(t, filepath.Join(dir, "a.json"), sources[0])

	_, heights = collect(t, FileSource{Path: filepath.Join(dir, "b.yaml")})
	assert.Equal(t, []uint64{1, 2}, heights)

	err := FileSource{Path: filepath.Join(dir, "missing.json")}.Each(context.Background(),
		func(context.Context, string, chain.Block) error { return nil })
	assert.Error(t, err)
}

func TestFileSource_HandlerErrorStops(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(yamlBlocks), 0o644))

	calls := 0
	boom := errors.New("boom")
	err := FileSource{Path: dir}.Each(context.Background(), func(context.Context, string, chain.Block) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestObjectSource(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	opts := minio.ListObjectsOptions{Prefix: "blocks/", Recursive: true}
	m.On("ListObjects", ctx, "archive", opts).
		Return(listing("blocks/2.yaml", "blocks/", "blocks/1.json", "blocks/skip.bin"))
	m.On("GetObject", ctx, "archive", "blocks/1.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(jsonBlock)), nil)
	m.On("GetObject", ctx, "archive", "blocks/2.yaml", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(yamlBlocks)), nil)

	sources, heights := collect(t, ObjectSource{Client: m, Bucket: "archive", Prefix: "blocks/"})
	assert.Equal(t, []string{"blocks/1.json", "blocks/2.yaml", "blocks/2.yaml"}, sources)
	assert.Equal(t, []uint64{1, 1, 2}, heights)
	m.AssertExpectations(t)
}

func TestObjectSource_ListError(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(ch)
	m.On("ListObjects", ctx, "archive", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	err := ObjectSource{Client: m, Bucket: "archive"}.Each(ctx, func(context.Context, string, chain.Block) error { return nil })
	assert.ErrorContains(t, err, "access denied")
}

func TestArchiver(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)

	b := chain.Block{
		Header: chain.BlockHeader{Hash: "0xB7", Height: 7, Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Transactions: []chain.Transaction{{Hash: "0xT", Events: []chain.Event{
			chain.NewEvent("transfer", chain.Attribute{Key: "amount", Value: "5"}),
		}}},
	}
	name := ObjectName("blocks/", b.Header)
	assert.Equal(t, "blocks/00000000000000000007-0xB7.json", name)

	var stored []byte
	m.On("PutObject", ctx, "archive", name, mock.Anything, mock.AnythingOfType("int64"),
		minio.PutObjectOptions{ContentType: "application/json"}).
		Run(func(args mock.Arguments) {
			stored, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{Key: name}, nil)

	got, err := NewArchiver(m, "archive", "blocks/").Archive(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, name, got)

	// The archived object decodes back into the same block.
	blocks, err := Decode(strings.NewReader(string(stored)), FormatJSON)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "0xB7", blocks[0].Transactions[0].Block.Hash)
	assert.Equal(t, "5", blocks[0].Transactions[0].Events[0].Value("amount"))
}

func TestArchiver_PutError(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("PutObject", ctx, "archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("quota exceeded"))

	_, err := NewArchiver(m, "archive", "").Archive(ctx, chain.Block{Header: chain.BlockHeader{Hash: "0x1", Height: 1}})
	assert.ErrorContains(t, err, "quota exceeded")
}

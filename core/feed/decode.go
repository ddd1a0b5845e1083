package feed

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"specy-indexer/core/chain"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a block feed.
type Format string

const (
	// FormatJSON is a JSON array of blocks or a stream of JSON objects,
	// one per line for .jsonl files.
	FormatJSON Format = "json"
	// FormatYAML is a stream of YAML documents, one block each.
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a file extension without a decoder.
var ErrUnknownFormat = errors.New("unknown feed format")

// FormatOf derives the format from a file or object name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// Decode reads every block from r. Transactions are bound to their block header.
func Decode(r io.Reader, format Format) ([]chain.Block, error) {
	var (
		blocks []chain.Block
		err    error
	)
	switch format {
	case FormatJSON:
		blocks, err = decodeJSON(r)
	case FormatYAML:
		blocks, err = decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	for i := range blocks {
		blocks[i].Bind()
	}
	return blocks, nil
}

func decodeJSON(r io.Reader) ([]chain.Block, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var blocks []chain.Block
		if err := dec.Decode(&blocks); err != nil {
			return nil, fmt.Errorf("failed to decode block array: %w", err)
		}
		return blocks, nil
	}

	var blocks []chain.Block
	for {
		var b chain.Block
		err := dec.Decode(&b)
		if errors.Is(err, io.EOF) {
			return blocks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode block %d: %w", len(blocks), err)
		}
		blocks = append(blocks, b)
	}
}

func decodeYAML(r io.Reader) ([]chain.Block, error) {
	dec := yaml.NewDecoder(r)
	var blocks []chain.Block
	for {
		var b chain.Block
		err := dec.Decode(&b)
		if errors.Is(err, io.EOF) {
			return blocks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode block %d: %w", len(blocks), err)
		}
		blocks = append(blocks, b)
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return c, br.UnreadByte()
	}
}

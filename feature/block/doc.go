// Package block records every observed block header as a Block entity keyed by
// the block hash. Blocks are insert-only: delivering the same header again
// overwrites the stored row with identical values.
package block

package domain

import (
	"errors"
	"hash/crc32"
)

const (
	// MaxChunkSize is the absolute upper bound for a single chunk payload.
	// The configured chunk size must stay at or below this value.
	MaxChunkSize = 16 * 1024 * 1024
)

var (
	ErrChunkTooLarge   = errors.New("chunk exceeds maximum size")
	ErrInvalidChecksum = errors.New("invalid chunk checksum")
)

// ChunkID is the unique identifier for a chunk.
// It is derived from hash(file_id + "-" + sequence).
type ChunkID string

// Chunk represents one fixed-maximum-size slice of a file's bytes.
// Sequences for a published file are contiguous from 0; only the final
// chunk may be shorter than the configured chunk size.
type Chunk struct {
	ID   ChunkID
	Data []byte
	// Checksum is the CRC32 checksum of Data.
	Checksum uint32
}

// NewChunk creates a new Chunk and computes its checksum.
func NewChunk(id ChunkID, data []byte) (*Chunk, error) {
	if len(data) > MaxChunkSize {
		return nil, ErrChunkTooLarge
	}

	return &Chunk{
		ID:       id,
		Data:     data,
		Checksum: crc32.ChecksumIEEE(data),
	}, nil
}

// Validate checks if the chunk data matches its checksum.
func (c *Chunk) Validate() error {
	if len(c.Data) > MaxChunkSize {
		return ErrChunkTooLarge
	}

	if crc32.ChecksumIEEE(c.Data) != c.Checksum {
		return ErrInvalidChecksum
	}

	return nil
}

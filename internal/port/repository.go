package port

import (
	"context"
	"io"

	"github.com/docvault/docvault/internal/domain"
)

//go:generate mockgen -destination=../service/mocks/repository_mock.go -package=mocks -source=repository.go

// ChunkStore defines durable storage for chunk payloads.
type ChunkStore interface {
	// WriteChunk writes a chunk using a reader for streaming.
	// It is idempotent for retries of the same chunk ID.
	WriteChunk(ctx context.Context, id domain.ChunkID, parentID string, checksum uint32, reader io.Reader) error

	// ReadChunk returns the stored checksum and a stream over the payload.
	ReadChunk(ctx context.Context, id domain.ChunkID) (checksum uint32, reader io.ReadCloser, err error)

	// HasChunk checks if a chunk exists (optimized for existence check).
	HasChunk(ctx context.Context, id domain.ChunkID) (bool, error)

	// DeleteChunk deletes a single chunk.
	DeleteChunk(ctx context.Context, id domain.ChunkID) error

	// DeleteParent removes every chunk owned by the given file in one pass.
	// Used for upload-abort cleanup and record deletion.
	DeleteParent(ctx context.Context, parentID string) error

	// ListParents returns the file IDs that currently own at least one chunk.
	ListParents(ctx context.Context) ([]string, error)
}

// FileCatalog defines metadata storage with a stable creation-order index.
type FileCatalog interface {
	// Put publishes a record atomically. Called only after every chunk of
	// the record is durable.
	Put(ctx context.Context, record *domain.FileRecord) error

	// Get returns the record or ErrFileNotFound.
	Get(ctx context.Context, fileID string) (*domain.FileRecord, error)

	// List returns up to limit records in creation order starting at offset.
	// Offsets past the end yield an empty slice, not an error.
	List(ctx context.Context, offset, limit int64) ([]domain.FileRecord, error)

	// Count returns the total number of published records.
	Count(ctx context.Context) (int64, error)

	// Delete removes the record and its index entry atomically.
	Delete(ctx context.Context, fileID string) error
}

// TokenVerifier verifies a bearer credential and produces the subject identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

package port

import (
	"context"
	"errors"
	"io"

	"github.com/docvault/docvault/internal/domain"
)

var (
	// ErrUnauthenticated covers missing, malformed, expired, and revoked credentials.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrFileNotFound    = errors.New("file not found")
	ErrChunkNotFound   = errors.New("chunk not found")
	// ErrUploadFailed is surfaced after the abort/cleanup path ran.
	ErrUploadFailed = errors.New("upload failed")
	// ErrCorruptedFile means a chunk expected by a published record is missing
	// or failed its checksum at read time.
	ErrCorruptedFile = errors.New("corrupted file")
	// ErrConflict means a delete could not remove the full chunk set; the
	// record is retained.
	ErrConflict = errors.New("conflict")
)

//go:generate mockgen -destination=../service/mocks/service_mock.go -package=mocks -source=service.go

// FileListing is one page of catalog records plus the paging totals.
type FileListing struct {
	Records    []domain.FileRecord `json:"records"`
	TotalCount int64               `json:"total_count"`
	TotalPages int64               `json:"total_pages"`
}

// DocumentService defines the business logic for document operations.
type DocumentService interface {
	// UploadFile consumes the inbound stream and returns the published record.
	UploadFile(ctx context.Context, fileName, contentType string, owner domain.Identity, reader io.Reader) (*domain.FileRecord, error)

	// OpenDownload resolves the record and opens a lazy forward-only byte
	// stream over its chunks. The caller owns closing the reader.
	OpenDownload(ctx context.Context, fileID string) (*domain.FileRecord, io.ReadCloser, error)

	// GetFileRecord retrieves metadata for a file.
	GetFileRecord(ctx context.Context, fileID string) (*domain.FileRecord, error)

	// ListFiles returns one page of records in creation order. page is
	// 1-based; out-of-range pages yield an empty listing.
	ListFiles(ctx context.Context, page, pageSize int) (*FileListing, error)

	// DeleteFile removes the chunk set and then the record.
	DeleteFile(ctx context.Context, fileID string) error
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
)

//go:generate mockgen -destination=mocks/dependencies_mock.go -package=mocks -source=upload_service.go

// IDGenerator defines ID generation capability.
type IDGenerator interface {
	Next() (int64, error)
}

// uploadService orchestrates chunking, durable chunk writes, and atomic
// record publication.
type uploadService struct {
	core *DocumentServiceImpl
}

// uploadStats tracks aggregate stats while carving the inbound stream.
type uploadStats struct {
	totalSize  int64
	chunkCount int
}

// newUploadService creates the upload use-case service.
func newUploadService(core *DocumentServiceImpl) *uploadService {
	return &uploadService{core: core}
}

// uploadFile performs the full upload workflow from stream to published record.
// On any failure the already-written chunk set is removed before returning;
// a partially uploaded file is never visible to readers.
func (s *uploadService) uploadFile(ctx context.Context, fileName, contentType string, owner domain.Identity, reader io.Reader) (*domain.FileRecord, error) {
	fileID, err := s.nextFileID()
	if err != nil {
		return nil, err
	}

	s.core.markInFlight(fileID)
	defer s.core.unmarkInFlight(fileID)

	logger.Infow("Upload started", "file_id", fileID, "file_name", fileName, "owner_id", owner.SubjectID)

	stats, err := s.writeChunks(ctx, fileID, reader)
	if err != nil {
		logger.Errorw("Upload failed", "file_id", fileID, "error", err.Error())
		s.cleanupUpload(fileID)
		return nil, fmt.Errorf("%w: %w", port.ErrUploadFailed, err)
	}

	record := &domain.FileRecord{
		ID:          fileID,
		FileName:    fileName,
		Extension:   filepath.Ext(fileName),
		ContentType: contentType,
		SizeBytes:   stats.totalSize,
		ChunkCount:  stats.chunkCount,
		OwnerID:     owner.SubjectID,
		CreatedAt:   time.Now().UTC(),
	}

	// Single atomic step: the record flips from invisible to published.
	if err := s.core.catalog.Put(ctx, record); err != nil {
		logger.Errorw("Record publication failed", "file_id", fileID, "error", err.Error())
		s.cleanupUpload(fileID)
		return nil, fmt.Errorf("%w: %w", port.ErrUploadFailed, err)
	}

	logger.Infow("Upload completed", "file_id", fileID, "chunks", stats.chunkCount, "size_bytes", stats.totalSize)
	return record, nil
}

// nextFileID allocates a unique file ID from the configured generator.
func (s *uploadService) nextFileID() (string, error) {
	id, err := s.core.idGen.Next()
	if err != nil {
		return "", fmt.Errorf("failed to generate file id: %w", err)
	}
	return fmt.Sprintf("%d", id), nil
}

// writeChunks carves the inbound stream into fixed-size chunks and writes
// them strictly in sequence order. Chunk N is durable before chunk N+1 is
// read, so a published record always enumerates a gap-free sequence.
func (s *uploadService) writeChunks(ctx context.Context, fileID string, reader io.Reader) (uploadStats, error) {
	buffer := s.core.pool.Get().(*[]byte)
	defer s.core.pool.Put(buffer)

	var stats uploadStats
	maxSize := s.core.maxFileSize()

	for {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("upload canceled: %w", err)
		}

		readN, readErr := io.ReadFull(reader, *buffer)
		if readN > 0 {
			stats.totalSize += int64(readN)
			if maxSize > 0 && stats.totalSize > maxSize {
				return stats, fmt.Errorf("file exceeds maximum size %d", maxSize)
			}

			chunk, err := domain.NewChunk(buildChunkID(fileID, stats.chunkCount), (*buffer)[:readN])
			if err != nil {
				return stats, err
			}
			if err := s.core.chunks.WriteChunk(ctx, chunk.ID, fileID, chunk.Checksum, bytes.NewReader(chunk.Data)); err != nil {
				return stats, fmt.Errorf("failed to write chunk %d: %w", stats.chunkCount, err)
			}
			stats.chunkCount++
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return stats, nil
		}
		if readErr != nil {
			return stats, fmt.Errorf("read error: %w", readErr)
		}
	}
}

// cleanupUpload removes chunks already written for a failed upload. It runs
// synchronously so the caller never returns while partial state remains, and
// uses a fresh context because the request context may already be canceled.
func (s *uploadService) cleanupUpload(fileID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if err := s.core.chunks.DeleteParent(ctx, fileID); err != nil {
		// Cleanup failure is logged, never masks the upload error; the
		// janitor retries on its next sweep.
		logger.Warnw("Upload cleanup failed", "file_id", fileID, "error", err.Error())
		return
	}
	logger.Infow("Upload cleanup finished", "file_id", fileID)
}

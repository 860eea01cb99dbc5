package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
)

// downloadService reconstructs files as lazy ordered chunk streams.
type downloadService struct {
	core *DocumentServiceImpl
}

// newDownloadService creates the download use-case service.
func newDownloadService(core *DocumentServiceImpl) *downloadService {
	return &downloadService{core: core}
}

// openDownload resolves the record and opens a forward-only pass over its
// chunks. No chunk is touched before the record resolves, and chunks are
// fetched one at a time as the returned reader is drained, so a slow
// consumer only ever holds one chunk in memory.
func (s *downloadService) openDownload(ctx context.Context, fileID string) (*domain.FileRecord, io.ReadCloser, error) {
	record, err := s.core.catalog.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	logger.Infow("Download opened", "file_id", fileID, "chunks", record.ChunkCount)

	return record, &chunkStream{
		ctx:        ctx,
		chunks:     s.core.chunks,
		fileID:     record.ID,
		chunkCount: record.ChunkCount,
	}, nil
}

// chunkStream is a single forward pass over sequences 0..chunkCount-1.
// It is not restartable; a fresh openDownload starts a new pass. Separate
// passes over the same file never share state.
type chunkStream struct {
	ctx        context.Context
	chunks     port.ChunkStore
	fileID     string
	chunkCount int
	next       int
	current    *bytes.Reader
	closed     bool
}

func (cs *chunkStream) Read(p []byte) (int, error) {
	for {
		if cs.closed {
			return 0, errors.New("stream closed")
		}
		if cs.current != nil && cs.current.Len() > 0 {
			return cs.current.Read(p)
		}
		if cs.next >= cs.chunkCount {
			return 0, io.EOF
		}
		if err := cs.ctx.Err(); err != nil {
			return 0, err
		}

		data, err := cs.fetchChunk(cs.next)
		if err != nil {
			return 0, err
		}
		cs.current = bytes.NewReader(data)
		cs.next++
	}
}

// fetchChunk reads one chunk fully and verifies its checksum. A chunk that
// a published record expects but the store cannot produce means corruption.
func (cs *chunkStream) fetchChunk(sequence int) ([]byte, error) {
	checksum, reader, err := cs.chunks.ReadChunk(cs.ctx, buildChunkID(cs.fileID, sequence))
	if err != nil {
		if errors.Is(err, port.ErrChunkNotFound) {
			logger.Errorw("Chunk missing for published file", "file_id", cs.fileID, "sequence", sequence)
			return nil, fmt.Errorf("%w: chunk %d missing", port.ErrCorruptedFile, sequence)
		}
		return nil, fmt.Errorf("failed to read chunk %d: %w", sequence, err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk %d: %w", sequence, err)
	}

	if crc32.ChecksumIEEE(data) != checksum {
		logger.Errorw("Chunk checksum mismatch", "file_id", cs.fileID, "sequence", sequence)
		return nil, fmt.Errorf("%w: chunk %d checksum mismatch", port.ErrCorruptedFile, sequence)
	}

	return data, nil
}

// Close releases the pass. Subsequent Reads fail; no further chunks are pulled.
func (cs *chunkStream) Close() error {
	cs.closed = true
	cs.current = nil
	return nil
}

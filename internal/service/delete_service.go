package service

import (
	"context"
	"fmt"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/docvault/docvault/internal/port"
)

// deleteService removes a file's chunk set and record together.
type deleteService struct {
	core *DocumentServiceImpl
}

// newDeleteService creates the delete use-case service.
func newDeleteService(core *DocumentServiceImpl) *deleteService {
	return &deleteService{core: core}
}

// deleteFile removes every chunk first and only then the catalog record.
// If the chunk set cannot be fully removed the record is retained so the
// file stays consistent for readers.
func (s *deleteService) deleteFile(ctx context.Context, fileID string) error {
	if _, err := s.core.catalog.Get(ctx, fileID); err != nil {
		return err
	}

	if err := s.core.chunks.DeleteParent(ctx, fileID); err != nil {
		logger.Warnw("Chunk set removal failed, record retained", "file_id", fileID, "error", err.Error())
		return fmt.Errorf("%w: chunk set not fully removed: %w", port.ErrConflict, err)
	}

	if err := s.core.catalog.Delete(ctx, fileID); err != nil {
		// Chunks are gone but the record lingers; the next delete attempt
		// resolves it since DeleteParent is a no-op for empty sets.
		return fmt.Errorf("failed to delete record %s: %w", fileID, err)
	}

	logger.Infow("File deleted", "file_id", fileID)
	return nil
}

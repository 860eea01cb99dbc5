package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/docvault/docvault/internal/port"
	"github.com/docvault/docvault/pkg/resilience"
)

// janitorService removes orphaned chunk sets left behind by crashed uploads.
type janitorService struct {
	core *DocumentServiceImpl
}

// newJanitorService creates the orphan-sweep use-case service.
func newJanitorService(core *DocumentServiceImpl) *janitorService {
	return &janitorService{core: core}
}

// compacter is implemented by chunk stores that can reclaim disk space.
type compacter interface {
	Compact() error
}

// sweep scans chunk-set owners, deletes sets whose file ID has no published
// record and no in-flight upload, then triggers compaction if anything was
// removed.
func (s *janitorService) sweep(ctx context.Context) (int, error) {
	parents, err := s.core.chunks.ListParents(ctx)
	if err != nil {
		return 0, err
	}
	logger.Infow("Orphan sweep started", "chunk_set_owners", len(parents))

	pool := resilience.NewWorkerPool(4, 8)
	var deleted int32

	for _, fileID := range parents {
		if s.core.isInFlight(fileID) {
			continue
		}

		fileID := fileID
		if err := pool.Submit(ctx, func() {
			if s.evaluateParent(ctx, fileID) {
				atomic.AddInt32(&deleted, 1)
			}
		}); err != nil {
			break
		}
	}

	pool.Close()
	pool.Wait()

	count := int(atomic.LoadInt32(&deleted))
	if count > 0 {
		s.maybeTriggerCompaction()
	}

	logger.Infow("Orphan sweep finished", "deleted_chunk_sets", count)
	return count, nil
}

// evaluateParent deletes one chunk set if its owner is confirmed orphaned.
func (s *janitorService) evaluateParent(ctx context.Context, fileID string) bool {
	_, err := s.core.catalog.Get(ctx, fileID)
	if err == nil {
		return false
	}
	if !errors.Is(err, port.ErrFileNotFound) {
		// Catalog lookup failed; deleting here could orphan a live file.
		logger.Warnw("Skipping orphan check due to catalog error", "file_id", fileID, "error", err.Error())
		return false
	}

	logger.Infow("Deleting orphaned chunk set", "file_id", fileID)
	if err := s.core.chunks.DeleteParent(ctx, fileID); err != nil {
		logger.Warnw("Orphan delete failed", "file_id", fileID, "error", err.Error())
		return false
	}
	return true
}

// maybeTriggerCompaction starts async compaction when the store supports it.
func (s *janitorService) maybeTriggerCompaction() {
	c, ok := s.core.chunks.(compacter)
	if !ok {
		return
	}
	go func() {
		if err := c.Compact(); err != nil {
			logger.Warnw("Janitor compaction failed", "error", err.Error())
		}
	}()
}

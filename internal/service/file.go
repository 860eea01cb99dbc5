package service

import (
	"context"
	"io"
	"sync"

	"github.com/docvault/docvault/internal/config"
	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
)

// DocumentServiceImpl is the facade that wires use-case services for
// document operations.
type DocumentServiceImpl struct {
	cfg     *config.Config
	chunks  port.ChunkStore
	catalog port.FileCatalog
	idGen   IDGenerator
	pool    *sync.Pool

	inflightMu sync.RWMutex
	inflight   map[string]struct{}

	uploadUseCase   *uploadService
	downloadUseCase *downloadService
	catalogUseCase  *catalogService
	deleteUseCase   *deleteService
	janitorUseCase  *janitorService
}

// Ensure DocumentServiceImpl implements port.DocumentService.
var _ port.DocumentService = (*DocumentServiceImpl)(nil)

// NewDocumentService builds the document service facade and all use-case services.
func NewDocumentService(cfg *config.Config, chunks port.ChunkStore, catalog port.FileCatalog, idGen IDGenerator) *DocumentServiceImpl {
	svc := &DocumentServiceImpl{
		cfg:      cfg,
		chunks:   chunks,
		catalog:  catalog,
		idGen:    idGen,
		inflight: make(map[string]struct{}),
		pool: &sync.Pool{
			New: func() interface{} {
				// One reusable chunk buffer per concurrent upload.
				b := make([]byte, cfg.App.ChunkSize)
				return &b
			},
		},
	}

	svc.uploadUseCase = newUploadService(svc)
	svc.downloadUseCase = newDownloadService(svc)
	svc.catalogUseCase = newCatalogService(svc)
	svc.deleteUseCase = newDeleteService(svc)
	svc.janitorUseCase = newJanitorService(svc)

	return svc
}

// UploadFile delegates upload orchestration to the upload use-case service.
func (s *DocumentServiceImpl) UploadFile(ctx context.Context, fileName, contentType string, owner domain.Identity, reader io.Reader) (*domain.FileRecord, error) {
	return s.uploadUseCase.uploadFile(ctx, fileName, contentType, owner, reader)
}

// OpenDownload delegates lazy stream construction to the download use-case service.
func (s *DocumentServiceImpl) OpenDownload(ctx context.Context, fileID string) (*domain.FileRecord, io.ReadCloser, error) {
	return s.downloadUseCase.openDownload(ctx, fileID)
}

// GetFileRecord delegates metadata read to the catalog use-case service.
func (s *DocumentServiceImpl) GetFileRecord(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	return s.catalogUseCase.getFileRecord(ctx, fileID)
}

// ListFiles delegates pagination to the catalog use-case service.
func (s *DocumentServiceImpl) ListFiles(ctx context.Context, page, pageSize int) (*port.FileListing, error) {
	return s.catalogUseCase.listFiles(ctx, page, pageSize)
}

// DeleteFile delegates removal to the delete use-case service.
func (s *DocumentServiceImpl) DeleteFile(ctx context.Context, fileID string) error {
	return s.deleteUseCase.deleteFile(ctx, fileID)
}

// SweepOrphans removes chunk sets with no published record. Called
// periodically by the process entry point.
func (s *DocumentServiceImpl) SweepOrphans(ctx context.Context) (int, error) {
	return s.janitorUseCase.sweep(ctx)
}

// markInFlight registers an upload so the janitor leaves its chunks alone
// until the record is published or the upload is cleaned up.
func (s *DocumentServiceImpl) markInFlight(fileID string) {
	s.inflightMu.Lock()
	s.inflight[fileID] = struct{}{}
	s.inflightMu.Unlock()
}

func (s *DocumentServiceImpl) unmarkInFlight(fileID string) {
	s.inflightMu.Lock()
	delete(s.inflight, fileID)
	s.inflightMu.Unlock()
}

func (s *DocumentServiceImpl) isInFlight(fileID string) bool {
	s.inflightMu.RLock()
	defer s.inflightMu.RUnlock()
	_, ok := s.inflight[fileID]
	return ok
}

// chunkSize returns the configured chunk size with a safe default.
func (s *DocumentServiceImpl) chunkSize() int64 {
	if s.cfg.App.ChunkSize > 0 && s.cfg.App.ChunkSize <= domain.MaxChunkSize {
		return s.cfg.App.ChunkSize
	}
	return 512 * 1024
}

// maxFileSize returns the upload size limit; zero means unlimited.
func (s *DocumentServiceImpl) maxFileSize() int64 {
	return s.cfg.App.MaxFileSize
}

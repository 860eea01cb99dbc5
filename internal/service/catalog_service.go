package service

import (
	"context"

	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
)

// catalogService handles metadata reads and pagination.
type catalogService struct {
	core *DocumentServiceImpl
}

// newCatalogService creates the catalog use-case service.
func newCatalogService(core *DocumentServiceImpl) *catalogService {
	return &catalogService{core: core}
}

// getFileRecord retrieves metadata for a single file.
func (s *catalogService) getFileRecord(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	return s.core.catalog.Get(ctx, fileID)
}

// listFiles returns one page of records in creation order plus totals.
// page is 1-based; skip = (page-1)*pageSize. Pages past the end yield an
// empty listing with the totals unchanged.
func (s *catalogService) listFiles(ctx context.Context, page, pageSize int) (*port.FileListing, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.core.cfg.App.DefaultPageSize
		if pageSize < 1 {
			pageSize = 10
		}
	}
	if max := s.core.cfg.App.MaxPageSize; max > 0 && pageSize > max {
		pageSize = max
	}

	total, err := s.core.catalog.Count(ctx)
	if err != nil {
		return nil, err
	}

	offset := int64(page-1) * int64(pageSize)
	records := []domain.FileRecord{}
	if offset < total {
		records, err = s.core.catalog.List(ctx, offset, int64(pageSize))
		if err != nil {
			return nil, err
		}
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &port.FileListing{
		Records:    records,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

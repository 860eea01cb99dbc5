package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
	"github.com/docvault/docvault/pkg/resilience"
)

const (
	recordKeyPrefix = "docvault:file:"
	indexKey        = "docvault:files"
)

// RedisCatalog implements port.FileCatalog on Redis. Records live as JSON
// values keyed by file ID; creation order is kept in a ZSET scored by
// CreatedAt so listing is deterministic across calls.
//
// Put and Delete run record and index mutation inside one transactional
// pipeline: readers either see a fully published record or nothing.
type RedisCatalog struct {
	client  *redis.Client
	breaker *resilience.CircuitBreaker
}

// Ensure RedisCatalog implements port.FileCatalog.
var _ port.FileCatalog = (*RedisCatalog)(nil)

// NewRedisCatalog creates the catalog adapter over an existing client.
func NewRedisCatalog(client *redis.Client) *RedisCatalog {
	return &RedisCatalog{
		client: client,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "redis-catalog",
			FailureThreshold: 5,
			OpenTimeout:      5 * time.Second,
		}),
	}
}

func recordKey(fileID string) string {
	return recordKeyPrefix + fileID
}

// Put publishes a record atomically.
func (c *RedisCatalog) Put(ctx context.Context, record *domain.FileRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return c.breaker.Execute(ctx, func(execCtx context.Context) error {
		_, err := c.client.TxPipelined(execCtx, func(pipe redis.Pipeliner) error {
			pipe.Set(execCtx, recordKey(record.ID), data, 0)
			pipe.ZAdd(execCtx, indexKey, redis.Z{
				Score:  float64(record.CreatedAt.UnixNano()),
				Member: record.ID,
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to publish record %s: %w", record.ID, err)
		}
		return nil
	})
}

// Get returns the record or port.ErrFileNotFound.
func (c *RedisCatalog) Get(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	var record domain.FileRecord

	err := c.breaker.Execute(ctx, func(execCtx context.Context) error {
		data, err := c.client.Get(execCtx, recordKey(fileID)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return port.ErrFileNotFound
			}
			return fmt.Errorf("failed to read record %s: %w", fileID, err)
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns up to limit records in creation order starting at offset.
func (c *RedisCatalog) List(ctx context.Context, offset, limit int64) ([]domain.FileRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	var records []domain.FileRecord
	err := c.breaker.Execute(ctx, func(execCtx context.Context) error {
		ids, err := c.client.ZRange(execCtx, indexKey, offset, offset+limit-1).Result()
		if err != nil {
			return fmt.Errorf("failed to read index: %w", err)
		}
		if len(ids) == 0 {
			records = []domain.FileRecord{}
			return nil
		}

		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = recordKey(id)
		}

		values, err := c.client.MGet(execCtx, keys...).Result()
		if err != nil {
			return fmt.Errorf("failed to read records: %w", err)
		}

		records = make([]domain.FileRecord, 0, len(values))
		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				// Index entry whose record vanished mid-delete; skip it.
				continue
			}
			var record domain.FileRecord
			if err := json.Unmarshal([]byte(raw), &record); err != nil {
				return fmt.Errorf("failed to decode record: %w", err)
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the total number of published records.
func (c *RedisCatalog) Count(ctx context.Context) (int64, error) {
	var total int64
	err := c.breaker.Execute(ctx, func(execCtx context.Context) error {
		n, err := c.client.ZCard(execCtx, indexKey).Result()
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}
		total = n
		return nil
	})
	return total, err
}

// Delete removes the record and its index entry atomically.
func (c *RedisCatalog) Delete(ctx context.Context, fileID string) error {
	return c.breaker.Execute(ctx, func(execCtx context.Context) error {
		_, err := c.client.TxPipelined(execCtx, func(pipe redis.Pipeliner) error {
			pipe.Del(execCtx, recordKey(fileID))
			pipe.ZRem(execCtx, indexKey, fileID)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to delete record %s: %w", fileID, err)
		}
		return nil
	})
}

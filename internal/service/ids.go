package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/docvault/docvault/internal/domain"
)

// buildChunkID deterministically maps file ID and sequence to a chunk key.
func buildChunkID(fileID string, sequence int) domain.ChunkID {
	raw := fmt.Sprintf("%s-%d", fileID, sequence)
	h := sha256.Sum256([]byte(raw))
	return domain.ChunkID(hex.EncodeToString(h[:]))
}

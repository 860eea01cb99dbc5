package domain

import "time"

// FileRecord stores the published metadata of an uploaded document.
// A record is only visible to readers once every chunk it references
// has been durably written.
type FileRecord struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	Extension   string    `json:"extension"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	ChunkCount  int       `json:"chunk_count"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"testing"

	"github.com/docvault/docvault/internal/config"
	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	store, err := NewStore(config.BlobConfig{DataDir: dir})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store
}

func writeTestChunk(t *testing.T, s *Store, id domain.ChunkID, parent string, data []byte) uint32 {
	t.Helper()
	checksum := crc32.ChecksumIEEE(data)
	if err := s.WriteChunk(context.Background(), id, parent, checksum, bytes.NewReader(data)); err != nil {
		t.Fatalf("WriteChunk(%s) error = %v", id, err)
	}
	return checksum
}

func readTestChunk(t *testing.T, s *Store, id domain.ChunkID) (uint32, []byte) {
	t.Helper()
	checksum, reader, err := s.ReadChunk(context.Background(), id)
	if err != nil {
		t.Fatalf("ReadChunk(%s) error = %v", id, err)
	}
	defer func() { _ = reader.Close() }()
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll(%s) error = %v", id, err)
	}
	return checksum, data
}

func TestStore_WriteReadChunk(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer func() { _ = store.Close() }()

	payload := []byte("hello chunk store")
	wantChecksum := writeTestChunk(t, store, "chunk-1", "file-1", payload)

	gotChecksum, gotData := readTestChunk(t, store, "chunk-1")
	if gotChecksum != wantChecksum {
		t.Errorf("checksum = %d, want %d", gotChecksum, wantChecksum)
	}
	if !bytes.Equal(gotData, payload) {
		t.Errorf("data = %q, want %q", gotData, payload)
	}

	exists, err := store.HasChunk(context.Background(), "chunk-1")
	if err != nil || !exists {
		t.Errorf("HasChunk() = (%v, %v), want (true, nil)", exists, err)
	}
}

func TestStore_ReadMissingChunk(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer func() { _ = store.Close() }()

	_, _, err := store.ReadChunk(context.Background(), "nope")
	if !errors.Is(err, port.ErrChunkNotFound) {
		t.Fatalf("ReadChunk() error = %v, want ErrChunkNotFound", err)
	}
}

func TestStore_WriteChunkIdempotent(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer func() { _ = store.Close() }()

	first := []byte("first write wins")
	writeTestChunk(t, store, "chunk-1", "file-1", first)

	// A retry with the same ID must succeed, drain its stream, and leave the
	// original payload intact.
	retry := bytes.NewReader([]byte("retry payload"))
	if err := store.WriteChunk(context.Background(), "chunk-1", "file-1", 0, retry); err != nil {
		t.Fatalf("retry WriteChunk() error = %v", err)
	}
	if retry.Len() != 0 {
		t.Errorf("retry stream not drained, %d bytes left", retry.Len())
	}

	_, gotData := readTestChunk(t, store, "chunk-1")
	if !bytes.Equal(gotData, first) {
		t.Errorf("data after retry = %q, want %q", gotData, first)
	}
}

func TestStore_ConcurrentReadersGetIndependentStreams(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer func() { _ = store.Close() }()

	payload := []byte("0123456789abcdef")
	writeTestChunk(t, store, "chunk-1", "file-1", payload)

	_, r1, err := store.ReadChunk(context.Background(), "chunk-1")
	if err != nil {
		t.Fatalf("ReadChunk() error = %v", err)
	}
	defer func() { _ = r1.Close() }()
	_, r2, err := store.ReadChunk(context.Background(), "chunk-1")
	if err != nil {
		t.Fatalf("ReadChunk() error = %v", err)
	}
	defer func() { _ = r2.Close() }()

	half := make([]byte, 8)
	if _, err := io.ReadFull(r1, half); err != nil {
		t.Fatalf("ReadFull(r1) error = %v", err)
	}

	// Advancing r1 must not move r2's cursor.
	full, err := io.ReadAll(r2)
	if err != nil {
		t.Fatalf("ReadAll(r2) error = %v", err)
	}
	if !bytes.Equal(full, payload) {
		t.Errorf("r2 data = %q, want %q", full, payload)
	}
}

func TestStore_DeleteParent(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer func() { _ = store.Close() }()

	for i := 0; i < 3; i++ {
		writeTestChunk(t, store, domain.ChunkID(fmt.Sprintf("a-%d", i)), "file-a", []byte("data"))
	}
	writeTestChunk(t, store, "b-0", "file-b", []byte("data"))

	if err := store.DeleteParent(context.Background(), "file-a"); err != nil {
		t.Fatalf("DeleteParent() error = %v", err)
	}

	if got := store.ChunkCount("file-a"); got != 0 {
		t.Errorf("file-a chunks = %d, want 0", got)
	}
	if got := store.ChunkCount("file-b"); got != 1 {
		t.Errorf("file-b chunks = %d, want 1", got)
	}

	parents, err := store.ListParents(context.Background())
	if err != nil {
		t.Fatalf("ListParents() error = %v", err)
	}
	if len(parents) != 1 || parents[0] != "file-b" {
		t.Errorf("ListParents() = %v, want [file-b]", parents)
	}

	// Deleting an unknown parent is a no-op.
	if err := store.DeleteParent(context.Background(), "file-a"); err != nil {
		t.Fatalf("repeat DeleteParent() error = %v", err)
	}
}

func TestStore_ReplayRebuildsIndexes(t *testing.T) {
	dir := t.TempDir()

	store := newTestStore(t, dir)
	payload := []byte("survives restart")
	wantChecksum := writeTestChunk(t, store, "chunk-1", "file-1", payload)
	writeTestChunk(t, store, "chunk-2", "file-2", []byte("other"))
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := newTestStore(t, dir)
	defer func() { _ = reopened.Close() }()

	gotChecksum, gotData := readTestChunk(t, reopened, "chunk-1")
	if gotChecksum != wantChecksum {
		t.Errorf("checksum after replay = %d, want %d", gotChecksum, wantChecksum)
	}
	if !bytes.Equal(gotData, payload) {
		t.Errorf("data after replay = %q, want %q", gotData, payload)
	}

	// Parent ownership must survive the restart as well.
	parents, err := reopened.ListParents(context.Background())
	if err != nil {
		t.Fatalf("ListParents() error = %v", err)
	}
	if len(parents) != 2 {
		t.Errorf("ListParents() after replay = %v, want 2 owners", parents)
	}
	if got := reopened.ChunkCount("file-1"); got != 1 {
		t.Errorf("file-1 chunks after replay = %d, want 1", got)
	}
}

// failingReader yields a few bytes and then errors mid-stream.
type failingReader struct{ sent bool }

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		n := copy(p, "partial")
		return n, nil
	}
	return 0, errors.New("stream interrupted")
}

func TestStore_FailedWriteKeepsSegmentParseable(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)

	before := []byte("written before the failure")
	beforeChecksum := writeTestChunk(t, store, "before", "file-1", before)

	// A failed write must leave no partial entry behind: later entries land
	// directly after the last complete one, or replay would misparse the
	// segment and drop them.
	err := store.WriteChunk(context.Background(), "broken", "file-1", 0, &failingReader{})
	if err == nil {
		t.Fatal("WriteChunk() with failing stream succeeded, want error")
	}

	after := []byte("written after the failure")
	afterChecksum := writeTestChunk(t, store, "after", "file-2", after)

	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := newTestStore(t, dir)
	defer func() { _ = reopened.Close() }()

	gotChecksum, gotData := readTestChunk(t, reopened, "before")
	if gotChecksum != beforeChecksum || !bytes.Equal(gotData, before) {
		t.Errorf("chunk before failure corrupted after replay")
	}
	gotChecksum, gotData = readTestChunk(t, reopened, "after")
	if gotChecksum != afterChecksum || !bytes.Equal(gotData, after) {
		t.Errorf("chunk after failure lost or corrupted after replay")
	}

	if exists, _ := reopened.HasChunk(context.Background(), "broken"); exists {
		t.Error("failed write resurfaced after replay")
	}
}

func TestStore_CompactReclaimsDeletedChunks(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	defer func() { _ = store.Close() }()

	keep := []byte("kept payload")
	wantChecksum := writeTestChunk(t, store, "keep", "file-keep", keep)
	writeTestChunk(t, store, "drop", "file-drop", []byte("dropped payload"))

	if err := store.DeleteParent(context.Background(), "file-drop"); err != nil {
		t.Fatalf("DeleteParent() error = %v", err)
	}
	if err := store.Compact(); err != nil {
		t.Fatalf("Compact() error = %v", err)
	}

	gotChecksum, gotData := readTestChunk(t, store, "keep")
	if gotChecksum != wantChecksum {
		t.Errorf("checksum after compaction = %d, want %d", gotChecksum, wantChecksum)
	}
	if !bytes.Equal(gotData, keep) {
		t.Errorf("data after compaction = %q, want %q", gotData, keep)
	}

	if _, _, err := store.ReadChunk(context.Background(), "drop"); !errors.Is(err, port.ErrChunkNotFound) {
		t.Fatalf("ReadChunk(drop) error = %v, want ErrChunkNotFound", err)
	}

	// Writes keep landing after compaction rotated segments.
	writeTestChunk(t, store, "post", "file-post", []byte("post compaction"))
	_, gotData = readTestChunk(t, store, "post")
	if !bytes.Equal(gotData, []byte("post compaction")) {
		t.Errorf("post-compaction data = %q", gotData)
	}
}

func TestStore_MerkleRootTracksContent(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer func() { _ = store.Close() }()

	empty := store.MerkleRoot()
	writeTestChunk(t, store, "chunk-1", "file-1", []byte("data"))
	afterWrite := store.MerkleRoot()
	if empty == afterWrite {
		t.Error("merkle root unchanged after write")
	}

	if err := store.DeleteChunk(context.Background(), "chunk-1"); err != nil {
		t.Fatalf("DeleteChunk() error = %v", err)
	}
	if got := store.MerkleRoot(); got == afterWrite {
		t.Error("merkle root unchanged after delete")
	}
}

func TestStore_RejectsInvalidIDs(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer func() { _ = store.Close() }()

	if err := store.WriteChunk(context.Background(), "", "file-1", 0, bytes.NewReader([]byte("x"))); err == nil {
		t.Fatal("WriteChunk() with empty id succeeded, want error")
	}

	longID := domain.ChunkID(bytes.Repeat([]byte("a"), maxIDLen+1))
	if err := store.WriteChunk(context.Background(), longID, "file-1", 0, bytes.NewReader([]byte("x"))); err == nil {
		t.Fatal("WriteChunk() with oversized id succeeded, want error")
	}
}

package blobstore

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/spaolacci/murmur3"

	"github.com/docvault/docvault/internal/config"
	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
	"github.com/docvault/docvault/pkg/merkle"
)

// indexEntry stores the location of a chunk in a specific segment file.
type indexEntry struct {
	SegmentID uint64
	Offset    int64
	Size      int64
	ParentID  string
	Checksum  uint32
}

// Store implements port.ChunkStore using segmented append-only logs with an
// in-memory index rebuilt from the segments on startup. Each entry carries
// the owning file ID so the per-file chunk set is always recoverable.
//
// On-disk entry format:
//
//	ID_Len (4) | ID (N) | Parent_Len (4) | Parent (P) | Data_Len (4) | Data (M) | Checksum (4)
type Store struct {
	indexMu             sync.RWMutex
	fileMu              sync.Mutex
	compactionMu        sync.Mutex
	dirPath             string
	activeFile          *os.File
	activeFileID        uint64
	maxSegmentSize      int64
	index               map[domain.ChunkID]indexEntry
	parents             map[string]map[domain.ChunkID]struct{}
	fsync               bool
	merkleTree          *merkle.MerkleTree
	compactionThreshold int
}

const (
	// DefaultMaxSegmentSize is 64MB
	DefaultMaxSegmentSize = 64 * 1024 * 1024
	SegmentPrefix         = "segment_"
	SegmentSuffix         = ".log"

	maxIDLen     = 1024
	maxParentLen = 1024
	merkleLeaves = 1024
)

// Ensure Store implements port.ChunkStore.
var _ port.ChunkStore = (*Store)(nil)

// NewStore initializes the chunk storage engine and replays existing
// segments to rebuild the chunk and parent indexes.
func NewStore(cfg config.BlobConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	s := &Store{
		dirPath:             filepath.Clean(cfg.DataDir),
		index:               make(map[domain.ChunkID]indexEntry),
		parents:             make(map[string]map[domain.ChunkID]struct{}),
		maxSegmentSize:      DefaultMaxSegmentSize,
		fsync:               cfg.FSync,
		compactionThreshold: cfg.CompactionThreshold,
	}

	tree, err := merkle.NewMerkleTree(merkleLeaves)
	if err != nil {
		return nil, fmt.Errorf("failed to init merkle tree: %w", err)
	}
	s.merkleTree = tree

	if err := s.replaySegments(); err != nil {
		return nil, fmt.Errorf("failed to replay segments: %w", err)
	}

	return s, nil
}

func (s *Store) getSegmentPath(id uint64) string {
	return filepath.Join(s.dirPath, fmt.Sprintf("%s%05d%s", SegmentPrefix, id, SegmentSuffix))
}

func (s *Store) openActiveFile() error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	return s.openActiveFileLocked()
}

func (s *Store) openActiveFileLocked() error {
	if s.activeFileID == 0 {
		s.activeFileID = 1
	}
	filePath := s.getSegmentPath(s.activeFileID)

	// G304: filePath is constructed from internal data dir and ID
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE, 0600) // #nosec G304
	if err != nil {
		return err
	}
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		_ = file.Close()
		return err
	}
	s.activeFile = file
	return nil
}

// replaySegments reads all segment files and rebuilds the indexes.
func (s *Store) replaySegments() error {
	if s.activeFile != nil {
		_ = s.activeFile.Close()
		s.activeFile = nil
	}

	matches, err := filepath.Glob(filepath.Join(s.dirPath, SegmentPrefix+"*"+SegmentSuffix))
	if err != nil {
		return err
	}

	var segmentIDs []uint64
	for _, m := range matches {
		var id uint64
		if _, err := fmt.Sscanf(filepath.Base(m), SegmentPrefix+"%d"+SegmentSuffix, &id); err == nil {
			segmentIDs = append(segmentIDs, id)
		}
	}
	sort.Slice(segmentIDs, func(i, j int) bool { return segmentIDs[i] < segmentIDs[j] })

	s.indexMu.Lock()
	s.index = make(map[domain.ChunkID]indexEntry)
	s.parents = make(map[string]map[domain.ChunkID]struct{})
	s.indexMu.Unlock()

	if len(segmentIDs) == 0 {
		s.activeFileID = 1
	} else {
		for _, id := range segmentIDs {
			if err := s.replaySegment(id, s.getSegmentPath(id)); err != nil {
				return err
			}
			s.activeFileID = id
		}
	}

	return s.openActiveFile()
}

func (s *Store) replaySegment(id uint64, path string) error {
	file, err := os.OpenFile(path, os.O_RDWR, 0600) // #nosec G304
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	reader := bufio.NewReader(file)
	offset := int64(0)
	truncated := false

	readLen := func(buf []byte) (uint32, bool, error) {
		if _, err := io.ReadFull(reader, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return 0, true, nil
			}
			return 0, false, err
		}
		return binary.BigEndian.Uint32(buf), false, nil
	}

	lenBuf := make([]byte, 4)
	for {
		idLen, eof, err := readLen(lenBuf)
		if err != nil {
			return fmt.Errorf("failed to read id len: %w", err)
		}
		if eof {
			break
		}
		if idLen == 0 || idLen > maxIDLen {
			truncated = true
			break
		}

		idBuf := make([]byte, idLen)
		if _, err := io.ReadFull(reader, idBuf); err != nil {
			truncated = true
			break
		}
		chunkID := domain.ChunkID(idBuf)

		parentLen, eof, err := readLen(lenBuf)
		if err != nil {
			return fmt.Errorf("failed to read parent len: %w", err)
		}
		if eof || parentLen > maxParentLen {
			truncated = true
			break
		}

		parentBuf := make([]byte, parentLen)
		if _, err := io.ReadFull(reader, parentBuf); err != nil {
			truncated = true
			break
		}
		parentID := string(parentBuf)

		dataLen, eof, err := readLen(lenBuf)
		if err != nil {
			return fmt.Errorf("failed to read data len: %w", err)
		}
		if eof || int64(dataLen) > s.maxSegmentSize {
			truncated = true
			break
		}

		if _, err := io.CopyN(io.Discard, reader, int64(dataLen)); err != nil {
			truncated = true
			break
		}

		checksum, eof, err := readLen(lenBuf)
		if err != nil {
			return fmt.Errorf("failed to read checksum: %w", err)
		}
		if eof {
			truncated = true
			break
		}

		totalEntrySize := int64(4) + int64(idLen) + int64(4) + int64(parentLen) + int64(4) + int64(dataLen) + int64(4)

		s.indexMu.Lock()
		s.index[chunkID] = indexEntry{
			SegmentID: id,
			Offset:    offset,
			Size:      totalEntrySize,
			ParentID:  parentID,
			Checksum:  checksum,
		}
		s.addParentLocked(parentID, chunkID)
		s.indexMu.Unlock()

		s.updateMerkleBucket(chunkID)

		offset += totalEntrySize
	}

	if truncated {
		if err := file.Truncate(offset); err != nil {
			return fmt.Errorf("failed to truncate partial segment %d: %w", id, err)
		}
		logger.Warnw("Truncated partial segment tail during replay", "segment_id", id, "valid_bytes", offset)
	}

	return nil
}

func (s *Store) addParentLocked(parentID string, id domain.ChunkID) {
	if parentID == "" {
		return
	}
	set, ok := s.parents[parentID]
	if !ok {
		set = make(map[domain.ChunkID]struct{})
		s.parents[parentID] = set
	}
	set[id] = struct{}{}
}

func (s *Store) removeParentLocked(parentID string, id domain.ChunkID) {
	if parentID == "" {
		return
	}
	if set, ok := s.parents[parentID]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(s.parents, parentID)
		}
	}
}

// updateMerkleBucket recomputes the merkle leaf covering the given chunk ID.
func (s *Store) updateMerkleBucket(id domain.ChunkID) {
	hash := murmur3.Sum64([]byte(id))
	numLeaves := uint64(s.merkleTree.NumLeaves()) // #nosec G115
	if numLeaves == 0 {
		return
	}
	bucketID := int(hash % numLeaves) // #nosec G115

	type bucketItem struct {
		id       domain.ChunkID
		checksum uint32
	}

	s.indexMu.RLock()
	var items []bucketItem
	for chunkID, entry := range s.index {
		if murmur3.Sum64([]byte(chunkID))%numLeaves == uint64(bucketID) { // #nosec G115
			items = append(items, bucketItem{id: chunkID, checksum: entry.Checksum})
		}
	}
	s.indexMu.RUnlock()

	// Sort for deterministic leaf hashing.
	sort.Slice(items, func(i, j int) bool { return items[i].id < items[j].id })

	h := sha256.New()
	sumBuf := make([]byte, 4)
	for _, item := range items {
		h.Write([]byte(item.id))
		binary.BigEndian.PutUint32(sumBuf, item.checksum)
		h.Write(sumBuf)
	}

	_ = s.merkleTree.UpdateBucket(bucketID, hex.EncodeToString(h.Sum(nil)))
}

// WriteChunk appends a chunk to the active segment from a stream.
// Retries of an already-written chunk ID drain the reader and succeed.
func (s *Store) WriteChunk(ctx context.Context, id domain.ChunkID, parentID string, checksum uint32, reader io.Reader) error {
	s.indexMu.RLock()
	_, exists := s.index[id]
	s.indexMu.RUnlock()
	if exists {
		// Drain incoming stream so the upstream pipeline can advance.
		_, _ = io.Copy(io.Discard, reader)
		return nil
	}

	idBytes := []byte(id)
	parentBytes := []byte(parentID)
	if len(idBytes) == 0 || len(idBytes) > maxIDLen {
		return fmt.Errorf("invalid chunk id length %d", len(idBytes))
	}
	if len(parentBytes) > maxParentLen {
		return fmt.Errorf("parent id too long")
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.activeFile == nil {
		return fmt.Errorf("storage closed")
	}

	offset, err := s.activeFile.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	header := make([]byte, 4+len(idBytes)+4+len(parentBytes)+4)
	binary.BigEndian.PutUint32(header[0:4], uint32(len(idBytes)))     // #nosec G115
	copy(header[4:], idBytes)
	binary.BigEndian.PutUint32(header[4+len(idBytes):], uint32(len(parentBytes))) // #nosec G115
	copy(header[4+len(idBytes)+4:], parentBytes)
	// Data_Len placeholder occupies the final 4 header bytes.

	// Any failure past this point rewinds to the entry start. A partial
	// entry left mid-segment would make replay misparse everything after
	// it and truncate later chunks away.
	abortEntry := func() {
		_ = s.activeFile.Truncate(offset)
		_, _ = s.activeFile.Seek(offset, io.SeekStart)
	}

	if _, err := s.activeFile.Write(header); err != nil {
		abortEntry()
		return err
	}

	dataStart := offset + int64(len(header))
	written, err := io.Copy(s.activeFile, reader)
	if err != nil {
		abortEntry()
		return fmt.Errorf("failed to stream data to disk: %w", err)
	}
	if written > int64(domain.MaxChunkSize) {
		abortEntry()
		return domain.ErrChunkTooLarge
	}

	checksumBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(checksumBuf, checksum)
	if _, err := s.activeFile.Write(checksumBuf); err != nil {
		abortEntry()
		return err
	}

	// Fill the Data_Len placeholder now that the size is known.
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(written)) // #nosec G115
	if _, err := s.activeFile.WriteAt(lenBuf, dataStart-4); err != nil {
		abortEntry()
		return err
	}
	if _, err := s.activeFile.Seek(0, io.SeekEnd); err != nil {
		abortEntry()
		return err
	}

	if s.fsync {
		if err := s.activeFile.Sync(); err != nil {
			abortEntry()
			return fmt.Errorf("fsync failed: %w", err)
		}
	}

	totalEntrySize := int64(len(header)) + written + 4

	s.indexMu.Lock()
	s.index[id] = indexEntry{
		SegmentID: s.activeFileID,
		Offset:    offset,
		Size:      totalEntrySize,
		ParentID:  parentID,
		Checksum:  checksum,
	}
	s.addParentLocked(parentID, id)
	s.indexMu.Unlock()

	s.updateMerkleBucket(id)
	s.maybeRotateLocked()

	return nil
}

// maybeRotateLocked rotates the active segment once it outgrows the limit.
// Caller must hold fileMu.
func (s *Store) maybeRotateLocked() {
	info, err := s.activeFile.Stat()
	if err != nil || info.Size() <= s.maxSegmentSize {
		return
	}

	_ = s.activeFile.Close()
	s.activeFileID++
	file, err := os.OpenFile(s.getSegmentPath(s.activeFileID), os.O_RDWR|os.O_CREATE, 0600) // #nosec G304
	if err != nil {
		logger.Errorw("Failed to open next segment", "segment_id", s.activeFileID, "error", err.Error())
		return
	}
	s.activeFile = file

	if s.compactionThreshold > 0 && int(s.activeFileID) > s.compactionThreshold { // #nosec G115
		go func() {
			if err := s.Compact(); err != nil {
				logger.Warnw("Background compaction failed", "error", err.Error())
			}
		}()
	}
}

// ReadChunk returns the stored checksum and a dedicated stream over the
// chunk payload. Each reader gets its own file handle, so concurrent
// downloads of the same file never share a cursor.
func (s *Store) ReadChunk(ctx context.Context, id domain.ChunkID) (uint32, io.ReadCloser, error) {
	s.indexMu.RLock()
	entry, exists := s.index[id]
	s.indexMu.RUnlock()

	if !exists {
		return 0, nil, port.ErrChunkNotFound
	}

	f, err := os.Open(filepath.Clean(s.getSegmentPath(entry.SegmentID))) // #nosec G304
	if err != nil {
		return 0, nil, err
	}

	dataStart, dataLen, err := s.locateData(f, entry)
	if err != nil {
		_ = f.Close()
		return 0, nil, err
	}

	if _, err := f.Seek(dataStart, io.SeekStart); err != nil {
		_ = f.Close()
		return 0, nil, err
	}

	return entry.Checksum, &limitedReadCloser{
		R: io.LimitReader(f, dataLen),
		C: f,
	}, nil
}

// locateData parses the entry header and returns the payload offset and length.
func (s *Store) locateData(f *os.File, entry indexEntry) (int64, int64, error) {
	headerBuf := make([]byte, 4+maxIDLen+4+maxParentLen+4)
	n, err := f.ReadAt(headerBuf, entry.Offset)
	if err != nil && err != io.EOF {
		return 0, 0, err
	}
	headerBuf = headerBuf[:n]

	if len(headerBuf) < 4 {
		return 0, 0, fmt.Errorf("entry header too short")
	}
	idLen := binary.BigEndian.Uint32(headerBuf[0:4])

	parentLenOff := 4 + idLen
	if int(parentLenOff+4) > len(headerBuf) {
		return 0, 0, fmt.Errorf("entry header too short for parent len")
	}
	parentLen := binary.BigEndian.Uint32(headerBuf[parentLenOff : parentLenOff+4])

	dataLenOff := parentLenOff + 4 + parentLen
	if int(dataLenOff+4) > len(headerBuf) {
		return 0, 0, fmt.Errorf("entry header too short for data len")
	}
	dataLen := binary.BigEndian.Uint32(headerBuf[dataLenOff : dataLenOff+4])

	dataStart := entry.Offset + int64(dataLenOff) + 4
	return dataStart, int64(dataLen), nil
}

func (s *Store) readChunkByEntry(entry indexEntry) (uint32, []byte, error) {
	f, err := os.Open(filepath.Clean(s.getSegmentPath(entry.SegmentID))) // #nosec G304
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = f.Close() }()

	dataStart, dataLen, err := s.locateData(f, entry)
	if err != nil {
		return 0, nil, err
	}
	if dataLen > s.maxSegmentSize {
		return 0, nil, fmt.Errorf("invalid data len")
	}

	data := make([]byte, dataLen)
	if _, err := f.ReadAt(data, dataStart); err != nil {
		return 0, nil, err
	}
	return entry.Checksum, data, nil
}

type limitedReadCloser struct {
	R io.Reader
	C io.Closer
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) { return l.R.Read(p) }
func (l *limitedReadCloser) Close() error                     { return l.C.Close() }

// HasChunk checks if the chunk exists in the index.
func (s *Store) HasChunk(ctx context.Context, id domain.ChunkID) (bool, error) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	_, exists := s.index[id]
	return exists, nil
}

// DeleteChunk removes the chunk from the indexes.
// Note: space is not reclaimed until compaction.
func (s *Store) DeleteChunk(ctx context.Context, id domain.ChunkID) error {
	s.indexMu.Lock()
	deleted := false
	if entry, exists := s.index[id]; exists {
		delete(s.index, id)
		s.removeParentLocked(entry.ParentID, id)
		deleted = true
	}
	s.indexMu.Unlock()

	if deleted {
		s.updateMerkleBucket(id)
	}
	return nil
}

// DeleteParent removes every chunk owned by the given file ID.
func (s *Store) DeleteParent(ctx context.Context, parentID string) error {
	s.indexMu.Lock()
	set, ok := s.parents[parentID]
	if !ok {
		s.indexMu.Unlock()
		return nil
	}
	ids := make([]domain.ChunkID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
		delete(s.index, id)
	}
	delete(s.parents, parentID)
	s.indexMu.Unlock()

	for _, id := range ids {
		s.updateMerkleBucket(id)
	}
	return nil
}

// ListParents returns the file IDs that currently own at least one chunk.
func (s *Store) ListParents(ctx context.Context) ([]string, error) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	out := make([]string, 0, len(s.parents))
	for parentID := range s.parents {
		out = append(out, parentID)
	}
	sort.Strings(out)
	return out, nil
}

// ChunkCount returns the number of chunks currently indexed for a file.
func (s *Store) ChunkCount(parentID string) int {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	return len(s.parents[parentID])
}

// MerkleRoot returns the current integrity summary over the chunk set.
func (s *Store) MerkleRoot() string {
	return s.merkleTree.GetRoot()
}

// Close closes the active segment handle.
func (s *Store) Close() error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if s.activeFile != nil {
		err := s.activeFile.Close()
		s.activeFile = nil
		return err
	}
	return nil
}

// Compact rewrites live chunks into fresh segments and drops segments that
// only contain deleted data.
func (s *Store) Compact() error {
	s.compactionMu.Lock()
	defer s.compactionMu.Unlock()

	// Rotate the active segment so new writes land outside the snapshot.
	s.fileMu.Lock()
	if s.activeFile != nil {
		_ = s.activeFile.Sync()
		_ = s.activeFile.Close()
		s.activeFile = nil
	}
	oldActiveID := s.activeFileID
	s.activeFileID++
	if err := s.openActiveFileLocked(); err != nil {
		s.fileMu.Unlock()
		return fmt.Errorf("failed to open new active segment during compaction: %w", err)
	}
	s.fileMu.Unlock()

	logger.Infow("Compaction started", "max_segment_id", oldActiveID)

	compactPath := filepath.Join(s.dirPath, "compact")
	if err := os.MkdirAll(compactPath, 0750); err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(compactPath) }()

	// Snapshot only segments that existed before rotation.
	s.indexMu.RLock()
	snapshot := make(map[domain.ChunkID]indexEntry)
	for id, entry := range s.index {
		if entry.SegmentID <= oldActiveID {
			snapshot[id] = entry
		}
	}
	s.indexMu.RUnlock()

	keys := make([]domain.ChunkID, 0, len(snapshot))
	for id := range snapshot {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	newIndex := make(map[domain.ChunkID]indexEntry, len(snapshot))

	curID := uint64(1)
	curPath := filepath.Clean(filepath.Join(compactPath, fmt.Sprintf("%s%05d%s", SegmentPrefix, curID, SegmentSuffix)))
	f, err := os.OpenFile(curPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return err
	}

	offset := int64(0)
	for _, id := range keys {
		entry := snapshot[id]
		checksum, data, err := s.readChunkByEntry(entry)
		if err != nil {
			continue
		}

		idBytes := []byte(id)
		parentBytes := []byte(entry.ParentID)
		header := make([]byte, 4+len(idBytes)+4+len(parentBytes)+4)
		binary.BigEndian.PutUint32(header[0:4], uint32(len(idBytes)))                 // #nosec G115
		copy(header[4:], idBytes)
		binary.BigEndian.PutUint32(header[4+len(idBytes):], uint32(len(parentBytes))) // #nosec G115
		copy(header[4+len(idBytes)+4:], parentBytes)
		binary.BigEndian.PutUint32(header[len(header)-4:], uint32(len(data))) // #nosec G115

		if _, err := f.Write(header); err != nil {
			_ = f.Close()
			return err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return err
		}

		checksumBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(checksumBuf, checksum)
		if _, err := f.Write(checksumBuf); err != nil {
			_ = f.Close()
			return err
		}

		totalSize := int64(len(header)+len(data)) + 4
		newIndex[id] = indexEntry{
			SegmentID: curID,
			Offset:    offset,
			Size:      totalSize,
			ParentID:  entry.ParentID,
			Checksum:  checksum,
		}
		offset += totalSize

		if offset > s.maxSegmentSize {
			if err := f.Close(); err != nil {
				return err
			}
			curID++
			curPath = filepath.Clean(filepath.Join(compactPath, fmt.Sprintf("%s%05d%s", SegmentPrefix, curID, SegmentSuffix)))
			f, err = os.OpenFile(curPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
			if err != nil {
				return err
			}
			offset = 0
		}
	}

	if err := f.Close(); err != nil {
		return err
	}

	s.fileMu.Lock()
	s.indexMu.Lock()

	// Move compacted segments into permanent IDs above the active segment.
	matches, _ := filepath.Glob(filepath.Join(compactPath, SegmentPrefix+"*"+SegmentSuffix))
	sort.Strings(matches)

	nextSegmentID := s.activeFileID + 1
	for _, m := range matches {
		var tempID uint64
		if _, err := fmt.Sscanf(filepath.Base(m), SegmentPrefix+"%d"+SegmentSuffix, &tempID); err != nil {
			continue
		}
		destID := nextSegmentID
		nextSegmentID++
		if err := os.Rename(m, s.getSegmentPath(destID)); err != nil {
			s.indexMu.Unlock()
			s.fileMu.Unlock()
			return err
		}

		for k, v := range newIndex {
			if v.SegmentID == tempID {
				v.SegmentID = destID
				newIndex[k] = v
			}
		}
	}

	// Preserve correctness under concurrent writes/deletes during compaction.
	for id := range newIndex {
		if _, exists := s.index[id]; !exists {
			delete(newIndex, id)
		}
	}
	for id, liveEntry := range s.index {
		if _, exists := newIndex[id]; !exists || liveEntry.SegmentID > oldActiveID {
			newIndex[id] = liveEntry
		}
	}
	s.index = newIndex

	referenced := make(map[uint64]struct{}, len(s.index)+1)
	for _, entry := range s.index {
		referenced[entry.SegmentID] = struct{}{}
	}
	referenced[s.activeFileID] = struct{}{}

	s.indexMu.Unlock()
	s.fileMu.Unlock()

	// Delete unreferenced segments after publishing the new index.
	segmentFiles, _ := filepath.Glob(filepath.Join(s.dirPath, SegmentPrefix+"*"+SegmentSuffix))
	for _, segPath := range segmentFiles {
		var segID uint64
		if _, err := fmt.Sscanf(filepath.Base(segPath), SegmentPrefix+"%d"+SegmentSuffix, &segID); err != nil {
			continue
		}
		if _, keep := referenced[segID]; keep {
			continue
		}
		_ = os.Remove(segPath)
	}

	logger.Infow("Compaction finished", "compacted_segments_upto", oldActiveID, "live_keys", len(newIndex))
	return nil
}

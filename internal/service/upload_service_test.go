package service

import (
	"bytes"
	"context"
	"errors"
	"hash/crc32"
	"io"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/docvault/docvault/internal/config"
	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
	"github.com/docvault/docvault/internal/service/mocks"
)

func newTestService(t *testing.T, chunkSize int64) (*DocumentServiceImpl, *mocks.MockChunkStore, *mocks.MockFileCatalog, *mocks.MockIDGenerator) {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := config.DefaultConfig()
	cfg.App.ChunkSize = chunkSize

	chunks := mocks.NewMockChunkStore(ctrl)
	catalog := mocks.NewMockFileCatalog(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	return NewDocumentService(cfg, chunks, catalog, idGen), chunks, catalog, idGen
}

func TestUploadService_UploadFile(t *testing.T) {
	owner := domain.Identity{SubjectID: "user-1"}

	t.Run("WritesChunksInSequenceAndPublishes", func(t *testing.T) {
		svc, chunks, catalog, idGen := newTestService(t, 4)

		data := "0123456789"
		idGen.EXPECT().Next().Return(int64(42), nil)

		// Chunk N must be written before chunk N+1 is read from the stream.
		var prev *gomock.Call
		for seq, want := range []string{"0123", "4567", "89"} {
			want := want
			call := chunks.EXPECT().
				WriteChunk(gomock.Any(), buildChunkID("42", seq), "42", crc32.ChecksumIEEE([]byte(want)), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.ChunkID, _ string, _ uint32, r io.Reader) error {
					got, err := io.ReadAll(r)
					if err != nil {
						return err
					}
					if string(got) != want {
						t.Errorf("chunk payload = %q, want %q", got, want)
					}
					return nil
				})
			if prev != nil {
				call.After(prev)
			}
			prev = call
		}
		catalog.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).After(prev)

		record, err := svc.UploadFile(context.Background(), "report.pdf", "application/pdf", owner, strings.NewReader(data))
		if err != nil {
			t.Fatalf("UploadFile() error = %v", err)
		}
		if record.ID != "42" {
			t.Errorf("record.ID = %q, want %q", record.ID, "42")
		}
		if record.SizeBytes != int64(len(data)) {
			t.Errorf("record.SizeBytes = %d, want %d", record.SizeBytes, len(data))
		}
		if record.ChunkCount != 3 {
			t.Errorf("record.ChunkCount = %d, want 3", record.ChunkCount)
		}
		if record.Extension != ".pdf" {
			t.Errorf("record.Extension = %q, want %q", record.Extension, ".pdf")
		}
		if record.OwnerID != owner.SubjectID {
			t.Errorf("record.OwnerID = %q, want %q", record.OwnerID, owner.SubjectID)
		}
	})

	t.Run("ChunkWriteFailureCleansUpAndNeverPublishes", func(t *testing.T) {
		svc, chunks, catalog, idGen := newTestService(t, 4)

		idGen.EXPECT().Next().Return(int64(7), nil)
		chunks.EXPECT().
			WriteChunk(gomock.Any(), buildChunkID("7", 0), "7", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.ChunkID, _ string, _ uint32, r io.Reader) error {
				_, _ = io.Copy(io.Discard, r)
				return nil
			})
		chunks.EXPECT().
			WriteChunk(gomock.Any(), buildChunkID("7", 1), "7", gomock.Any(), gomock.Any()).
			Return(errors.New("disk full"))
		// Abort path removes already-written chunks and skips publication.
		chunks.EXPECT().DeleteParent(gomock.Any(), "7").Return(nil)
		catalog.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.UploadFile(context.Background(), "big.bin", "application/octet-stream", owner, strings.NewReader("01234567"))
		if !errors.Is(err, port.ErrUploadFailed) {
			t.Fatalf("UploadFile() error = %v, want ErrUploadFailed", err)
		}
	})

	t.Run("PublishFailureCleansUpChunks", func(t *testing.T) {
		svc, chunks, catalog, idGen := newTestService(t, 4)

		idGen.EXPECT().Next().Return(int64(9), nil)
		chunks.EXPECT().
			WriteChunk(gomock.Any(), gomock.Any(), "9", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.ChunkID, _ string, _ uint32, r io.Reader) error {
				_, _ = io.Copy(io.Discard, r)
				return nil
			})
		catalog.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("catalog down"))
		chunks.EXPECT().DeleteParent(gomock.Any(), "9").Return(nil)

		_, err := svc.UploadFile(context.Background(), "a.txt", "text/plain", owner, strings.NewReader("abc"))
		if !errors.Is(err, port.ErrUploadFailed) {
			t.Fatalf("UploadFile() error = %v, want ErrUploadFailed", err)
		}
	})

	t.Run("RejectsOversizedUpload", func(t *testing.T) {
		svc, chunks, catalog, idGen := newTestService(t, 4)
		svc.cfg.App.MaxFileSize = 6

		idGen.EXPECT().Next().Return(int64(11), nil)
		chunks.EXPECT().
			WriteChunk(gomock.Any(), gomock.Any(), "11", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.ChunkID, _ string, _ uint32, r io.Reader) error {
				_, _ = io.Copy(io.Discard, r)
				return nil
			})
		chunks.EXPECT().DeleteParent(gomock.Any(), "11").Return(nil)
		catalog.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.UploadFile(context.Background(), "huge.bin", "application/octet-stream", owner, strings.NewReader("0123456789"))
		if !errors.Is(err, port.ErrUploadFailed) {
			t.Fatalf("UploadFile() error = %v, want ErrUploadFailed", err)
		}
	})

	t.Run("EmptyFilePublishesZeroChunks", func(t *testing.T) {
		svc, chunks, catalog, idGen := newTestService(t, 4)

		idGen.EXPECT().Next().Return(int64(3), nil)
		chunks.EXPECT().WriteChunk(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		catalog.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

		record, err := svc.UploadFile(context.Background(), "empty.txt", "text/plain", owner, bytes.NewReader(nil))
		if err != nil {
			t.Fatalf("UploadFile() error = %v", err)
		}
		if record.ChunkCount != 0 || record.SizeBytes != 0 {
			t.Errorf("record = {chunks: %d, size: %d}, want empty", record.ChunkCount, record.SizeBytes)
		}
	})
}

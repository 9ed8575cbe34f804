package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-access-portal/internal/logger"
)

func newTestDocumentStorage(t *testing.T) (DocumentStorage, string) {
	t.Helper()
	root := t.TempDir()
	return NewDocumentFileStorage(root, logger.Nop()), root
}

func writeDoc(t *testing.T, root, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test document: %v", err)
	}
}

func TestListDocuments_SortedRegularFilesOnly(t *testing.T) {
	storage, root := newTestDocumentStorage(t)
	ctx := context.Background()

	writeDoc(t, root, "report.pdf", "pdf-bytes")
	writeDoc(t, root, "agenda.txt", "agenda")
	writeDoc(t, root, ".hidden", "secret")
	if err := os.Mkdir(filepath.Join(root, "subdir"), 0700); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	docs, err := storage.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d: %+v", len(docs), docs)
	}
	if docs[0].Name != "agenda.txt" || docs[1].Name != "report.pdf" {
		t.Errorf("expected sorted [agenda.txt report.pdf], got %+v", docs)
	}
	if docs[0].Size != int64(len("agenda")) {
		t.Errorf("expected size %d, got %d", len("agenda"), docs[0].Size)
	}
}

func TestOpenDocument_Success(t *testing.T) {
	storage, root := newTestDocumentStorage(t)
	ctx := context.Background()

	writeDoc(t, root, "report.pdf", "pdf-bytes")

	reader, info, err := storage.OpenDocument(ctx, "report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read document: %v", err)
	}
	if string(content) != "pdf-bytes" {
		t.Errorf("expected pdf-bytes, got %q", content)
	}
	if info.Name != "report.pdf" || info.Size != int64(len("pdf-bytes")) {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestOpenDocument_Missing(t *testing.T) {
	storage, _ := newTestDocumentStorage(t)
	ctx := context.Background()

	_, _, err := storage.OpenDocument(ctx, "no-such-file.txt")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestOpenDocument_RejectsUnsafeNames(t *testing.T) {
	storage, root := newTestDocumentStorage(t)
	ctx := context.Background()

	// a real file outside the listing namespace must stay unreachable
	writeDoc(t, root, ".hidden", "secret")

	names := []string{
		"",
		".",
		"..",
		"../etc/passwd",
		"sub/dir.txt",
		`sub\dir.txt`,
		".hidden",
	}
	for _, name := range names {
		if _, _, err := storage.OpenDocument(ctx, name); !errors.Is(err, ErrDocumentNotFound) {
			t.Errorf("name %q: expected ErrDocumentNotFound, got %v", name, err)
		}
	}
}

func TestOpenDocument_DirectoryIsNotFound(t *testing.T) {
	storage, root := newTestDocumentStorage(t)
	ctx := context.Background()

	if err := os.Mkdir(filepath.Join(root, "subdir"), 0700); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	_, _, err := storage.OpenDocument(ctx, "subdir")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

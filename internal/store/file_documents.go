package store

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
)

// documentFileStorage is the filesystem implementation of [DocumentStorage].
// It serves files from a single flat directory; subdirectories are not
// exposed and any name containing a path separator or traversal sequence is
// rejected as not found, so the listing and the URL namespace stay in sync.
type documentFileStorage struct {
	root   string
	logger *logger.Logger
}

// NewDocumentFileStorage constructs a [DocumentStorage] serving files from
// the given root directory.
func NewDocumentFileStorage(root string, logger *logger.Logger) DocumentStorage {
	logger.Debug().Str("root", root).Msg("creating document file storage")
	return &documentFileStorage{
		root:   root,
		logger: logger,
	}
}

// ListDocuments enumerates regular files in the documents root, sorted by
// name. Hidden files and subdirectories are skipped.
func (s *documentFileStorage) ListDocuments(ctx context.Context) ([]models.DocumentInfo, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(s.root)
	if err != nil {
		log.Err(err).Str("func", "*documentFileStorage.ListDocuments").Msg("error reading documents directory")
		return nil, err
	}

	docs := make([]models.DocumentInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			log.Err(infoErr).Str("func", "*documentFileStorage.ListDocuments").Str("name", entry.Name()).Msg("error reading file info")
			return nil, infoErr
		}
		docs = append(docs, models.DocumentInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })

	return docs, nil
}

// OpenDocument opens the named document for reading. Any name that fails
// sanitisation or does not resolve to a regular file inside the root yields
// [ErrDocumentNotFound]; the caller cannot distinguish a missing file from a
// forbidden path.
func (s *documentFileStorage) OpenDocument(ctx context.Context, name string) (io.ReadSeekCloser, models.DocumentInfo, error) {
	log := logger.FromContext(ctx)

	if !validDocumentName(name) {
		return nil, models.DocumentInfo{}, ErrDocumentNotFound
	}

	path := filepath.Join(s.root, name)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.DocumentInfo{}, ErrDocumentNotFound
		}
		log.Err(err).Str("func", "*documentFileStorage.OpenDocument").Str("name", name).Msg("error opening document")
		return nil, models.DocumentInfo{}, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		log.Err(err).Str("func", "*documentFileStorage.OpenDocument").Str("name", name).Msg("error reading file info")
		return nil, models.DocumentInfo{}, err
	}
	if !info.Mode().IsRegular() {
		file.Close()
		return nil, models.DocumentInfo{}, ErrDocumentNotFound
	}

	return file, models.DocumentInfo{Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// validDocumentName accepts only plain file names: no separators, no
// traversal, no hidden files.
func validDocumentName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return fs.ValidPath(name)
}

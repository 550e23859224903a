package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/repositories"
	"notebox/pkg/logger"
)

const (
	tempFilePrefix = ".notebox-tmp-"
	filePerm       = 0o600
	dirPerm        = 0o750

	errReadDocument  = "failed to read document file"
	errWriteDocument = "failed to write document file"
)

// FileStore хранит документ в одном JSON-файле.
type FileStore struct {
	path string
}

// NewFileStore создает файловое хранилище. Каталог создается при первой записи.
func NewFileStore(path string) repositories.DocumentStore {
	return &FileStore{path: path}
}

// Load читает документ; отсутствующий файл означает пустой документ.
func (s *FileStore) Load(ctx context.Context) (*entities.Document, error) {
	log := logger.Log(ctx).With(zap.String("store", "file"), zap.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug(ctx, "document file does not exist yet")
			return entities.NewDocument(), nil
		}
		log.Error(ctx, errReadDocument, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errReadDocument, err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		log.Error(ctx, errReadDocument, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errReadDocument, err)
	}
	return doc, nil
}

// Save атомарно перезаписывает файл документа.
func (s *FileStore) Save(ctx context.Context, doc *entities.Document) error {
	log := logger.Log(ctx).With(zap.String("store", "file"), zap.String("path", s.path))

	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		log.Error(ctx, errWriteDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", errWriteDocument, err)
	}

	if err := writeFileAtomic(s.path, data, filePerm); err != nil {
		log.Error(ctx, errWriteDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", errWriteDocument, err)
	}
	return nil
}

// writeFileAtomic пишет данные во временный файл рядом с целевым и переименовывает его.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) //nolint:errcheck

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}

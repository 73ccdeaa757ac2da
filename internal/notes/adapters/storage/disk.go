// Package storage содержит дисковую реализацию хранилища вложений.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"notedeck/internal/notes/ports/storage"
	"notedeck/pkg/logger"
)

// uploadsDir - подкаталог корня хранилища для загруженных файлов.
const uploadsDir = "uploads"

// Константы для сообщений об ошибках.
const (
	errCreateDir  = "failed to create uploads directory"
	errWriteBlob  = "failed to write file contents"
	errRenameBlob = "failed to finalize file contents"
	errReadBlob   = "failed to read file contents"
	errRemoveBlob = "failed to remove file contents"
)

// DiskStore хранит содержимое вложений на локальном диске.
// Имена файлов получают временной префикс, что исключает коллизии
// между загрузками с одинаковыми исходными именами.
type DiskStore struct {
	root string
}

// NewDiskStore создает хранилище с указанным корневым каталогом.
func NewDiskStore(root string) storage.BlobStore {
	return &DiskStore{root: root}
}

// Save записывает содержимое под уникальным именем и возвращает
// путь относительно корня хранилища. Запись идет во временный файл
// с последующим переименованием, частично записанный файл не виден.
func (s *DiskStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "DiskStore.Save"))

	dir := filepath.Join(s.root, uploadsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error(ctx, errCreateDir, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCreateDir, err)
	}

	unique := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(name))
	relPath := filepath.Join(uploadsDir, unique)
	fullPath := filepath.Join(s.root, relPath)

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		log.Error(ctx, errWriteBlob, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errWriteBlob, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		log.Error(ctx, errWriteBlob, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errWriteBlob, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		log.Error(ctx, errWriteBlob, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errWriteBlob, err)
	}

	if err := os.Rename(tmpName, fullPath); err != nil {
		_ = os.Remove(tmpName)
		log.Error(ctx, errRenameBlob, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errRenameBlob, err)
	}

	log.Debug(ctx, "file contents written", zap.String("path", relPath), zap.Int("size", len(data)))
	return relPath, nil
}

// Open читает содержимое по относительному пути.
// Отсутствующий файл различим через errors.Is(err, fs.ErrNotExist).
func (s *DiskStore) Open(ctx context.Context, path string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("method", "DiskStore.Open"))

	data, err := os.ReadFile(filepath.Join(s.root, filepath.Clean(path)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug(ctx, "file contents missing", zap.String("path", path))
		} else {
			log.Error(ctx, errReadBlob, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errReadBlob, err)
	}
	return data, nil
}

// Remove удаляет содержимое; уже отсутствующий файл не считается ошибкой.
func (s *DiskStore) Remove(ctx context.Context, path string) error {
	log := logger.Log(ctx).With(zap.String("method", "DiskStore.Remove"))

	err := os.Remove(filepath.Join(s.root, filepath.Clean(path)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error(ctx, errRemoveBlob, zap.Error(err))
		return fmt.Errorf("%s: %w", errRemoveBlob, err)
	}
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(ctx, "file contents already absent", zap.String("path", path))
	}
	return nil
}

// sanitizeName убирает разделители пути и заменяет пробельные серии на дефис.
func sanitizeName(name string) string {
	base := filepath.Base(name)
	fields := strings.Fields(base)
	if len(fields) == 0 {
		return "file"
	}
	return strings.Join(fields, "-")
}

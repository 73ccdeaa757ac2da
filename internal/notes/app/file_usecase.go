package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"notedeck/internal/notes/domain/entities"
	"notedeck/internal/notes/ports/repositories"
	"notedeck/internal/notes/ports/storage"
	"notedeck/pkg/logger"
)

// defaultMimetype подставляется, когда клиент не передал тип содержимого.
const defaultMimetype = "application/octet-stream"

// FileUseCase представляет собой бизнес-логику работы с вложениями.
type FileUseCase struct {
	fileRepo repositories.FileRepository
	noteRepo repositories.NoteRepository
	blobs    storage.BlobStore
}

// NewFileUseCase создает новый экземпляр FileUseCase.
func NewFileUseCase(
	fileRepo repositories.FileRepository,
	noteRepo repositories.NoteRepository,
	blobs storage.BlobStore,
) *FileUseCase {
	return &FileUseCase{
		fileRepo: fileRepo,
		noteRepo: noteRepo,
		blobs:    blobs,
	}
}

// Upload сохраняет вложение заметки: сначала содержимое, затем метаданные.
// При сбое вставки метаданных осиротевшее содержимое удаляется по возможности,
// так что окно рассогласованности ограничено - запись о файле без содержимого
// появиться не может.
func (uc *FileUseCase) Upload(ctx context.Context, noteID string, data []byte, filename, mimetype string) (*entities.File, error) {
	log := logger.Log(ctx).With(zap.String("method", "FileUseCase.Upload"))

	if !isUUID(noteID) {
		return nil, fmt.Errorf("%w: note %s", ErrNotFound, noteID)
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if note == nil {
		return nil, fmt.Errorf("%w: note %s", ErrNotFound, noteID)
	}

	if mimetype == "" {
		mimetype = defaultMimetype
	}

	path, err := uc.blobs.Save(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	file, err := uc.fileRepo.Insert(ctx, &entities.File{
		NoteID:   noteID,
		Filename: filename,
		Path:     path,
		Mimetype: mimetype,
		Size:     int64(len(data)),
	})
	if err != nil {
		if removeErr := uc.blobs.Remove(ctx, path); removeErr != nil {
			log.Warn(ctx, "failed to remove orphaned file contents", zap.String("path", path), zap.Error(removeErr))
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return file, nil
}

// Get возвращает метаданные вложения вместе с содержимым.
// Отсутствие метаданных и отсутствие содержимого - независимые случаи,
// оба дают ErrNotFound, но логируются по-разному.
func (uc *FileUseCase) Get(ctx context.Context, fileID string) (*entities.File, []byte, error) {
	log := logger.Log(ctx).With(zap.String("method", "FileUseCase.Get"))

	if !isUUID(fileID) {
		return nil, nil, fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if file == nil {
		return nil, nil, fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	data, err := uc.blobs.Open(ctx, file.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn(ctx, "file metadata present but contents missing",
				zap.String("fileID", fileID), zap.String("path", file.Path))
			return nil, nil, fmt.Errorf("%w: file contents %s", ErrNotFound, fileID)
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	return file, data, nil
}

// Delete удаляет вложение. Отсутствующее содержимое не считается ошибкой,
// отсутствующие метаданные - считается.
func (uc *FileUseCase) Delete(ctx context.Context, fileID string) error {
	log := logger.Log(ctx).With(zap.String("method", "FileUseCase.Delete"))

	if !isUUID(fileID) {
		return fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if file == nil {
		return fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	if err := uc.blobs.Remove(ctx, file.Path); err != nil {
		log.Warn(ctx, "failed to remove file contents, removing metadata anyway",
			zap.String("fileID", fileID), zap.String("path", file.Path), zap.Error(err))
	}

	if err := uc.fileRepo.Delete(ctx, fileID); err != nil {
		// Параллельное удаление могло выиграть гонку после проверки существования.
		if errors.Is(err, repositories.ErrFileNotFound) {
			return fmt.Errorf("%w: file %s", ErrNotFound, fileID)
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}

// ListByNote возвращает вложения заметки, новые первыми.
func (uc *FileUseCase) ListByNote(ctx context.Context, noteID string) ([]*entities.File, error) {
	if !isUUID(noteID) {
		return []*entities.File{}, nil
	}
	files, err := uc.fileRepo.ListByNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return files, nil
}

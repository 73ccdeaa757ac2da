package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"notedeck/internal/notes/domain/entities"
	"notedeck/internal/notes/ports/cache"
	"notedeck/internal/notes/ports/repositories"
	"notedeck/internal/notes/ports/storage"
	"notedeck/pkg/logger"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo  repositories.NoteRepository
	fileRepo  repositories.FileRepository
	blobs     storage.BlobStore
	noteCache cache.NoteCache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	fileRepo repositories.FileRepository,
	blobs storage.BlobStore,
	noteCache cache.NoteCache,
) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:  noteRepo,
		fileRepo:  fileRepo,
		blobs:     blobs,
		noteCache: noteCache,
	}
}

// ListNotes возвращает все заметки, последние измененные первыми.
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return notes, nil
}

// GetNote возвращает заметку по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	if !isUUID(noteID) {
		return nil, fmt.Errorf("%w: note %s", ErrNotFound, noteID)
	}

	if note, ok := uc.noteCache.Get(ctx, noteID); ok {
		return note, nil
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if note == nil {
		return nil, fmt.Errorf("%w: note %s", ErrNotFound, noteID)
	}

	uc.noteCache.Set(ctx, note)
	return note, nil
}

// CreateNote создает новую заметку.
func (uc *NoteUseCase) CreateNote(ctx context.Context, title, content string, tags []entities.TagType) (*entities.Note, error) {
	if err := validateNote(title, content, tags); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.Create(ctx, entities.NewNote(title, content, tags))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	uc.noteCache.Set(ctx, note)
	return note, nil
}

// UpdateNote обновляет заголовок, содержимое и теги заметки.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, noteID, title, content string, tags []entities.TagType) (*entities.Note, error) {
	if err := validateNote(title, content, tags); err != nil {
		return nil, err
	}
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

	note.Title = title
	note.Content = content
	if tags == nil {
		note.Tags = []entities.TagType{}
	} else {
		note.Tags = tags
	}
	note.UpdatedAt = time.Now()

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		// Параллельное удаление могло выиграть гонку после проверки существования.
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return nil, fmt.Errorf("%w: note %s", ErrNotFound, noteID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	uc.noteCache.Invalidate(ctx, noteID)
	return note, nil
}

// DeleteNote удаляет заметку вместе с вложениями и вкладками.
// Строки files и tabs снимаются каскадом; содержимое вложений удаляется
// по возможности - сбой удаления одного файла не прерывает операцию.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.DeleteNote"))

	if !isUUID(noteID) {
		return fmt.Errorf("%w: note %s", ErrNotFound, noteID)
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if note == nil {
		return fmt.Errorf("%w: note %s", ErrNotFound, noteID)
	}

	files, err := uc.fileRepo.ListByNote(ctx, noteID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	for _, file := range files {
		if err := uc.blobs.Remove(ctx, file.Path); err != nil {
			log.Warn(ctx, "failed to remove attachment contents, continuing",
				zap.String("fileID", file.ID), zap.String("path", file.Path), zap.Error(err))
		}
	}

	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return fmt.Errorf("%w: note %s", ErrNotFound, noteID)
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	uc.noteCache.Invalidate(ctx, noteID)
	return nil
}

// validateNote проверяет обязательные поля и словарь тегов.
func validateNote(title, content string, tags []entities.TagType) error {
	if title == "" || content == "" {
		return fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	for _, tag := range tags {
		if !tag.Valid() {
			return fmt.Errorf("%w: unknown tag %q", ErrValidation, tag)
		}
	}
	return nil
}

// isUUID проверяет формат идентификатора. Некорректный формат означает,
// что такой записи заведомо нет, а не ошибку запроса к БД.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"

	"notedeck/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// GetByID возвращает (nil, nil), если заметка не найдена.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, noteID string) (*entities.Note, error)
	List(ctx context.Context) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID string) error
}

package repositories

import (
	"context"

	"notedeck/internal/notes/domain/entities"
)

// FileRepository определяет интерфейс для работы с метаданными вложений.
// GetByID возвращает (nil, nil), если запись не найдена.
type FileRepository interface {
	Insert(ctx context.Context, file *entities.File) (*entities.File, error)
	GetByID(ctx context.Context, fileID string) (*entities.File, error)
	ListByNote(ctx context.Context, noteID string) ([]*entities.File, error)
	ListAll(ctx context.Context) ([]*entities.File, error)
	Delete(ctx context.Context, fileID string) error
}

package repositories

import (
	"context"

	"notedeck/internal/notes/domain/entities"
)

// TabHit - вкладка вместе с заголовком заметки-владельца, результат поиска.
type TabHit struct {
	Tab       entities.Tab
	NoteTitle string
}

// TabRepository определяет интерфейс для работы с вкладками заметок.
// ReplaceAll атомарно замещает полный набор вкладок заметки.
type TabRepository interface {
	ListByNote(ctx context.Context, noteID string) ([]*entities.Tab, error)
	ReplaceAll(ctx context.Context, noteID string, tabs []*entities.Tab) (int, error)
	Search(ctx context.Context, query string) ([]TabHit, error)
}

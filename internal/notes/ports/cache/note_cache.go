// Package cache определяет интерфейс кэша заметок.
package cache

import (
	"context"

	"notedeck/internal/notes/domain/entities"
)

// NoteCache - необязательный кэш заметок на чтение.
// Ошибки кэша не влияют на результат операции и только логируются реализацией.
type NoteCache interface {
	Get(ctx context.Context, noteID string) (*entities.Note, bool)
	Set(ctx context.Context, note *entities.Note)
	Invalidate(ctx context.Context, noteID string)
}

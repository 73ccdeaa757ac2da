package cache

import (
	"context"

	"notedeck/internal/notes/domain/entities"
	"notedeck/internal/notes/ports/cache"
)

// NoopCache используется при отключенном Redis: все операции - пустышки.
type NoopCache struct{}

// NewNoopCache создает кэш-пустышку.
func NewNoopCache() cache.NoteCache {
	return &NoopCache{}
}

func (c *NoopCache) Get(_ context.Context, _ string) (*entities.Note, bool) { return nil, false }

func (c *NoopCache) Set(_ context.Context, _ *entities.Note) {}

func (c *NoopCache) Invalidate(_ context.Context, _ string) {}

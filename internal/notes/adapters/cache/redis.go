// Package cache содержит реализацию кэша заметок с использованием Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notedeck/internal/notes/domain/entities"
	"notedeck/internal/notes/ports/cache"
	"notedeck/pkg/logger"
)

// Константы для логирования.
const (
	errCacheGet        = "failed to get note from redis"
	errCacheSet        = "failed to set note in redis"
	errCacheInvalidate = "failed to invalidate note in redis"
	errCacheDecode     = "failed to decode cached note"
)

const keyPrefix = "note:"

// NoteCache кэширует заметки в Redis с TTL.
// Ошибки кэша только логируются: источником истины остается БД.
type NoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNoteCache создает новый кэш заметок.
func NewNoteCache(client *redis.Client, ttl time.Duration) cache.NoteCache {
	return &NoteCache{client: client, ttl: ttl}
}

// Get возвращает заметку из кэша, если она там есть.
func (c *NoteCache) Get(ctx context.Context, noteID string) (*entities.Note, bool) {
	log := logger.Log(ctx).With(zap.String("method", "NoteCache.Get"))

	raw, err := c.client.Get(ctx, keyPrefix+noteID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn(ctx, errCacheGet, zap.Error(err))
		}
		return nil, false
	}

	var note entities.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		log.Warn(ctx, errCacheDecode, zap.Error(err))
		return nil, false
	}

	log.Debug(ctx, "note cache hit", zap.String("noteID", noteID))
	return &note, true
}

// Set сохраняет заметку в кэше.
func (c *NoteCache) Set(ctx context.Context, note *entities.Note) {
	log := logger.Log(ctx).With(zap.String("method", "NoteCache.Set"))

	raw, err := json.Marshal(note)
	if err != nil {
		log.Warn(ctx, errCacheSet, zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, keyPrefix+note.ID, raw, c.ttl).Err(); err != nil {
		log.Warn(ctx, errCacheSet, zap.Error(err))
	}
}

// Invalidate удаляет заметку из кэша.
func (c *NoteCache) Invalidate(ctx context.Context, noteID string) {
	log := logger.Log(ctx).With(zap.String("method", "NoteCache.Invalidate"))

	if err := c.client.Del(ctx, keyPrefix+noteID).Err(); err != nil {
		log.Warn(ctx, errCacheInvalidate, zap.Error(err))
	}
}

package tabsync

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// cacheFilePattern - имя файла резервной копии вкладок одной заметки.
const cacheFilePattern = "note-tabs-%s.json"

// Cache - локальное файловое хранилище резервных копий вкладок.
// На заметку приходится один файл с JSON-массивом вкладок.
type Cache struct {
	dir string
}

// NewCache создает кэш в указанной директории.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Load читает резервную копию вкладок заметки.
// Отсутствующий или нечитаемый файл означает отсутствие копии.
func (c *Cache) Load(noteID string) ([]Tab, bool) {
	raw, err := os.ReadFile(c.path(noteID))
	if err != nil {
		return nil, false
	}

	var tabs []Tab
	if err := json.Unmarshal(raw, &tabs); err != nil {
		return nil, false
	}
	if len(tabs) == 0 {
		return nil, false
	}
	return tabs, true
}

// Save записывает резервную копию вкладок заметки.
// Запись идет через временный файл с переименованием, чтобы
// обрыв посреди записи не оставил усеченную копию.
func (c *Cache) Save(noteID string, tabs []Tab) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	raw, err := json.Marshal(tabs)
	if err != nil {
		return fmt.Errorf("failed to encode tabs: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, "tabs-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmpName, c.path(noteID)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Clear удаляет резервную копию вкладок заметки.
// Отсутствие копии не считается ошибкой.
func (c *Cache) Clear(noteID string) error {
	if err := os.Remove(c.path(noteID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

func (c *Cache) path(noteID string) string {
	return filepath.Join(c.dir, fmt.Sprintf(cacheFilePattern, noteID))
}

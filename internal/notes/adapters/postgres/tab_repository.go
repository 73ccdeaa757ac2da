package postgres

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"notedeck/internal/notes/domain/entities"
	"notedeck/internal/notes/ports/repositories"
	"notedeck/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	errListTabs    = "failed to list tabs"
	errScanTab     = "failed to scan tab"
	errReplaceTabs = "failed to replace tabs"
	errSearchTabs  = "failed to search tabs"
)

// TabRepository реализует интерфейс repositories.TabRepository.
type TabRepository struct {
	pool PgxPool
}

// NewTabRepository создает новый репозиторий вкладок.
func NewTabRepository(pool PgxPool) repositories.TabRepository {
	return &TabRepository{pool: pool}
}

// ListByNote получает вкладки заметки в порядке создания.
func (r *TabRepository) ListByNote(ctx context.Context, noteID string) ([]*entities.Tab, error) {
	log := logger.Log(ctx).With(zap.String("method", "TabRepository.ListByNote"))
	log.Debug(ctx, "listing tabs", zap.String("noteID", noteID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, note_id, name, content, position, created_at, updated_at
         FROM tabs
         WHERE note_id = $1
         ORDER BY position ASC, created_at ASC`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, errListTabs, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListTabs, err)
	}
	defer rows.Close()

	tabs := make([]*entities.Tab, 0)
	for rows.Next() {
		var tab entities.Tab
		err := rows.Scan(&tab.ID, &tab.NoteID, &tab.Name, &tab.Content, &tab.Position, &tab.CreatedAt, &tab.UpdatedAt)
		if err != nil {
			log.Error(ctx, errScanTab, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanTab, err)
		}
		tabs = append(tabs, &tab)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, errListTabs, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListTabs, err)
	}

	return tabs, nil
}

// ReplaceAll атомарно замещает полный набор вкладок заметки.
// Удаление и вставка выполняются в одной транзакции, поэтому пустой
// набор вкладок между шагами наблюдать невозможно.
func (r *TabRepository) ReplaceAll(ctx context.Context, noteID string, tabs []*entities.Tab) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", "TabRepository.ReplaceAll"))
	log.Debug(ctx, "replacing tabs", zap.String("noteID", noteID), zap.Int("count", len(tabs)))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, errReplaceTabs, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errReplaceTabs, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM tabs WHERE note_id = $1`, noteID); err != nil {
		log.Error(ctx, errReplaceTabs, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errReplaceTabs, err)
	}

	for position, tab := range tabs {
		_, err := tx.Exec(ctx,
			`INSERT INTO tabs (id, note_id, name, content, position) VALUES ($1, $2, $3, $4, $5)`,
			tab.ID, noteID, tab.Name, tab.Content, position,
		)
		if err != nil {
			log.Error(ctx, errReplaceTabs, zap.Error(err))
			return 0, fmt.Errorf("%s: %w", errReplaceTabs, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, errReplaceTabs, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errReplaceTabs, err)
	}

	log.Debug(ctx, "tabs replaced", zap.Int("count", len(tabs)))
	return len(tabs), nil
}

// Search ищет вкладки, чье имя или содержимое содержит подстроку запроса
// без учета регистра, вместе с заголовками заметок-владельцев.
func (r *TabRepository) Search(ctx context.Context, query string) ([]repositories.TabHit, error) {
	log := logger.Log(ctx).With(zap.String("method", "TabRepository.Search"))
	log.Debug(ctx, "searching tabs", zap.String("query", query))

	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.note_id, t.name, t.content, t.position, t.created_at, t.updated_at, n.title
         FROM tabs t
         JOIN notes n ON n.id = t.note_id
         WHERE t.name ILIKE $1 OR t.content ILIKE $1`,
		pattern,
	)
	if err != nil {
		log.Error(ctx, errSearchTabs, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSearchTabs, err)
	}
	defer rows.Close()

	hits := make([]repositories.TabHit, 0)
	for rows.Next() {
		var hit repositories.TabHit
		err := rows.Scan(&hit.Tab.ID, &hit.Tab.NoteID, &hit.Tab.Name, &hit.Tab.Content,
			&hit.Tab.Position, &hit.Tab.CreatedAt, &hit.Tab.UpdatedAt, &hit.NoteTitle)
		if err != nil {
			log.Error(ctx, errScanTab, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanTab, err)
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, errSearchTabs, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errSearchTabs, err)
	}

	return hits, nil
}

// escapeLike экранирует спецсимволы LIKE, чтобы запрос искался как подстрока.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

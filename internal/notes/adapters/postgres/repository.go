// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"notedeck/internal/notes/ports/repositories"
)

// PgxPool - подмножество методов pgxpool.Pool, используемое репозиториями.
// Ему удовлетворяет и pgxmock.PgxPoolIface в тестах.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPool
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPool) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// NoteRepository возвращает репозиторий для работы с заметками.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}

// FileRepository возвращает репозиторий для работы с вложениями.
func (f *RepositoryFactory) FileRepository() repositories.FileRepository {
	return NewFileRepository(f.pool)
}

// TabRepository возвращает репозиторий для работы с вкладками.
func (f *RepositoryFactory) TabRepository() repositories.TabRepository {
	return NewTabRepository(f.pool)
}

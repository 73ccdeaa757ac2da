package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notedeck/internal/notes/domain/entities"
	"notedeck/internal/notes/ports/repositories"
	"notedeck/pkg/logger"
)

// ErrNoteNotFound is returned when a note does not exist.
var ErrNoteNotFound = repositories.ErrNoteNotFound

// Константы для сообщений об ошибках.
const (
	errCreateNote = "failed to create note"
	errGetNote    = "failed to get note"
	errListNotes  = "failed to list notes"
	errScanNote   = "failed to scan note"
	errUpdateNote = "failed to update note"
	errDeleteNote = "failed to delete note"
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPool
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPool) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("title", note.Title))

	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (title, content, tags_json) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		note.Title, note.Content, entities.TagsToJSON(note.Tags),
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		log.Error(ctx, errCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreateNote, err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return note, nil
}

// GetByID получает заметку по ID.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	var (
		note     entities.Note
		tagsJSON *string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, tags_json, created_at, updated_at
         FROM notes
         WHERE id = $1`,
		noteID,
	).Scan(&note.ID, &note.Title, &note.Content, &tagsJSON, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, errGetNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errGetNote, err)
	}

	note.Tags = decodeTags(tagsJSON)
	return &note, nil
}

// List получает все заметки, новые первыми.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes")

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, tags_json, created_at, updated_at
         FROM notes
         ORDER BY updated_at DESC, created_at DESC`,
	)
	if err != nil {
		log.Error(ctx, errListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var (
			note     entities.Note
			tagsJSON *string
		)
		err := rows.Scan(&note.ID, &note.Title, &note.Content, &tagsJSON, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			log.Error(ctx, errScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanNote, err)
		}
		note.Tags = decodeTags(tagsJSON)
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, errListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListNotes, err)
	}

	return notes, nil
}

// Update обновляет существующую заметку.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, tags_json = $3, updated_at = $4 WHERE id = $5`,
		note.Title, note.Content, entities.TagsToJSON(note.Tags), note.UpdatedAt, note.ID,
	)
	if err != nil {
		log.Error(ctx, errUpdateNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errUpdateNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found")
		return ErrNoteNotFound
	}

	return nil
}

// Delete удаляет заметку; строки files и tabs удаляются каскадом.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, errDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errDeleteNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found")
		return ErrNoteNotFound
	}

	return nil
}

// decodeTags разбирает сохраненные теги, допуская NULL в колонке.
func decodeTags(tagsJSON *string) []entities.TagType {
	if tagsJSON == nil {
		return []entities.TagType{}
	}
	return entities.JSONToTags(*tagsJSON)
}

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

// ErrFileNotFound is returned when a file record does not exist.
var ErrFileNotFound = repositories.ErrFileNotFound

// Константы для сообщений об ошибках.
const (
	errInsertFile = "failed to insert file"
	errGetFile    = "failed to get file"
	errListFiles  = "failed to list files"
	errScanFile   = "failed to scan file"
	errDeleteFile = "failed to delete file"
)

// FileRepository реализует интерфейс repositories.FileRepository.
type FileRepository struct {
	pool PgxPool
}

// NewFileRepository создает новый репозиторий вложений.
func NewFileRepository(pool PgxPool) repositories.FileRepository {
	return &FileRepository{pool: pool}
}

// Insert сохраняет метаданные вложения.
func (r *FileRepository) Insert(ctx context.Context, file *entities.File) (*entities.File, error) {
	log := logger.Log(ctx).With(zap.String("method", "FileRepository.Insert"))
	log.Debug(ctx, "inserting file", zap.String("noteID", file.NoteID), zap.String("filename", file.Filename))

	err := r.pool.QueryRow(ctx,
		`INSERT INTO files (note_id, filename, path, mimetype, size) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		file.NoteID, file.Filename, file.Path, file.Mimetype, file.Size,
	).Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		log.Error(ctx, errInsertFile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errInsertFile, err)
	}

	log.Debug(ctx, "file inserted", zap.String("fileID", file.ID))
	return file, nil
}

// GetByID получает метаданные вложения по ID.
func (r *FileRepository) GetByID(ctx context.Context, fileID string) (*entities.File, error) {
	log := logger.Log(ctx).With(zap.String("method", "FileRepository.GetByID"))
	log.Debug(ctx, "getting file", zap.String("fileID", fileID))

	var file entities.File
	err := r.pool.QueryRow(ctx,
		`SELECT id, note_id, filename, path, mimetype, size, created_at
         FROM files
         WHERE id = $1`,
		fileID,
	).Scan(&file.ID, &file.NoteID, &file.Filename, &file.Path, &file.Mimetype, &file.Size, &file.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "file not found", zap.String("fileID", fileID))
			return nil, nil
		}
		log.Error(ctx, errGetFile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errGetFile, err)
	}

	return &file, nil
}

// ListByNote получает вложения заметки, новые первыми.
func (r *FileRepository) ListByNote(ctx context.Context, noteID string) ([]*entities.File, error) {
	log := logger.Log(ctx).With(zap.String("method", "FileRepository.ListByNote"))
	log.Debug(ctx, "listing files", zap.String("noteID", noteID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, note_id, filename, path, mimetype, size, created_at
         FROM files
         WHERE note_id = $1
         ORDER BY created_at DESC`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, errListFiles, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListFiles, err)
	}
	defer rows.Close()

	return scanFiles(ctx, rows)
}

// ListAll получает все вложения, новые первыми. Используется поиском по именам.
func (r *FileRepository) ListAll(ctx context.Context) ([]*entities.File, error) {
	log := logger.Log(ctx).With(zap.String("method", "FileRepository.ListAll"))
	log.Debug(ctx, "listing all files")

	rows, err := r.pool.Query(ctx,
		`SELECT id, note_id, filename, path, mimetype, size, created_at
         FROM files
         ORDER BY created_at DESC`,
	)
	if err != nil {
		log.Error(ctx, errListFiles, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListFiles, err)
	}
	defer rows.Close()

	return scanFiles(ctx, rows)
}

// Delete удаляет метаданные вложения.
func (r *FileRepository) Delete(ctx context.Context, fileID string) error {
	log := logger.Log(ctx).With(zap.String("method", "FileRepository.Delete"))
	log.Debug(ctx, "deleting file", zap.String("fileID", fileID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM files WHERE id = $1`,
		fileID,
	)
	if err != nil {
		log.Error(ctx, errDeleteFile, zap.Error(err))
		return fmt.Errorf("%s: %w", errDeleteFile, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "file not found")
		return ErrFileNotFound
	}

	return nil
}

func scanFiles(ctx context.Context, rows pgx.Rows) ([]*entities.File, error) {
	log := logger.Log(ctx)

	files := make([]*entities.File, 0)
	for rows.Next() {
		var file entities.File
		err := rows.Scan(&file.ID, &file.NoteID, &file.Filename, &file.Path, &file.Mimetype, &file.Size, &file.CreatedAt)
		if err != nil {
			log.Error(ctx, errScanFile, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanFile, err)
		}
		files = append(files, &file)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, errListFiles, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListFiles, err)
	}

	return files, nil
}

// Package services defines the service interfaces consumed by HTTP handlers.
package services

import (
	"context"

	"notedeck/internal/notes/app"
	"notedeck/internal/notes/domain/entities"
)

// NotesService определяет операции над заметками.
type NotesService interface {
	ListNotes(ctx context.Context) ([]*entities.Note, error)
	GetNote(ctx context.Context, noteID string) (*entities.Note, error)
	CreateNote(ctx context.Context, title, content string, tags []entities.TagType) (*entities.Note, error)
	UpdateNote(ctx context.Context, noteID, title, content string, tags []entities.TagType) (*entities.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
}

// FilesService определяет операции над вложениями.
type FilesService interface {
	Upload(ctx context.Context, noteID string, data []byte, filename, mimetype string) (*entities.File, error)
	Get(ctx context.Context, fileID string) (*entities.File, []byte, error)
	Delete(ctx context.Context, fileID string) error
	ListByNote(ctx context.Context, noteID string) ([]*entities.File, error)
}

// TabsService определяет операции над вкладками.
type TabsService interface {
	ListByNote(ctx context.Context, noteID string) ([]*entities.Tab, error)
	ReplaceAll(ctx context.Context, noteID string, inputs []app.TabInput) (int, error)
}

// SearchService определяет серверные операции поиска.
type SearchService interface {
	SearchTabs(ctx context.Context, query string) ([]app.TabSearchResult, error)
	SearchAttachments(ctx context.Context, query string) ([]app.AttachmentSearchResult, error)
}

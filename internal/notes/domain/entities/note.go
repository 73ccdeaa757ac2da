// Package entities defines the domain entities for the notes service.
package entities

import "time"

// Note представляет собой заметку с тегами.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []TagType `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote creates a new note with the given title, content and tags.
func NewNote(title, content string, tags []TagType) *Note {
	now := time.Now()
	if tags == nil {
		tags = []TagType{}
	}
	return &Note{
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

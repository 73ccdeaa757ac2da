// Package dto содержит структуры HTTP запросов и ответов.
package dto

import "notedeck/internal/notes/domain/entities"

// CreateNoteRequest - тело POST /notes.
type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest - тело PUT /notes (идентификатор в теле).
type UpdateNoteRequest struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// PatchNoteRequest - тело PATCH /notes/{id}.
type PatchNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ToTags преобразует строки запроса в теги домена.
func ToTags(raw []string) []entities.TagType {
	if raw == nil {
		return nil
	}
	tags := make([]entities.TagType, 0, len(raw))
	for _, r := range raw {
		tags = append(tags, entities.TagType(r))
	}
	return tags
}

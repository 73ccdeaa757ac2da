package client

import (
	"context"
	"strings"
	"unicode/utf8"

	"notedeck/internal/notes/domain/entities"
)

// MinQueryLen - минимальная длина поискового запроса.
const MinQueryLen = 2

// SearchResults - результаты поиска по трем независимым категориям.
type SearchResults struct {
	NoteMatches       []entities.Note
	AttachmentMatches []AttachmentMatch
	TabMatches        []TabMatch
}

// Search выполняет поиск по заметкам, вложениям и вкладкам.
// Заметки фильтруются локально по загруженному списку, вложения и
// вкладки ищутся на сервере. Запрос короче двух символов дает пустой
// результат по всем категориям.
func (c *Client) Search(ctx context.Context, query string) (*SearchResults, error) {
	if utf8.RuneCountInString(query) < MinQueryLen {
		return &SearchResults{}, nil
	}

	notes, err := c.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	results := &SearchResults{}
	for _, note := range notes {
		if noteMatches(&note, query) {
			results.NoteMatches = append(results.NoteMatches, note)
		}
	}

	tabMatches, err := c.SearchTabs(ctx, query)
	if err != nil {
		return nil, err
	}
	results.TabMatches = tabMatches

	attachmentMatches, err := c.SearchAttachments(ctx, query)
	if err != nil {
		return nil, err
	}
	results.AttachmentMatches = attachmentMatches

	return results, nil
}

// MatchedNoteIDs объединяет результаты по идентификатору заметки.
// Заметка попадает в итог один раз независимо от числа причин совпадения.
func (r *SearchResults) MatchedNoteIDs() []string {
	seen := make(map[string]struct{})
	var ids []string

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, note := range r.NoteMatches {
		add(note.ID)
	}
	for _, match := range r.AttachmentMatches {
		add(match.NoteID)
	}
	for _, match := range r.TabMatches {
		add(match.NoteID)
	}

	return ids
}

// noteMatches проверяет совпадение по заголовку, тексту или тегам заметки.
func noteMatches(note *entities.Note, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(note.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(note.Content), q) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(string(tag)), q) {
			return true
		}
	}
	return false
}

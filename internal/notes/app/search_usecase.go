package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"notedeck/internal/notes/ports/repositories"
)

// Пороги и размеры поиска.
const (
	// MinQueryLen - минимальная длина запроса; более короткие дают пустой результат.
	MinQueryLen = 2
	// AttachmentResultCap - максимум результатов поиска по именам вложений.
	AttachmentResultCap = 20
	// snippetRadius - число символов контекста с каждой стороны найденного вхождения.
	snippetRadius = 30
)

// Типы совпадений для поиска по вкладкам.
const (
	MatchTypeName    = "name"
	MatchTypeContent = "content"
)

// TabSearchResult - совпадение по вкладке вместе с данными заметки-владельца.
type TabSearchResult struct {
	NoteID    string `json:"noteId"`
	NoteTitle string `json:"noteTitle"`
	TabID     string `json:"tabId"`
	TabName   string `json:"tabName"`
	MatchText string `json:"matchText"`
	MatchType string `json:"matchType"`
}

// AttachmentSearchResult - совпадение по имени вложения.
type AttachmentSearchResult struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	NoteID   string `json:"noteId"`
}

// SearchUseCase представляет собой серверную часть поиска:
// по вкладкам и по именам вложений.
type SearchUseCase struct {
	tabRepo  repositories.TabRepository
	fileRepo repositories.FileRepository
}

// NewSearchUseCase создает новый экземпляр SearchUseCase.
func NewSearchUseCase(tabRepo repositories.TabRepository, fileRepo repositories.FileRepository) *SearchUseCase {
	return &SearchUseCase{
		tabRepo:  tabRepo,
		fileRepo: fileRepo,
	}
}

// SearchTabs ищет вкладки по подстроке в имени или содержимом без учета
// регистра. Совпадение по имени имеет приоритет над совпадением по
// содержимому; для содержимого строится фрагмент вокруг первого вхождения.
func (uc *SearchUseCase) SearchTabs(ctx context.Context, query string) ([]TabSearchResult, error) {
	results := make([]TabSearchResult, 0)
	if utf8.RuneCountInString(query) < MinQueryLen {
		return results, nil
	}

	hits, err := uc.tabRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	for _, hit := range hits {
		result := TabSearchResult{
			NoteID:    hit.Tab.NoteID,
			NoteTitle: hit.NoteTitle,
			TabID:     hit.Tab.ID,
			TabName:   hit.Tab.Name,
		}
		if containsFold(hit.Tab.Name, query) {
			result.MatchText = hit.Tab.Name
			result.MatchType = MatchTypeName
		} else {
			result.MatchText = contentSnippet(hit.Tab.Content, query)
			result.MatchType = MatchTypeContent
		}
		results = append(results, result)
	}

	return results, nil
}

// SearchAttachments ищет вложения по подстроке имени файла без учета
// регистра. Просматриваются все вложения в порядке, который вернуло
// хранилище; результат ограничен первыми AttachmentResultCap совпадениями.
func (uc *SearchUseCase) SearchAttachments(ctx context.Context, query string) ([]AttachmentSearchResult, error) {
	results := make([]AttachmentSearchResult, 0)
	if utf8.RuneCountInString(query) < MinQueryLen {
		return results, nil
	}

	files, err := uc.fileRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	for _, file := range files {
		if !containsFold(file.Filename, query) {
			continue
		}
		results = append(results, AttachmentSearchResult{
			ID:       file.ID,
			Filename: file.Filename,
			NoteID:   file.NoteID,
		})
		if len(results) >= AttachmentResultCap {
			break
		}
	}

	return results, nil
}

// containsFold проверяет вхождение подстроки без учета регистра.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// contentSnippet возвращает окно вокруг первого вхождения запроса
// с многоточиями на обрезанных границах. Радиус считается в символах,
// многобайтовый текст получает такое же окно, как и ASCII.
func contentSnippet(content, query string) string {
	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if idx < 0 {
		return ""
	}

	start := idx
	for i := 0; i < snippetRadius && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(content[:start])
		start -= size
	}
	end := idx + len(query)
	if end > len(content) {
		end = len(content)
	}
	for i := 0; i < snippetRadius && end < len(content); i++ {
		_, size := utf8.DecodeRuneInString(content[end:])
		end += size
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}

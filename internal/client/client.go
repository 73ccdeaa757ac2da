// Package client реализует HTTP клиент API заметок.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"notedeck/internal/notes/domain/entities"
)

// DefaultTimeout - таймаут HTTP запросов по умолчанию.
const DefaultTimeout = 10 * time.Second

// TabPayload - вкладка в запросе на сохранение набора вкладок.
type TabPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// TabMatch - результат серверного поиска по вкладкам.
type TabMatch struct {
	NoteID    string `json:"noteId"`
	NoteTitle string `json:"noteTitle"`
	TabID     string `json:"tabId"`
	TabName   string `json:"tabName"`
	MatchText string `json:"matchText"`
	MatchType string `json:"matchType"`
}

// AttachmentMatch - результат серверного поиска по вложениям.
type AttachmentMatch struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	NoteID   string `json:"noteId"`
}

// Client - HTTP клиент API заметок.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option настраивает клиент.
type Option func(*Client)

// WithHTTPClient задает базовый HTTP клиент.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient создает новый клиент API заметок.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListNotes возвращает все заметки, последние измененные первыми.
func (c *Client) ListNotes(ctx context.Context) ([]entities.Note, error) {
	var notes []entities.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote возвращает заметку по ID.
func (c *Client) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	var note entities.Note
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(noteID), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote создает новую заметку.
func (c *Client) CreateNote(ctx context.Context, title, content string, tags []string) (*entities.Note, error) {
	body := map[string]any{"title": title, "content": content}
	if tags != nil {
		body["tags"] = tags
	}
	var note entities.Note
	if err := c.do(ctx, http.MethodPost, "/notes", body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote полностью обновляет заметку.
func (c *Client) UpdateNote(ctx context.Context, noteID, title, content string, tags []string) (*entities.Note, error) {
	body := map[string]any{"id": noteID, "title": title, "content": content}
	if tags != nil {
		body["tags"] = tags
	}
	var note entities.Note
	if err := c.do(ctx, http.MethodPut, "/notes", body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote удаляет заметку вместе с вложениями и вкладками.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(noteID), nil, nil)
}

// ListTabs возвращает вкладки заметки в порядке создания.
func (c *Client) ListTabs(ctx context.Context, noteID string) ([]entities.Tab, error) {
	var tabs []entities.Tab
	path := "/tabs?noteId=" + url.QueryEscape(noteID)
	if err := c.do(ctx, http.MethodGet, path, nil, &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

// ReplaceTabs полностью заменяет набор вкладок заметки.
func (c *Client) ReplaceTabs(ctx context.Context, noteID string, tabs []TabPayload) (int, error) {
	if tabs == nil {
		tabs = []TabPayload{}
	}
	body := map[string]any{"noteId": noteID, "tabs": tabs}
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodPost, "/tabs", body, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// SearchTabs выполняет серверный поиск по вкладкам.
func (c *Client) SearchTabs(ctx context.Context, query string) ([]TabMatch, error) {
	var results []TabMatch
	path := "/tabs/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchAttachments выполняет серверный поиск по именам вложений.
func (c *Client) SearchAttachments(ctx context.Context, query string) ([]AttachmentMatch, error) {
	var results []AttachmentMatch
	path := "/search/attachments?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// do выполняет запрос и декодирует ответ.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiError преобразует ответ с ошибкой в ошибку клиента.
func apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	default:
		return fmt.Errorf("%w: %d %s", ErrServer, resp.StatusCode, message)
	}
}

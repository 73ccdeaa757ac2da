// Package tabsync поддерживает согласованность вкладок заметки между
// памятью клиента, локальной резервной копией и сервером.
//
// Набор вкладок в памяти - единственный источник истины для UI.
// Локальная копия и сервер лишь отстают от него: правки применяются
// мгновенно, сохранение откладывается и объединяет серию правок в один
// вызов. При недоступном сервере сессия переходит в деградированный
// режим и продолжает работать от локальной копии.
package tabsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"notedeck/internal/client"
	"notedeck/internal/notes/domain/entities"
	"notedeck/pkg/logger"
)

// Константы сессии.
const (
	// DefaultDebounce - задержка между последней правкой и сохранением.
	DefaultDebounce = time.Second
	// DefaultTabName - имя вкладки, создаваемой для пустой заметки.
	DefaultTabName = "Main"
	// NoticeSavedLocally - уведомление о сохранении только в локальную копию.
	NoticeSavedLocally = "saved locally only"
)

// Константы для сообщений logger.
const (
	logMigrationDone   = "migrated cached tabs to store"
	logMigrationFailed = "failed to migrate cached tabs, serving from cache"
	logListFailed      = "failed to load tabs from store, degrading"
	logSaveFailed      = "failed to save tabs to store"
	logSaveStale       = "discarding superseded save result"
	logCacheSaveFailed = "failed to write local tab cache"
)

// State - состояние сессии синхронизации.
type State int

// Состояния сессии.
const (
	// StateUninitialized - сессия еще не загружала вкладки.
	StateUninitialized State = iota
	// StateSynced - набор вкладок подтвержден сервером.
	StateSynced
	// StateDegraded - сервер недоступен, набор живет в локальной копии.
	StateDegraded
)

// String возвращает строковое представление состояния.
func (s State) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StateDegraded:
		return "degraded"
	default:
		return "uninitialized"
	}
}

// Tab - вкладка заметки на стороне клиента.
type Tab struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Store - серверные операции, нужные сессии.
type Store interface {
	ListTabs(ctx context.Context, noteID string) ([]entities.Tab, error)
	ReplaceTabs(ctx context.Context, noteID string, tabs []client.TabPayload) (int, error)
}

// Session синхронизирует вкладки одной заметки с сервером.
type Session struct {
	noteID string
	store  Store
	cache  *Cache

	delay  time.Duration
	notice func(string)

	mu      sync.Mutex
	state   State
	tabs    []Tab
	timer   *time.Timer
	saveSeq uint64
	saving  sync.WaitGroup
}

// Option настраивает сессию.
type Option func(*Session)

// WithDebounce задает задержку отложенного сохранения.
func WithDebounce(delay time.Duration) Option {
	return func(s *Session) {
		s.delay = delay
	}
}

// WithNotice задает обработчик нефатальных уведомлений.
func WithNotice(fn func(string)) Option {
	return func(s *Session) {
		s.notice = fn
	}
}

// NewSession создает сессию синхронизации вкладок заметки.
func NewSession(noteID string, store Store, cache *Cache, opts ...Option) *Session {
	s := &Session{
		noteID: noteID,
		store:  store,
		cache:  cache,
		delay:  DefaultDebounce,
		state:  StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load инициализирует набор вкладок заметки.
//
// При наличии локальной копии сначала делается попытка вернуть ее на
// сервер; успех очищает копию. Иначе вкладки читаются с сервера, а для
// пустой заметки создается вкладка по умолчанию с начальным текстом.
// Если сервер недоступен, сессия продолжает работать от локальной
// копии или от вкладки по умолчанию в деградированном режиме.
func (s *Session) Load(ctx context.Context, seed string) error {
	log := logger.Log(ctx).With(zap.String("noteID", s.noteID))

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache.Load(s.noteID); ok {
		if _, err := s.store.ReplaceTabs(ctx, s.noteID, toPayloads(cached)); err != nil {
			log.Warn(ctx, logMigrationFailed, zap.Error(err))
			s.tabs = cached
			s.state = StateDegraded
			s.notify(NoticeSavedLocally)
			return nil
		}
		log.Info(ctx, logMigrationDone, zap.Int("tabs", len(cached)))
		if err := s.cache.Clear(s.noteID); err != nil {
			log.Warn(ctx, logCacheSaveFailed, zap.Error(err))
		}
		s.tabs = cached
		s.state = StateSynced
		return nil
	}

	stored, err := s.store.ListTabs(ctx, s.noteID)
	if err != nil {
		log.Warn(ctx, logListFailed, zap.Error(err))
		s.tabs = []Tab{{ID: uuid.New().String(), Name: DefaultTabName, Content: seed}}
		s.writeCacheLocked(ctx)
		s.state = StateDegraded
		s.notify(NoticeSavedLocally)
		return nil
	}

	if len(stored) > 0 {
		s.tabs = fromEntities(stored)
		s.state = StateSynced
		return nil
	}

	s.tabs = []Tab{{ID: uuid.New().String(), Name: DefaultTabName, Content: seed}}
	if _, err := s.store.ReplaceTabs(ctx, s.noteID, toPayloads(s.tabs)); err != nil {
		log.Warn(ctx, logSaveFailed, zap.Error(err))
		s.writeCacheLocked(ctx)
		s.state = StateDegraded
		s.notify(NoticeSavedLocally)
		return nil
	}
	s.state = StateSynced
	return nil
}

// State возвращает текущее состояние сессии.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tabs возвращает копию текущего набора вкладок.
func (s *Session) Tabs() []Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	tabs := make([]Tab, len(s.tabs))
	copy(tabs, s.tabs)
	return tabs
}

// AddTab добавляет новую пустую вкладку и возвращает ее.
func (s *Session) AddTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab := Tab{
		ID:   uuid.New().String(),
		Name: fmt.Sprintf("Tab %d", len(s.tabs)+1),
	}
	s.tabs = append(s.tabs, tab)
	s.armLocked()
	return tab
}

// RemoveTab удаляет вкладку по идентификатору.
// Последняя оставшаяся вкладка не удаляется.
func (s *Session) RemoveTab(tabID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tabs) <= 1 {
		return false
	}
	for i, tab := range s.tabs {
		if tab.ID == tabID {
			s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
			s.armLocked()
			return true
		}
	}
	return false
}

// RenameTab переименовывает вкладку. Пустое имя заменяется порядковым.
func (s *Session) RenameTab(tabID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tabs {
		if s.tabs[i].ID == tabID {
			if name == "" {
				name = fmt.Sprintf("Tab %d", i+1)
			}
			s.tabs[i].Name = name
			s.armLocked()
			return true
		}
	}
	return false
}

// SetContent обновляет содержимое вкладки.
func (s *Session) SetContent(tabID, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tabs {
		if s.tabs[i].ID == tabID {
			s.tabs[i].Content = entities.TruncateTabContent(content)
			s.armLocked()
			return true
		}
	}
	return false
}

// Flush немедленно сохраняет текущий набор, не дожидаясь таймера.
func (s *Session) Flush(ctx context.Context) {
	s.mu.Lock()
	if s.timer != nil && s.timer.Stop() {
		s.saving.Done()
	}
	s.timer = nil
	s.mu.Unlock()

	s.save(ctx)
}

// Close останавливает таймер и дожидается завершения сохранений.
// Несохраненные правки записываются напоследок.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	pending := false
	if s.timer != nil && s.timer.Stop() {
		s.saving.Done()
		pending = true
	}
	s.timer = nil
	s.mu.Unlock()

	if pending {
		s.save(ctx)
	}
	s.saving.Wait()
}

// armLocked перезапускает таймер отложенного сохранения.
// Каждая правка сдвигает срабатывание: серия быстрых правок
// превращается в один вызов сохранения.
func (s *Session) armLocked() {
	if s.timer != nil && s.timer.Stop() {
		s.saving.Done()
	}
	s.saving.Add(1)
	s.timer = time.AfterFunc(s.delay, func() {
		defer s.saving.Done()
		s.save(context.Background())
	})
}

// save записывает набор в локальную копию и отправляет на сервер.
// Перед сетевым вызовом копия пишется безусловно: обрыв посреди
// сохранения не теряет данные. Результат устаревшего сохранения,
// вытесненного более поздним, отбрасывается.
func (s *Session) save(ctx context.Context) {
	log := logger.Log(ctx).With(zap.String("noteID", s.noteID))

	s.mu.Lock()
	s.saveSeq++
	seq := s.saveSeq
	snapshot := make([]Tab, len(s.tabs))
	copy(snapshot, s.tabs)
	s.writeCacheLocked(ctx)
	s.mu.Unlock()

	_, err := s.store.ReplaceTabs(ctx, s.noteID, toPayloads(snapshot))

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.saveSeq {
		log.Debug(ctx, logSaveStale, zap.Uint64("seq", seq), zap.Uint64("current", s.saveSeq))
		return
	}

	if err != nil {
		log.Warn(ctx, logSaveFailed, zap.Error(err))
		s.state = StateDegraded
		s.notify(NoticeSavedLocally)
		return
	}

	s.state = StateSynced
	if err := s.cache.Clear(s.noteID); err != nil {
		log.Warn(ctx, logCacheSaveFailed, zap.Error(err))
	}
}

// writeCacheLocked пишет локальную копию текущего набора.
func (s *Session) writeCacheLocked(ctx context.Context) {
	if err := s.cache.Save(s.noteID, s.tabs); err != nil {
		logger.Log(ctx).Warn(ctx, logCacheSaveFailed,
			zap.String("noteID", s.noteID), zap.Error(err))
	}
}

func (s *Session) notify(message string) {
	if s.notice != nil {
		s.notice(message)
	}
}

func toPayloads(tabs []Tab) []client.TabPayload {
	payloads := make([]client.TabPayload, 0, len(tabs))
	for _, tab := range tabs {
		payloads = append(payloads, client.TabPayload{
			ID:      tab.ID,
			Name:    tab.Name,
			Content: tab.Content,
		})
	}
	return payloads
}

func fromEntities(tabs []entities.Tab) []Tab {
	out := make([]Tab, 0, len(tabs))
	for _, tab := range tabs {
		out = append(out, Tab{ID: tab.ID, Name: tab.Name, Content: tab.Content})
	}
	return out
}

package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"notedeck/internal/notes/domain/entities"
	"notedeck/internal/notes/ports/repositories"
)

// TabInput - вкладка в том виде, в котором ее присылает клиент.
// Идентификатор необязателен: клиент передает его, когда хочет сохранить
// идентичность вкладки между циклами сохранения.
type TabInput struct {
	ID      string
	Name    string
	Content string
}

// TabUseCase представляет собой бизнес-логику работы с вкладками.
type TabUseCase struct {
	tabRepo  repositories.TabRepository
	noteRepo repositories.NoteRepository
}

// NewTabUseCase создает новый экземпляр TabUseCase.
func NewTabUseCase(tabRepo repositories.TabRepository, noteRepo repositories.NoteRepository) *TabUseCase {
	return &TabUseCase{
		tabRepo:  tabRepo,
		noteRepo: noteRepo,
	}
}

// ListByNote возвращает вкладки заметки в порядке создания.
func (uc *TabUseCase) ListByNote(ctx context.Context, noteID string) ([]*entities.Tab, error) {
	if err := uc.requireNote(ctx, noteID); err != nil {
		return nil, err
	}

	tabs, err := uc.tabRepo.ListByNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return tabs, nil
}

// ReplaceAll замещает полный набор вкладок заметки присланным набором.
// Это не слияние: клиент обязан присылать желаемый набор целиком.
// Пустой набор нормализуется до одной вкладки по умолчанию, поэтому
// заметка никогда не остается без вкладок.
func (uc *TabUseCase) ReplaceAll(ctx context.Context, noteID string, inputs []TabInput) (int, error) {
	if err := uc.requireNote(ctx, noteID); err != nil {
		return 0, err
	}

	tabs := normalizeTabs(noteID, inputs)

	count, err := uc.tabRepo.ReplaceAll(ctx, noteID, tabs)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return count, nil
}

func (uc *TabUseCase) requireNote(ctx context.Context, noteID string) error {
	if !isUUID(noteID) {
		return fmt.Errorf("%w: note %s", ErrNotFound, noteID)
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if note == nil {
		return fmt.Errorf("%w: note %s", ErrNotFound, noteID)
	}
	return nil
}

// normalizeTabs приводит присланный набор к сохраняемому виду: выдает
// идентификаторы недостающим вкладкам, подставляет имя по умолчанию
// и обрезает содержимое до допустимой длины.
func normalizeTabs(noteID string, inputs []TabInput) []*entities.Tab {
	if len(inputs) == 0 {
		inputs = []TabInput{{}}
	}

	tabs := make([]*entities.Tab, 0, len(inputs))
	for position, input := range inputs {
		id := input.ID
		if !isUUID(id) {
			id = uuid.New().String()
		}
		name := input.Name
		if name == "" {
			name = entities.DefaultTabName
		}
		tabs = append(tabs, &entities.Tab{
			ID:       id,
			NoteID:   noteID,
			Name:     name,
			Content:  entities.TruncateTabContent(input.Content),
			Position: position,
		})
	}
	return tabs
}

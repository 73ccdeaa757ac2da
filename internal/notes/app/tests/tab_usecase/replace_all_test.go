package tabusecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notedeck/internal/notes/app"
	"notedeck/internal/notes/domain/entities"
)

func TestReplaceAll(t *testing.T) {
	ctx := testContext(t)

	const noteID = "11111111-1111-1111-1111-111111111111"
	const tabID = "22222222-2222-2222-2222-222222222222"

	existing := &entities.Note{ID: noteID, Title: "title", Content: "content"}

	t.Run("Success - set replaced wholesale with positions by index", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		tabRepo := new(mockTabRepository)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		tabRepo.On("ReplaceAll", mock.Anything, noteID, mock.MatchedBy(func(tabs []*entities.Tab) bool {
			return len(tabs) == 2 &&
				tabs[0].ID == tabID && tabs[0].Name == "Main" && tabs[0].Position == 0 &&
				tabs[1].Position == 1
		})).Return(2, nil).Once()

		uc := app.NewTabUseCase(tabRepo, noteRepo)
		count, err := uc.ReplaceAll(ctx, noteID, []app.TabInput{
			{ID: tabID, Name: "Main", Content: "draft"},
			{ID: "33333333-3333-3333-3333-333333333333", Name: "Links", Content: ""},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, count)

		tabRepo.AssertExpectations(t)
		noteRepo.AssertExpectations(t)
	})

	t.Run("Success - empty set normalized to one default tab", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		tabRepo := new(mockTabRepository)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		tabRepo.On("ReplaceAll", mock.Anything, noteID, mock.MatchedBy(func(tabs []*entities.Tab) bool {
			if len(tabs) != 1 {
				return false
			}
			_, err := uuid.Parse(tabs[0].ID)
			return err == nil && tabs[0].Name == entities.DefaultTabName && tabs[0].Content == ""
		})).Return(1, nil).Once()

		uc := app.NewTabUseCase(tabRepo, noteRepo)
		count, err := uc.ReplaceAll(ctx, noteID, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, count)

		tabRepo.AssertExpectations(t)
	})

	t.Run("Success - malformed tab id replaced, blank name defaulted, content truncated", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		tabRepo := new(mockTabRepository)

		oversized := strings.Repeat("a", entities.MaxTabContentLen+100)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		tabRepo.On("ReplaceAll", mock.Anything, noteID, mock.MatchedBy(func(tabs []*entities.Tab) bool {
			if len(tabs) != 1 {
				return false
			}
			_, err := uuid.Parse(tabs[0].ID)
			return err == nil && tabs[0].ID != "client-local-7" &&
				tabs[0].Name == entities.DefaultTabName &&
				len(tabs[0].Content) == entities.MaxTabContentLen
		})).Return(1, nil).Once()

		uc := app.NewTabUseCase(tabRepo, noteRepo)
		count, err := uc.ReplaceAll(ctx, noteID, []app.TabInput{
			{ID: "client-local-7", Name: "", Content: oversized},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, count)

		tabRepo.AssertExpectations(t)
	})

	t.Run("Error - missing note", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		tabRepo := new(mockTabRepository)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(nil, nil).Once()

		uc := app.NewTabUseCase(tabRepo, noteRepo)
		count, err := uc.ReplaceAll(ctx, noteID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrNotFound)
		assert.Zero(t, count)

		tabRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - store unavailable", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		tabRepo := new(mockTabRepository)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		tabRepo.On("ReplaceAll", mock.Anything, noteID, mock.Anything).
			Return(0, errors.New("connection refused")).Once()

		uc := app.NewTabUseCase(tabRepo, noteRepo)
		count, err := uc.ReplaceAll(ctx, noteID, []app.TabInput{{Name: "Main"}})

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrStoreUnavailable)
		assert.Zero(t, count)

		tabRepo.AssertExpectations(t)
	})
}

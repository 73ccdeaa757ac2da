package searchusecase_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notedeck/internal/notes/app"
	"notedeck/internal/notes/domain/entities"
)

func TestSearchAttachments(t *testing.T) {
	ctx := testContext(t)

	t.Run("Success - filenames matched without case", func(t *testing.T) {
		fileRepo := new(mockFileRepository)

		files := []*entities.File{
			{ID: "f1", NoteID: "n1", Filename: "Report-Final.pdf"},
			{ID: "f2", NoteID: "n1", Filename: "holiday.jpg"},
			{ID: "f3", NoteID: "n2", Filename: "quarterly report.xlsx"},
		}
		fileRepo.On("ListAll", mock.Anything).Return(files, nil).Once()

		uc := app.NewSearchUseCase(new(mockTabRepository), fileRepo)
		results, err := uc.SearchAttachments(ctx, "report")

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "f1", results[0].ID)
		assert.Equal(t, "f3", results[1].ID)

		fileRepo.AssertExpectations(t)
	})

	t.Run("Success - result capped", func(t *testing.T) {
		fileRepo := new(mockFileRepository)

		files := make([]*entities.File, 0, app.AttachmentResultCap+5)
		for i := 0; i < app.AttachmentResultCap+5; i++ {
			files = append(files, &entities.File{
				ID:       fmt.Sprintf("f%d", i),
				NoteID:   "n1",
				Filename: fmt.Sprintf("report-%d.pdf", i),
			})
		}
		fileRepo.On("ListAll", mock.Anything).Return(files, nil).Once()

		uc := app.NewSearchUseCase(new(mockTabRepository), fileRepo)
		results, err := uc.SearchAttachments(ctx, "report")

		require.NoError(t, err)
		assert.Len(t, results, app.AttachmentResultCap)
		assert.Equal(t, "f0", results[0].ID)

		fileRepo.AssertExpectations(t)
	})

	t.Run("Success - query below minimum length yields empty result without store access", func(t *testing.T) {
		fileRepo := new(mockFileRepository)

		uc := app.NewSearchUseCase(new(mockTabRepository), fileRepo)
		results, err := uc.SearchAttachments(ctx, "r")

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)

		fileRepo.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("Error - store unavailable", func(t *testing.T) {
		fileRepo := new(mockFileRepository)
		fileRepo.On("ListAll", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		uc := app.NewSearchUseCase(new(mockTabRepository), fileRepo)
		results, err := uc.SearchAttachments(ctx, "report")

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrStoreUnavailable)
		assert.Nil(t, results)

		fileRepo.AssertExpectations(t)
	})
}

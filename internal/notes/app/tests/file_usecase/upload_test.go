package fileusecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notedeck/internal/notes/app"
	"notedeck/internal/notes/domain/entities"
)

func TestUpload(t *testing.T) {
	ctx := testContext(t)

	const noteID = "11111111-1111-1111-1111-111111111111"

	existing := &entities.Note{ID: noteID, Title: "title", Content: "content"}
	payload := []byte("file contents")

	t.Run("Success - contents saved before metadata", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		fileRepo := new(mockFileRepository)
		blobs := new(mockBlobStore)

		stored := &entities.File{
			ID:       "f1",
			NoteID:   noteID,
			Filename: "plan v1.pdf",
			Path:     "uploads/123-plan-v1.pdf",
			Mimetype: "application/pdf",
			Size:     int64(len(payload)),
		}
		noteRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		blobs.On("Save", mock.Anything, "plan v1.pdf", payload).Return("uploads/123-plan-v1.pdf", nil).Once()
		fileRepo.On("Insert", mock.Anything, mock.MatchedBy(func(file *entities.File) bool {
			return file.NoteID == noteID && file.Path == "uploads/123-plan-v1.pdf" &&
				file.Mimetype == "application/pdf" && file.Size == int64(len(payload))
		})).Return(stored, nil).Once()

		uc := app.NewFileUseCase(fileRepo, noteRepo, blobs)
		file, err := uc.Upload(ctx, noteID, payload, "plan v1.pdf", "application/pdf")

		require.NoError(t, err)
		assert.Equal(t, stored, file)

		blobs.AssertExpectations(t)
		fileRepo.AssertExpectations(t)
	})

	t.Run("Success - blank mimetype defaulted", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		fileRepo := new(mockFileRepository)
		blobs := new(mockBlobStore)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		blobs.On("Save", mock.Anything, "dump.bin", payload).Return("uploads/123-dump.bin", nil).Once()
		fileRepo.On("Insert", mock.Anything, mock.MatchedBy(func(file *entities.File) bool {
			return file.Mimetype == "application/octet-stream"
		})).Return(&entities.File{ID: "f1"}, nil).Once()

		uc := app.NewFileUseCase(fileRepo, noteRepo, blobs)
		_, err := uc.Upload(ctx, noteID, payload, "dump.bin", "")

		require.NoError(t, err)

		fileRepo.AssertExpectations(t)
	})

	t.Run("Error - missing note", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		blobs := new(mockBlobStore)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(nil, nil).Once()

		uc := app.NewFileUseCase(new(mockFileRepository), noteRepo, blobs)
		file, err := uc.Upload(ctx, noteID, payload, "plan.pdf", "application/pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrNotFound)
		assert.Nil(t, file)

		blobs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - contents write failure", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		fileRepo := new(mockFileRepository)
		blobs := new(mockBlobStore)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		blobs.On("Save", mock.Anything, "plan.pdf", payload).Return("", errors.New("disk full")).Once()

		uc := app.NewFileUseCase(fileRepo, noteRepo, blobs)
		file, err := uc.Upload(ctx, noteID, payload, "plan.pdf", "application/pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrStorageIO)
		assert.Nil(t, file)

		fileRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Error - metadata insert failure removes orphaned contents", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		fileRepo := new(mockFileRepository)
		blobs := new(mockBlobStore)

		noteRepo.On("GetByID", mock.Anything, noteID).Return(existing, nil).Once()
		blobs.On("Save", mock.Anything, "plan.pdf", payload).Return("uploads/123-plan.pdf", nil).Once()
		fileRepo.On("Insert", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()
		blobs.On("Remove", mock.Anything, "uploads/123-plan.pdf").Return(nil).Once()

		uc := app.NewFileUseCase(fileRepo, noteRepo, blobs)
		file, err := uc.Upload(ctx, noteID, payload, "plan.pdf", "application/pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrStoreUnavailable)
		assert.Nil(t, file)

		blobs.AssertExpectations(t)
		fileRepo.AssertExpectations(t)
	})
}

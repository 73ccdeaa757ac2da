package tabrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/internal/notes/adapters/postgres"
	"notedeck/internal/notes/domain/entities"
	"notedeck/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestTabRepository_ReplaceAll(t *testing.T) {
	ctx := testContext(t)

	const noteID = "11111111-1111-1111-1111-111111111111"

	tabs := []*entities.Tab{
		{ID: "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", NoteID: noteID, Name: "Main", Content: "draft x"},
		{ID: "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", NoteID: noteID, Name: "Links", Content: ""},
	}

	t.Run("Удаление и вставка в одной транзакции", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM tabs .+").
			WithArgs(noteID).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec("INSERT INTO tabs .+").
			WithArgs(tabs[0].ID, noteID, tabs[0].Name, tabs[0].Content, 0).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("INSERT INTO tabs .+").
			WithArgs(tabs[1].ID, noteID, tabs[1].Name, tabs[1].Content, 1).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := postgres.NewTabRepository(mock)
		count, err := repo.ReplaceAll(ctx, noteID, tabs)

		require.NoError(t, err)
		assert.Equal(t, 2, count)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка вставки откатывает транзакцию", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM tabs .+").
			WithArgs(noteID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec("INSERT INTO tabs .+").
			WithArgs(tabs[0].ID, noteID, tabs[0].Name, tabs[0].Content, 0).
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		repo := postgres.NewTabRepository(mock)
		count, err := repo.ReplaceAll(ctx, noteID, tabs)

		assert.Zero(t, count)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to replace tabs")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка начала транзакции", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		repo := postgres.NewTabRepository(mock)
		count, err := repo.ReplaceAll(ctx, noteID, tabs)

		assert.Zero(t, count)
		require.Error(t, err)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

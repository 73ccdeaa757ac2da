package tabrepo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/internal/notes/adapters/postgres"
)

func tabColumns() []string {
	return []string{"id", "note_id", "name", "content", "position", "created_at", "updated_at"}
}

func TestTabRepository_ListByNote(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	const noteID = "11111111-1111-1111-1111-111111111111"

	t.Run("Вкладки в порядке позиций", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM tabs").
			WithArgs(noteID).
			WillReturnRows(
				pgxmock.NewRows(tabColumns()).
					AddRow("t1", noteID, "Main", "draft", 0, now, now).
					AddRow("t2", noteID, "Links", "", 1, now, now),
			)

		repo := postgres.NewTabRepository(mock)
		tabs, err := repo.ListByNote(ctx, noteID)

		require.NoError(t, err)
		require.Len(t, tabs, 2)
		assert.Equal(t, "Main", tabs[0].Name)
		assert.Equal(t, 0, tabs[0].Position)
		assert.Equal(t, "Links", tabs[1].Name)
		assert.Equal(t, 1, tabs[1].Position)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Заметка без вкладок дает пустой срез", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM tabs").
			WithArgs(noteID).
			WillReturnRows(pgxmock.NewRows(tabColumns()))

		repo := postgres.NewTabRepository(mock)
		tabs, err := repo.ListByNote(ctx, noteID)

		require.NoError(t, err)
		assert.NotNil(t, tabs)
		assert.Empty(t, tabs)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM tabs").
			WithArgs(noteID).
			WillReturnError(errors.New("connection refused"))

		repo := postgres.NewTabRepository(mock)
		tabs, err := repo.ListByNote(ctx, noteID)

		assert.Nil(t, tabs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list tabs")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

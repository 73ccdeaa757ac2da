package noterepo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/internal/notes/adapters/postgres"
)

func TestNoteRepository_List(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Успешный список заметок", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		first := `["project"]`
		mock.ExpectQuery("FROM notes").
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "title", "content", "tags_json", "created_at", "updated_at"}).
					AddRow("11111111-1111-1111-1111-111111111111", "Newest", "a", &first, now, now).
					AddRow("22222222-2222-2222-2222-222222222222", "Oldest", "b", (*string)(nil), now.Add(-time.Hour), now.Add(-time.Hour)),
			)

		repo := postgres.NewNoteRepository(mock)
		notes, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "Newest", notes[0].Title)
		assert.Equal(t, "Oldest", notes[1].Title)
		assert.Empty(t, notes[1].Tags)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустая таблица дает пустой срез", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM notes").
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "tags_json", "created_at", "updated_at"}))

		repo := postgres.NewNoteRepository(mock)
		notes, err := repo.List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM notes").
			WillReturnError(errors.New("connection refused"))

		repo := postgres.NewNoteRepository(mock)
		notes, err := repo.List(ctx)

		assert.Nil(t, notes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list notes")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

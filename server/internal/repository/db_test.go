package repository_test

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/inventory/server/internal/repository"
)

// newMockDB создает sqlx.DB поверх sqlmock. Ожидания проверяются при завершении теста.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "Не все ожидания мока были выполнены")
		_ = db.Close()
	})
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestNewPostgresDB(t *testing.T) {
	t.Run("Успешное подключение", func(t *testing.T) {
		// Этот тест требует запущенной PostgreSQL базы данных
		dsn := os.Getenv("DATABASE_DSN")
		if dsn == "" {
			t.Skip("Пропуск теста: переменная окружения DATABASE_DSN не установлена")
		}

		db, err := repository.NewPostgresDB(dsn)
		require.NoError(t, err)
		require.NotNil(t, db)
		require.NoError(t, repository.Migrate(context.Background(), db), "Схема должна применяться повторно")
		require.NoError(t, db.Close())
	})

	t.Run("Ошибка: Невалидный DSN", func(t *testing.T) {
		db, err := repository.NewPostgresDB("это точно не dsn")

		require.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "ошибка подключения к БД")
	})
}

func TestMigrate(t *testing.T) {
	t.Run("Схема применяется", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repository.Migrate(context.Background(), db))
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

		err := repository.Migrate(context.Background(), db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка применения схемы БД")
	})
}

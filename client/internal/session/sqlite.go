package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Драйвер SQLite без cgo
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS account (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	accessToken TEXT NOT NULL
)`

// SQLiteStore хранит токены в таблице account; текущий токен - строка с наибольшим id.
type SQLiteStore struct {
	db   *sqlx.DB
	lock *fileLock
}

// OpenSQLite открывает (и при необходимости создает) файл базы токенов.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("не указан путь к файлу сессии")
	}
	lock, err := acquireLock(path)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		_ = lock.release()
		return nil, fmt.Errorf("ошибка открытия базы сессии: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		_ = lock.release()
		return nil, fmt.Errorf("ошибка создания таблицы account: %w", err)
	}

	slog.Info("Хранилище сессии SQLite открыто", "path", path, "readOnly", lock.readOnly())
	return &SQLiteStore{db: db, lock: lock}, nil
}

// SaveToken добавляет токен и удаляет все более старые записи в одной транзакции.
func (s *SQLiteStore) SaveToken(ctx context.Context, token string) error {
	const op = "session.SaveToken"
	if s.lock.readOnly() {
		return storeErr(op, ErrReadOnly)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr(op, fmt.Errorf("начало транзакции: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO account (accessToken) VALUES (?)`, token)
	if err != nil {
		return storeErr(op, fmt.Errorf("запись токена: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storeErr(op, fmt.Errorf("получение id записи: %w", err))
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM account WHERE id < ?`, id); err != nil {
		return storeErr(op, fmt.Errorf("удаление старых токенов: %w", err))
	}
	if err = tx.Commit(); err != nil {
		return storeErr(op, fmt.Errorf("фиксация транзакции: %w", err))
	}
	return nil
}

// LatestToken возвращает последний сохраненный токен.
func (s *SQLiteStore) LatestToken(ctx context.Context) (string, bool, error) {
	var token string
	err := s.db.GetContext(ctx, &token, `SELECT accessToken FROM account ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storeErr("session.LatestToken", err)
	}
	return token, true, nil
}

// ClearTokens удаляет все токены.
func (s *SQLiteStore) ClearTokens(ctx context.Context) error {
	const op = "session.ClearTokens"
	if s.lock.readOnly() {
		return storeErr(op, ErrReadOnly)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM account`); err != nil {
		return storeErr(op, err)
	}
	return nil
}

// ReadOnly сообщает, что блокировку держит другой процесс.
func (s *SQLiteStore) ReadOnly() bool { return s.lock.readOnly() }

// Close закрывает базу и снимает блокировку.
func (s *SQLiteStore) Close() error {
	return errors.Join(s.db.Close(), s.lock.release())
}

// Package session хранит единственный bearer-токен пользователя между запусками клиента.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/maynagashev/inventory/client/internal/apperr"
)

// Поддерживаемые хранилища сессии.
const (
	BackendSQLite = "sqlite"
	BackendKDBX   = "kdbx"
)

// ErrReadOnly возвращается при записи в хранилище, блокировку которого держит другой процесс.
var ErrReadOnly = errors.New("хранилище сессии открыто только для чтения")

// Store - хранилище токена сессии.
// После SaveToken доступен ровно один токен (последний сохраненный).
type Store interface {
	SaveToken(ctx context.Context, token string) error
	LatestToken(ctx context.Context) (string, bool, error)
	ClearTokens(ctx context.Context) error
	// ReadOnly сообщает, что файл хранилища заблокирован другим процессом.
	ReadOnly() bool
	Close() error
}

// Config описывает, где и как хранить сессию.
type Config struct {
	Backend  string
	Path     string
	Password string // только для kdbx
}

// Open открывает хранилище выбранного типа.
func Open(cfg Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Backend {
	case BackendSQLite, "":
		store, err = OpenSQLite(cfg.Path)
	case BackendKDBX:
		store, err = OpenKeepass(cfg.Path, cfg.Password)
	default:
		return nil, fmt.Errorf("неизвестный тип хранилища сессии: %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// storeErr оборачивает ошибку ввода-вывода хранилища в AuthError.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &apperr.AuthError{Op: op, Err: err}
}

// fileLock - эксклюзивная блокировка рядом с файлом хранилища.
// Если блокировку держит другой процесс, хранилище работает только на чтение.
type fileLock struct {
	lock     *flock.Flock
	acquired bool
}

func acquireLock(path string) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога для '%s': %w", path, err)
	}
	lockPath := path + ".lock"
	l := flock.New(lockPath)
	acquired, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("ошибка блокировки файла %s: %w", lockPath, err)
	}
	if acquired {
		slog.Debug("Эксклюзивная блокировка файла получена", "lockPath", lockPath)
	} else {
		slog.Warn("Блокировка не получена (файл используется?). Read-Only.", "lockPath", lockPath)
	}
	return &fileLock{lock: l, acquired: acquired}, nil
}

func (l *fileLock) readOnly() bool {
	return !l.acquired
}

func (l *fileLock) release() error {
	if !l.acquired {
		return nil
	}
	l.acquired = false
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("ошибка при снятии блокировки файла: %w", err)
	}
	return nil
}

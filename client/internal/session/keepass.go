package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/tobischo/gokeepasslib/v3"

	"github.com/maynagashev/inventory/client/internal/kdbx"
)

// KeepassStore хранит токен в зашифрованном KDBX файле (CustomData метаданных).
type KeepassStore struct {
	mu       sync.Mutex
	path     string
	password string
	db       *gokeepasslib.Database
	lock     *fileLock
}

// OpenKeepass открывает существующий KDBX файл или создает новый при первой записи.
func OpenKeepass(path, password string) (*KeepassStore, error) {
	if path == "" {
		return nil, errors.New("не указан путь к файлу сессии")
	}
	if password == "" {
		return nil, errors.New("для хранилища kdbx нужен мастер-пароль")
	}
	lock, err := acquireLock(path)
	if err != nil {
		return nil, err
	}

	var db *gokeepasslib.Database
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		db, err = kdbx.OpenFile(path, password)
	case errors.Is(statErr, os.ErrNotExist):
		slog.Info("Файл KDBX не найден, будет создан при сохранении токена", "path", path)
		db, err = kdbx.NewDatabase(password)
	default:
		err = fmt.Errorf("ошибка доступа к файлу %s: %w", path, statErr)
	}
	if err != nil {
		_ = lock.release()
		return nil, err
	}

	return &KeepassStore{path: path, password: password, db: db, lock: lock}, nil
}

// SaveToken заменяет токен и сохраняет файл.
func (s *KeepassStore) SaveToken(_ context.Context, token string) error {
	const op = "session.SaveToken"
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lock.readOnly() {
		return storeErr(op, ErrReadOnly)
	}
	if err := kdbx.SaveAuthToken(s.db, token); err != nil {
		return storeErr(op, err)
	}
	return storeErr(op, kdbx.SaveFile(s.db, s.path, s.password))
}

// LatestToken возвращает токен из загруженной базы. В режиме только для чтения
// файл перечитывается при каждом вызове: его может изменить процесс-владелец.
func (s *KeepassStore) LatestToken(_ context.Context) (string, bool, error) {
	const op = "session.LatestToken"
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lock.readOnly() {
		if err := s.reload(); err != nil {
			return "", false, storeErr(op, err)
		}
	}
	token, ok, err := kdbx.LoadAuthToken(s.db)
	if err != nil {
		return "", false, storeErr(op, err)
	}
	return token, ok, nil
}

// reload перечитывает файл с диска. Отсутствующий файл означает пустую сессию.
func (s *KeepassStore) reload() error {
	db, err := kdbx.OpenFile(s.path, s.password)
	if errors.Is(err, os.ErrNotExist) {
		db, err = kdbx.NewDatabase(s.password)
	}
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// ClearTokens удаляет токен и сохраняет файл.
func (s *KeepassStore) ClearTokens(_ context.Context) error {
	const op = "session.ClearTokens"
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lock.readOnly() {
		return storeErr(op, ErrReadOnly)
	}
	if err := kdbx.ClearAuthToken(s.db); err != nil {
		return storeErr(op, err)
	}
	return storeErr(op, kdbx.SaveFile(s.db, s.path, s.password))
}

// ReadOnly сообщает, что блокировку файла держит другой процесс.
func (s *KeepassStore) ReadOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock.readOnly()
}

// Close снимает блокировку файла.
func (s *KeepassStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock.release()
}

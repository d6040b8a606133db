// Package kdbx хранит данные сессии в зашифрованном файле KeePass (KDBX).
package kdbx

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gokeepasslib "github.com/tobischo/gokeepasslib/v3"
)

const (
	databaseName  = "Inventory Session"
	rootGroupName = "Inventory"
	dirPerm       = 0700
)

// NewDatabase создает пустую базу KDBX с одной корневой группой.
func NewDatabase(password string) (*gokeepasslib.Database, error) {
	if password == "" {
		return nil, errors.New("пароль не может быть пустым")
	}
	db := gokeepasslib.NewDatabase()
	db.Credentials = gokeepasslib.NewPasswordCredentials(password)
	db.Content = gokeepasslib.NewContent()
	db.Content.Meta.DatabaseName = databaseName
	db.Content.Meta.CustomData = []gokeepasslib.CustomData{}

	rootGroup := gokeepasslib.NewGroup()
	rootGroup.Name = rootGroupName
	db.Content.Root = &gokeepasslib.RootData{
		Groups: []gokeepasslib.Group{rootGroup},
	}
	return db, nil
}

// OpenFile открывает и дешифрует KDBX файл по указанному пути и паролю.
func OpenFile(filePath string, password string) (*gokeepasslib.Database, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла '%s': %w", filePath, err)
	}
	defer file.Close()

	db := gokeepasslib.NewDatabase()
	db.Credentials = gokeepasslib.NewPasswordCredentials(password)

	if err = gokeepasslib.NewDecoder(file).Decode(db); err != nil {
		return nil, fmt.Errorf("ошибка дешифрования файла '%s': %w", filePath, err)
	}

	// Разблокируем защищенные значения
	if err = db.UnlockProtectedEntries(); err != nil {
		return nil, fmt.Errorf("ошибка разблокировки защищенных полей: %w", err)
	}

	return db, nil
}

// SaveFile кодирует и атомарно сохраняет базу: запись во временный файл и rename.
func SaveFile(db *gokeepasslib.Database, filePath string, password string) error {
	if db == nil {
		return errors.New("база данных не инициализирована (nil)")
	}

	if db.Credentials == nil {
		if password == "" {
			return errors.New("пароль не может быть пустым при сохранении")
		}
		db.Credentials = gokeepasslib.NewPasswordCredentials(password)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), dirPerm); err != nil {
		return fmt.Errorf("ошибка создания каталога для '%s': %w", filePath, err)
	}

	// Перед сохранением защищенные поля нужно заблокировать
	if err := db.LockProtectedEntries(); err != nil {
		slog.Warn("Не удалось заблокировать поля перед сохранением", "error", err)
	}
	defer func() {
		if err := db.UnlockProtectedEntries(); err != nil {
			slog.Warn("Не удалось разблокировать поля после сохранения", "error", err)
		}
	}()

	tmp, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("ошибка создания/открытия файла '%s' для записи: %w", filePath, err)
	}
	tmpPath := tmp.Name()

	if err = gokeepasslib.NewEncoder(tmp).Encode(db); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка кодирования и записи БД в файл '%s': %w", filePath, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка закрытия временного файла: %w", err)
	}
	if err = os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка замены файла '%s': %w", filePath, err)
	}
	return nil
}

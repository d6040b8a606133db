package kdbx

import (
	"errors"
	"log/slog"
	"time"

	"github.com/tobischo/gokeepasslib/v3"
	"github.com/tobischo/gokeepasslib/v3/wrappers"
)

// CustomDataKeyAuthToken - ключ для хранения токена доступа в метаданных KDBX.
const CustomDataKeyAuthToken = "InventoryAccessToken" //nolint:gosec // Это имя ключа, а не сам токен

var errNoMeta = errors.New("база данных, ее содержимое или метаданные не инициализированы")

// setCustomDataValue обновляет или добавляет значение в слайс CustomData.
func setCustomDataValue(customDataSlice []gokeepasslib.CustomData, key, value string) []gokeepasslib.CustomData {
	for i := range customDataSlice {
		if customDataSlice[i].Key == key {
			customDataSlice[i].Value = value
			slog.Debug("Обновлено значение CustomData", "key", key)
			return customDataSlice
		}
	}
	slog.Debug("Добавлено новое значение CustomData", "key", key)
	return append(customDataSlice, gokeepasslib.CustomData{Key: key, Value: value})
}

// removeCustomDataValue удаляет все значения с ключом key.
func removeCustomDataValue(customDataSlice []gokeepasslib.CustomData, key string) []gokeepasslib.CustomData {
	newSlice := make([]gokeepasslib.CustomData, 0, len(customDataSlice))
	for _, item := range customDataSlice {
		if item.Key != key {
			newSlice = append(newSlice, item)
		}
	}
	if len(newSlice) != len(customDataSlice) {
		slog.Debug("Удалено значение из CustomData", "key", key)
	}
	return newSlice
}

// SaveAuthToken записывает токен, заменяя предыдущий. Хранится не более одного токена.
func SaveAuthToken(db *gokeepasslib.Database, token string) error {
	if db == nil || db.Content == nil || db.Content.Meta == nil {
		return errNoMeta
	}
	meta := db.Content.Meta
	meta.CustomData = setCustomDataValue(meta.CustomData, CustomDataKeyAuthToken, token)
	touchRootGroup(db)
	return nil
}

// LoadAuthToken возвращает сохраненный токен. ok=false, если токена нет.
func LoadAuthToken(db *gokeepasslib.Database) (string, bool, error) {
	if db == nil || db.Content == nil || db.Content.Meta == nil {
		return "", false, errNoMeta
	}
	for _, item := range db.Content.Meta.CustomData {
		if item.Key == CustomDataKeyAuthToken && item.Value != "" {
			return item.Value, true, nil
		}
	}
	slog.Debug("Токен аутентификации не найден в CustomData KDBX")
	return "", false, nil
}

// ClearAuthToken удаляет токен из метаданных.
func ClearAuthToken(db *gokeepasslib.Database) error {
	if db == nil || db.Content == nil || db.Content.Meta == nil {
		return errNoMeta
	}
	meta := db.Content.Meta
	meta.CustomData = removeCustomDataValue(meta.CustomData, CustomDataKeyAuthToken)
	touchRootGroup(db)
	return nil
}

// touchRootGroup обновляет время модификации корневой группы.
func touchRootGroup(db *gokeepasslib.Database) {
	if db.Content.Root == nil || len(db.Content.Root.Groups) == 0 {
		slog.Warn("Не удалось обновить LastModificationTime: корневая группа отсутствует")
		return
	}
	modTime := wrappers.TimeWrapper{Time: time.Now().UTC()}
	db.Content.Root.Groups[0].Times.LastModificationTime = &modTime
}

// Package config собирает настройки клиента: файл ini, затем переменные окружения, затем флаги.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/ini.v1"

	"github.com/maynagashev/inventory/client/internal/api"
	"github.com/maynagashev/inventory/client/internal/session"
)

// Имена переменных окружения.
const (
	EnvServerURL       = "INVENTORY_SERVER_URL"
	EnvSessionBackend  = "INVENTORY_SESSION_BACKEND"
	EnvSessionPath     = "INVENTORY_SESSION_PATH"
	EnvSessionPassword = "INVENTORY_SESSION_PASSWORD" //nolint:gosec // Имя переменной, а не пароль
)

// Имена флагов.
const (
	FlagConfig          = "config"
	FlagServerURL       = "server-url"
	FlagSessionBackend  = "session-backend"
	FlagSessionPath     = "session-path"
	FlagSessionPassword = "session-password"
	FlagDebug           = "debug"
)

const appDir = "inventory"

// Config - итоговые настройки клиента.
type Config struct {
	ServerURL string
	Session   session.Config
	Debug     bool
}

// fileConfig - структура файла client.ini.
type fileConfig struct {
	Server struct {
		URL string `ini:"url"`
	} `ini:"server"`
	Session struct {
		Backend  string `ini:"backend"`
		Path     string `ini:"path"`
		Password string `ini:"password"`
	} `ini:"session"`
}

// DefaultConfigPath возвращает $XDG_CONFIG_HOME/inventory/client.ini.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "client.ini")
	}
	return filepath.Join(dir, appDir, "client.ini")
}

// DefaultSessionPath возвращает путь к файлу сессии по умолчанию для выбранного хранилища.
func DefaultSessionPath(backend string) string {
	name := "session.db"
	if backend == session.BackendKDBX {
		name = "session.kdbx"
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, appDir, name)
}

// Default возвращает настройки по умолчанию.
func Default() Config {
	return Config{
		ServerURL: api.DefaultBaseURL,
		Session: session.Config{
			Backend: session.BackendSQLite,
		},
	}
}

// RegisterFlags объявляет флаги клиента в наборе fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, DefaultConfigPath(), "Путь к файлу настроек (ini)")
	fs.String(FlagServerURL, "", "Базовый URL API (например, "+api.DefaultBaseURL+")")
	fs.String(FlagSessionBackend, "", "Хранилище сессии: sqlite или kdbx")
	fs.String(FlagSessionPath, "", "Путь к файлу сессии")
	fs.String(FlagSessionPassword, "", "Мастер-пароль для хранилища kdbx")
	fs.Bool(FlagDebug, false, "Подробное логирование")
}

// Load собирает настройки. Отсутствующий файл настроек не ошибка.
// Флаги учитываются, только если заданы явно.
func Load(fs *pflag.FlagSet) (Config, error) {
	cfg := Default()

	path := DefaultConfigPath()
	if fs != nil {
		if p, err := fs.GetString(FlagConfig); err == nil && p != "" {
			path = p
		}
	}
	if err := applyFile(&cfg, path); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	if fs != nil {
		if err := applyFlags(&cfg, fs); err != nil {
			return Config{}, err
		}
	}

	if cfg.Session.Path == "" {
		cfg.Session.Path = DefaultSessionPath(cfg.Session.Backend)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("не задан URL сервера")
	}
	switch c.Session.Backend {
	case session.BackendSQLite:
	case session.BackendKDBX:
		if c.Session.Password == "" {
			return fmt.Errorf("для хранилища kdbx нужен пароль (--%s или %s)", FlagSessionPassword, EnvSessionPassword)
		}
	default:
		return fmt.Errorf("неизвестное хранилище сессии %q", c.Session.Backend)
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("Файл настроек не найден, используются значения по умолчанию", "path", path)
		return nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла настроек '%s': %w", path, err)
	}
	var fc fileConfig
	if err = file.MapTo(&fc); err != nil {
		return fmt.Errorf("ошибка разбора файла настроек '%s': %w", path, err)
	}
	setIfNotEmpty(&cfg.ServerURL, fc.Server.URL)
	setIfNotEmpty(&cfg.Session.Backend, fc.Session.Backend)
	setIfNotEmpty(&cfg.Session.Path, fc.Session.Path)
	setIfNotEmpty(&cfg.Session.Password, fc.Session.Password)
	slog.Debug("Файл настроек загружен", "path", path)
	return nil
}

func applyEnv(cfg *Config) {
	setIfNotEmpty(&cfg.ServerURL, os.Getenv(EnvServerURL))
	setIfNotEmpty(&cfg.Session.Backend, os.Getenv(EnvSessionBackend))
	setIfNotEmpty(&cfg.Session.Path, os.Getenv(EnvSessionPath))
	setIfNotEmpty(&cfg.Session.Password, os.Getenv(EnvSessionPassword))
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	for name, dst := range map[string]*string{
		FlagServerURL:       &cfg.ServerURL,
		FlagSessionBackend:  &cfg.Session.Backend,
		FlagSessionPath:     &cfg.Session.Path,
		FlagSessionPassword: &cfg.Session.Password,
	} {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return fmt.Errorf("флаг --%s: %w", name, err)
		}
		*dst = v
	}
	if fs.Lookup(FlagDebug) != nil {
		debug, err := fs.GetBool(FlagDebug)
		if err != nil {
			return fmt.Errorf("флаг --%s: %w", FlagDebug, err)
		}
		cfg.Debug = debug
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

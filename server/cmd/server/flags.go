package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

const (
	defaultServerPort = "8000"

	// Переменные окружения.
	envServerPort  = "SERVER_PORT"
	envTLSCertFile = "TLS_CERT_FILE"
	envTLSKeyFile  = "TLS_KEY_FILE"
	envDatabaseDSN = "DATABASE_DSN"
	envJWTSecret   = "JWT_SECRET" //nolint:gosec // Это имя переменной окружения, а не секрет
)

// config хранит конфигурацию сервера.
type config struct {
	Port        string
	CertFile    string
	KeyFile     string
	DatabaseDSN string
	JWTSecret   string
}

// TLSEnabled сообщает, заданы ли сертификат и ключ.
func (c *config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// lookupEnv записывает в dst значение переменной окружения, если флаг не задан.
func lookupEnv(dst *string, key string) {
	if *dst != "" {
		return
	}
	if value, ok := os.LookupEnv(key); ok {
		*dst = value
	}
}

// parseFlags разбирает флаги и переменные окружения, возвращает config или ошибку.
// Флаги имеют приоритет над переменными окружения.
func parseFlags() (*config, error) {
	cfg := &config{}

	flag.StringVar(&cfg.Port, "port", "",
		fmt.Sprintf("Порт HTTP-сервера (env: %s, default: %s)", envServerPort, defaultServerPort))
	flag.StringVar(&cfg.CertFile, "cert-file", "",
		fmt.Sprintf("Путь к файлу TLS-сертификата (env: %s)", envTLSCertFile))
	flag.StringVar(&cfg.KeyFile, "key-file", "",
		fmt.Sprintf("Путь к файлу TLS-ключа (env: %s)", envTLSKeyFile))
	flag.StringVar(&cfg.DatabaseDSN, "database-dsn", "",
		fmt.Sprintf("Строка подключения к базе данных (env: %s)", envDatabaseDSN))
	flag.StringVar(&cfg.JWTSecret, "jwt-secret", "",
		fmt.Sprintf("Ключ подписи JWT (env: %s)", envJWTSecret))

	flag.Parse()

	lookupEnv(&cfg.Port, envServerPort)
	lookupEnv(&cfg.CertFile, envTLSCertFile)
	lookupEnv(&cfg.KeyFile, envTLSKeyFile)
	lookupEnv(&cfg.DatabaseDSN, envDatabaseDSN)
	lookupEnv(&cfg.JWTSecret, envJWTSecret)
	if cfg.Port == "" {
		cfg.Port = defaultServerPort
	}

	// TLS включается только парой сертификат + ключ
	if (cfg.CertFile == "") != (cfg.KeyFile == "") {
		return nil, errors.New("для TLS нужны оба файла: --cert-file (" + envTLSCertFile +
			") и --key-file (" + envTLSKeyFile + ")")
	}
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("не указана строка подключения к БД (--database-dsn или " + envDatabaseDSN + ")")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("не указан ключ подписи JWT (--jwt-secret или " + envJWTSecret + ")")
	}

	return cfg, nil
}

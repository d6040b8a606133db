package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/maynagashev/inventory/client/internal/api"
	"github.com/maynagashev/inventory/client/internal/config"
	"github.com/maynagashev/inventory/client/internal/session"
	"github.com/maynagashev/inventory/client/internal/tui"
)

// app - зависимости, общие для всех команд. Заполняются в PersistentPreRunE.
type app struct {
	logDir   string
	out      io.Writer
	cfg      config.Config
	sessions session.Store
	api      api.Client
	logFile  *os.File
}

func newApp() *app {
	return &app{logDir: logDir, out: os.Stdout}
}

// newRootCmd собирает корневую команду. Без подкоманды запускается TUI.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "inventory",
		Short:         "Клиент учета инвентаря",
		Long:          "Клиент учета инвентаря: категории и арендуемые предметы на удаленном сервере.",
		Version:       version,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Start(cmd.Context(), tui.Options{
				API:      a.api,
				Sessions: a.sessions,
				Debug:    a.cfg.Debug,
				ReadOnly: a.sessions.ReadOnly(),
			})
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("Inventory Client\nVersion: %s\nBuild Date: %s\nCommit Hash: %s\n",
		version, buildDate, commitHash))
	root.SetOut(a.out)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newAccountCmd(a),
		newCategoriesCmd(a),
		newItemsCmd(a),
	)
	return root
}

// setup загружает настройки, настраивает лог и открывает хранилище сессии.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}
	a.cfg = cfg

	if a.logFile, err = setupLogging(a.logDir, cfg.Debug); err != nil {
		return err
	}
	slog.Info("Запуск клиента",
		"version", version,
		"command", cmd.Name(),
		"server_url", cfg.ServerURL,
		"session_backend", cfg.Session.Backend,
		"session_path", cfg.Session.Path,
	)

	if a.sessions, err = session.Open(cfg.Session); err != nil {
		return fmt.Errorf("ошибка открытия хранилища сессии: %w", err)
	}
	if a.sessions.ReadOnly() {
		slog.Warn("Хранилище сессии занято другим процессом, вход и выход недоступны")
	}
	a.api = api.NewHTTPClient(cfg.ServerURL)
	return nil
}

// teardown закрывает хранилище сессии и лог. Вызывается и после ошибки команды.
func (a *app) teardown() error {
	var closeErr error
	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			slog.Error("Ошибка закрытия хранилища сессии", "error", err)
			closeErr = err
		}
		a.sessions = nil
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
	return closeErr
}

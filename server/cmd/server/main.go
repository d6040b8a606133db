package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maynagashev/inventory/server/internal/handlers"
	appmiddleware "github.com/maynagashev/inventory/server/internal/middleware"
	"github.com/maynagashev/inventory/server/internal/repository"
	"github.com/maynagashev/inventory/server/internal/services"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 30 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	startupTimeout         = 30 * time.Second
)

// newPostgresDB подменяется в тестах.
var newPostgresDB = repository.NewPostgresDB

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	db               *sqlx.DB
	registry         *prometheus.Registry
	metrics          *appmiddleware.Metrics
	authService      services.AuthService
	authHandler      *handlers.AuthHandler
	inventoryHandler *handlers.InventoryHandler
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err)
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	log.Println("Запуск сервера инвентаря...")

	cfg, err := parseFlags()
	if err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ошибка инициализации зависимостей: %w", err)
	}
	defer func() {
		if closeErr := deps.db.Close(); closeErr != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", closeErr)
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      setupRouter(deps),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLSEnabled() {
			log.Printf("Запуск HTTPS-сервера на порту %s (сертификат: %s)", cfg.Port, cfg.CertFile)
			errCh <- server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
			return
		}
		log.Printf("Запуск HTTP-сервера на порту %s", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	return nil
}

// setupDependencies подключается к БД, применяет схему и собирает слои сервера.
func setupDependencies(ctx context.Context, cfg *config) (*dependencies, error) {
	db, err := newPostgresDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации БД: %w", err)
	}

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	if err = repository.Migrate(startCtx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	tokenRepo := repository.NewPostgresRevokedTokenRepository(db)
	// Чистим отозванные токены с истекшим сроком
	if _, err = tokenRepo.DeleteExpiredTokens(startCtx, time.Now()); err != nil {
		log.Printf("Не удалось очистить отозванные токены: %v", err)
	}

	authService := services.NewAuthService(repository.NewPostgresUserRepository(db), tokenRepo, cfg.JWTSecret)
	inventoryService := services.NewInventoryService(
		repository.NewPostgresCategoryRepository(db),
		repository.NewPostgresRentalItemRepository(db),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &dependencies{
		db:               db,
		registry:         reg,
		metrics:          appmiddleware.NewMetrics(reg),
		authService:      authService,
		authHandler:      handlers.NewAuthHandler(authService),
		inventoryHandler: handlers.NewInventoryHandler(inventoryService),
	}, nil
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(deps *dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(deps.metrics.Handler)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}))

	auth := deps.authHandler
	inv := deps.inventoryHandler
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Authenticator(deps.authService))
			r.Post("/auth/logout", auth.Logout)
			r.Get("/auth/account", auth.Account)
		})

		r.Get("/category/", inv.ListCategories)
		r.Post("/category/", inv.CreateCategory)
		r.Get("/category/{categoryId}", inv.GetCategory)
		r.Put("/category/{categoryId}", inv.UpdateCategory)
		r.Delete("/category/{categoryId}", inv.DeleteCategory)
		r.Get("/category/{categoryId}/items/", inv.ListRentalItems)
		r.Post("/category/{categoryId}/items/", inv.CreateRentalItem)

		r.Get("/rentalitem/{rentalItemId}/", inv.GetRentalItem)
		r.Put("/rentalitem/{rentalItemId}/", inv.UpdateRentalItem)
		r.Delete("/rentalitem/{rentalItemId}/", inv.DeleteRentalItem)
	})
	return r
}

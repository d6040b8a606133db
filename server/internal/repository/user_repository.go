package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/maynagashev/inventory/models"
)

// UserRepository - учетные записи, от имени которых работают клиенты инвентаря.
type UserRepository interface {
	// CreateUser сохраняет пользователя и дописывает в него id и временные метки.
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

const userColumns = `id, username, password_hash, created_at, updated_at`

type postgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository создает репозиторий пользователей для PostgreSQL.
func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, password_hash) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query, user.Username, user.PasswordHash)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if pgCode(err) == pgUniqueViolationCode {
			return 0, ErrUsernameTaken
		}
		log.Printf("[Repo] Ошибка создания пользователя '%s': %v", user.Username, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание пользователя: %w", err)
	}
	log.Printf("[Repo] Создан пользователь %d", user.ID)
	return user.ID, nil
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Printf("[Repo] Ошибка поиска пользователя '%s': %v", username, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}
	return &user, nil
}

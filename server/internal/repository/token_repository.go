package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
)

// RevokedTokenRepository хранит идентификаторы (jti) токенов, отозванных при выходе.
type RevokedTokenRepository interface {
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	// DeleteExpiredTokens удаляет записи о токенах, срок которых уже истек.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

type postgresRevokedTokenRepository struct {
	db *sqlx.DB
}

// NewPostgresRevokedTokenRepository создает репозиторий отозванных токенов для PostgreSQL.
func NewPostgresRevokedTokenRepository(db *sqlx.DB) RevokedTokenRepository {
	return &postgresRevokedTokenRepository{db: db}
}

func (r *postgresRevokedTokenRepository) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	query := `INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2) ON CONFLICT (jti) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, jti, expiresAt); err != nil {
		log.Printf("[Repo] Ошибка отзыва токена %s: %v", jti, err)
		return fmt.Errorf("ошибка выполнения запроса на отзыв токена: %w", err)
	}
	return nil
}

func (r *postgresRevokedTokenRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti=$1)`
	var revoked bool
	if err := r.db.GetContext(ctx, &revoked, query, jti); err != nil {
		return false, fmt.Errorf("ошибка проверки отзыва токена: %w", err)
	}
	return revoked, nil
}

func (r *postgresRevokedTokenRepository) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления истекших токенов: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения числа удаленных строк: %w", err)
	}
	if n > 0 {
		log.Printf("[Repo] Удалено истекших отозванных токенов: %d", n)
	}
	return n, nil
}

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

// CategoryRepository - хранилище категорий.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type postgresCategoryRepository struct {
	db *sqlx.DB
}

// NewPostgresCategoryRepository создает репозиторий категорий для PostgreSQL.
func NewPostgresCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT category_id, category_name FROM categories ORDER BY category_id`
	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		log.Printf("[Repo] Ошибка получения списка категорий: %v", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение категорий: %w", err)
	}
	return categories, nil
}

func (r *postgresCategoryRepository) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT category_id, category_name FROM categories WHERE category_id=$1`
	var c models.Category
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Printf("[Repo] Ошибка получения категории %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение категории: %w", err)
	}
	return &c, nil
}

func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	query := `INSERT INTO categories (category_name) VALUES ($1) RETURNING category_id, category_name`
	var c models.Category
	if err := r.db.GetContext(ctx, &c, query, name); err != nil {
		log.Printf("[Repo] Ошибка создания категории '%s': %v", name, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на создание категории: %w", err)
	}
	log.Printf("[Repo] Категория '%s' создана с ID %d", c.Name, c.ID)
	return &c, nil
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error) {
	query := `UPDATE categories SET category_name=$1 WHERE category_id=$2 RETURNING category_id, category_name`
	var c models.Category
	if err := r.db.GetContext(ctx, &c, query, name, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Printf("[Repo] Ошибка обновления категории %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на обновление категории: %w", err)
	}
	return &c, nil
}

// DeleteCategory удаляет категорию вместе с ее предметами (ON DELETE CASCADE).
func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE category_id=$1`
	return execAffectingOne(ctx, r.db, "категории", query, id)
}

// execAffectingOne выполняет запрос, который должен затронуть ровно одну строку с данным id.
func execAffectingOne(ctx context.Context, db *sqlx.DB, what, query string, id int64) error {
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		log.Printf("[Repo] Ошибка удаления %s %d: %v", what, id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения числа удаленных строк: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	log.Printf("[Repo] Удаление %s %d выполнено", what, id)
	return nil
}

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

// RentalItemRepository - хранилище арендуемых предметов.
type RentalItemRepository interface {
	ListRentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error)
	GetRentalItem(ctx context.Context, id int64) (*models.RentalItem, error)
	// CreateRentalItem возвращает ErrNotFound, если нет категории или автора.
	CreateRentalItem(ctx context.Context, item *models.RentalItem) (*models.RentalItem, error)
	UpdateRentalItem(ctx context.Context, id int64, name string) (*models.RentalItem, error)
	DeleteRentalItem(ctx context.Context, id int64) error
}

const rentalItemColumns = `rental_item_id, rental_item_name, category_id, created_by_user_id`

type postgresRentalItemRepository struct {
	db *sqlx.DB
}

// NewPostgresRentalItemRepository создает репозиторий предметов для PostgreSQL.
func NewPostgresRentalItemRepository(db *sqlx.DB) RentalItemRepository {
	return &postgresRentalItemRepository{db: db}
}

func (r *postgresRentalItemRepository) ListRentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error) {
	query := `SELECT ` + rentalItemColumns + ` FROM rental_items WHERE category_id=$1 ORDER BY rental_item_id`
	items := []models.RentalItem{}
	if err := r.db.SelectContext(ctx, &items, query, categoryID); err != nil {
		log.Printf("[Repo] Ошибка получения предметов категории %d: %v", categoryID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение предметов: %w", err)
	}
	return items, nil
}

func (r *postgresRentalItemRepository) GetRentalItem(ctx context.Context, id int64) (*models.RentalItem, error) {
	query := `SELECT ` + rentalItemColumns + ` FROM rental_items WHERE rental_item_id=$1`
	var it models.RentalItem
	if err := r.db.GetContext(ctx, &it, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Printf("[Repo] Ошибка получения предмета %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение предмета: %w", err)
	}
	return &it, nil
}

func (r *postgresRentalItemRepository) CreateRentalItem(
	ctx context.Context,
	item *models.RentalItem,
) (*models.RentalItem, error) {
	query := `INSERT INTO rental_items (rental_item_name, category_id, created_by_user_id) VALUES ($1, $2, $3) ` +
		`RETURNING ` + rentalItemColumns
	var it models.RentalItem
	err := r.db.GetContext(ctx, &it, query, item.Name, item.CategoryID, item.CreatedByUserID)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolationCode {
			log.Printf("[Repo] Предмет '%s' не создан: нет категории %d или автора", item.Name, item.CategoryID)
			return nil, ErrNotFound
		}
		log.Printf("[Repo] Ошибка создания предмета '%s': %v", item.Name, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на создание предмета: %w", err)
	}
	log.Printf("[Repo] Предмет '%s' создан с ID %d в категории %d", it.Name, it.ID, it.CategoryID)
	return &it, nil
}

func (r *postgresRentalItemRepository) UpdateRentalItem(
	ctx context.Context,
	id int64,
	name string,
) (*models.RentalItem, error) {
	query := `UPDATE rental_items SET rental_item_name=$1 WHERE rental_item_id=$2 RETURNING ` + rentalItemColumns
	var it models.RentalItem
	if err := r.db.GetContext(ctx, &it, query, name, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Printf("[Repo] Ошибка обновления предмета %d: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на обновление предмета: %w", err)
	}
	return &it, nil
}

func (r *postgresRentalItemRepository) DeleteRentalItem(ctx context.Context, id int64) error {
	query := `DELETE FROM rental_items WHERE rental_item_id=$1`
	return execAffectingOne(ctx, r.db, "предмета", query, id)
}

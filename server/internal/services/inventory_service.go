package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/maynagashev/inventory/models"
	"github.com/maynagashev/inventory/server/internal/repository"
)

// Максимальная длина имени категории или предмета (VARCHAR(255) в схеме).
const maxNameLength = 255

// InventoryService - категории и арендуемые предметы.
type InventoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListRentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error)
	GetRentalItem(ctx context.Context, id int64) (*models.RentalItem, error)
	// CreateRentalItem создает предмет. createdBy == 0 - автор неизвестен.
	CreateRentalItem(ctx context.Context, categoryID int64, name string, createdBy int64) (*models.RentalItem, error)
	UpdateRentalItem(ctx context.Context, id int64, name string) (*models.RentalItem, error)
	DeleteRentalItem(ctx context.Context, id int64) error
}

var _ InventoryService = (*inventoryService)(nil)

type inventoryService struct {
	categories repository.CategoryRepository
	items      repository.RentalItemRepository
}

// NewInventoryService создает сервис инвентаря.
func NewInventoryService(
	categories repository.CategoryRepository,
	items repository.RentalItemRepository,
) InventoryService {
	return &inventoryService{categories: categories, items: items}
}

func (s *inventoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	list, err := s.categories.ListCategories(ctx)
	return list, mapRepoErr(err)
}

func (s *inventoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.categories.GetCategory(ctx, id)
	return c, mapRepoErr(err)
}

func (s *inventoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	c, err := s.categories.CreateCategory(ctx, name)
	return c, mapRepoErr(err)
}

func (s *inventoryService) UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	c, err := s.categories.UpdateCategory(ctx, id, name)
	return c, mapRepoErr(err)
}

func (s *inventoryService) DeleteCategory(ctx context.Context, id int64) error {
	return mapRepoErr(s.categories.DeleteCategory(ctx, id))
}

// ListRentalItems возвращает ErrNotFound для несуществующей категории.
func (s *inventoryService) ListRentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error) {
	if _, err := s.categories.GetCategory(ctx, categoryID); err != nil {
		return nil, mapRepoErr(err)
	}
	list, err := s.items.ListRentalItems(ctx, categoryID)
	return list, mapRepoErr(err)
}

func (s *inventoryService) GetRentalItem(ctx context.Context, id int64) (*models.RentalItem, error) {
	it, err := s.items.GetRentalItem(ctx, id)
	return it, mapRepoErr(err)
}

func (s *inventoryService) CreateRentalItem(
	ctx context.Context,
	categoryID int64,
	name string,
	createdBy int64,
) (*models.RentalItem, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	item := &models.RentalItem{Name: name, CategoryID: categoryID}
	if createdBy != 0 {
		item.CreatedByUserID = &createdBy
	}
	it, err := s.items.CreateRentalItem(ctx, item)
	return it, mapRepoErr(err)
}

func (s *inventoryService) UpdateRentalItem(ctx context.Context, id int64, name string) (*models.RentalItem, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	it, err := s.items.UpdateRentalItem(ctx, id, name)
	return it, mapRepoErr(err)
}

func (s *inventoryService) DeleteRentalItem(ctx context.Context, id int64) error {
	return mapRepoErr(s.items.DeleteRentalItem(ctx, id))
}

// normalizeName обрезает пробелы и проверяет длину имени.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// mapRepoErr переводит ошибки репозитория в ошибки сервиса.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		log.Printf("[InventoryService] Ошибка репозитория: %v", err)
		return fmt.Errorf("внутренняя ошибка сервера: %w", err)
	}
}

// Ошибки сервиса инвентаря.
var (
	ErrNotFound    = errors.New("не найдено")
	ErrInvalidName = errors.New("имя должно быть непустым и не длиннее 255 символов")
)

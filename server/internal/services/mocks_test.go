package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/inventory/models"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	return m.Called(ctx, jti, expiresAt).Error(0)
}

func (m *mockTokenRepo) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Category)
	return list, args.Error(1)
}

func (m *mockCategoryRepo) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategoryRepo) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategoryRepo) UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error) {
	args := m.Called(ctx, id, name)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategoryRepo) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRentalItemRepo struct{ mock.Mock }

func (m *mockRentalItemRepo) ListRentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error) {
	args := m.Called(ctx, categoryID)
	list, _ := args.Get(0).([]models.RentalItem)
	return list, args.Error(1)
}

func (m *mockRentalItemRepo) GetRentalItem(ctx context.Context, id int64) (*models.RentalItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*models.RentalItem)
	return it, args.Error(1)
}

func (m *mockRentalItemRepo) CreateRentalItem(
	ctx context.Context,
	item *models.RentalItem,
) (*models.RentalItem, error) {
	args := m.Called(ctx, item)
	it, _ := args.Get(0).(*models.RentalItem)
	return it, args.Error(1)
}

func (m *mockRentalItemRepo) UpdateRentalItem(ctx context.Context, id int64, name string) (*models.RentalItem, error) {
	args := m.Called(ctx, id, name)
	it, _ := args.Get(0).(*models.RentalItem)
	return it, args.Error(1)
}

func (m *mockRentalItemRepo) DeleteRentalItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/inventory/models"
	"github.com/maynagashev/inventory/server/internal/services"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ParseToken(ctx context.Context, token string) (*services.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*services.TokenClaims)
	return claims, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *services.TokenClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Category)
	return list, args.Error(1)
}

func (m *MockInventoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *MockInventoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *MockInventoryService) UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error) {
	args := m.Called(ctx, id, name)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *MockInventoryService) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInventoryService) ListRentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error) {
	args := m.Called(ctx, categoryID)
	list, _ := args.Get(0).([]models.RentalItem)
	return list, args.Error(1)
}

func (m *MockInventoryService) GetRentalItem(ctx context.Context, id int64) (*models.RentalItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*models.RentalItem)
	return it, args.Error(1)
}

func (m *MockInventoryService) CreateRentalItem(
	ctx context.Context, categoryID int64, name string, createdBy int64,
) (*models.RentalItem, error) {
	args := m.Called(ctx, categoryID, name, createdBy)
	it, _ := args.Get(0).(*models.RentalItem)
	return it, args.Error(1)
}

func (m *MockInventoryService) UpdateRentalItem(ctx context.Context, id int64, name string) (*models.RentalItem, error) {
	args := m.Called(ctx, id, name)
	it, _ := args.Get(0).(*models.RentalItem)
	return it, args.Error(1)
}

func (m *MockInventoryService) DeleteRentalItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

package controller_test

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/inventory/models"
)

// mockAPI - мок шлюза API для тестов контроллеров.
type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *mockAPI) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *mockAPI) Logout(ctx context.Context, bearerToken string) error {
	args := m.Called(ctx, bearerToken)
	return args.Error(0)
}

func (m *mockAPI) Account(ctx context.Context, bearerToken string) (int64, error) {
	args := m.Called(ctx, bearerToken)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAPI) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.Category)
	return items, args.Error(1)
}

func (m *mockAPI) Category(ctx context.Context, id int64) (models.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *mockAPI) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *mockAPI) UpdateCategory(ctx context.Context, id int64, name string) (models.Category, error) {
	args := m.Called(ctx, id, name)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *mockAPI) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAPI) RentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error) {
	args := m.Called(ctx, categoryID)
	items, _ := args.Get(0).([]models.RentalItem)
	return items, args.Error(1)
}

func (m *mockAPI) RentalItem(ctx context.Context, id int64) (models.RentalItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.RentalItem), args.Error(1)
}

func (m *mockAPI) CreateRentalItem(
	ctx context.Context, categoryID int64, name string, createdByUserID int64,
) (models.RentalItem, error) {
	args := m.Called(ctx, categoryID, name, createdByUserID)
	return args.Get(0).(models.RentalItem), args.Error(1)
}

func (m *mockAPI) UpdateRentalItem(ctx context.Context, id int64, name string) (models.RentalItem, error) {
	args := m.Called(ctx, id, name)
	return args.Get(0).(models.RentalItem), args.Error(1)
}

func (m *mockAPI) DeleteRentalItem(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memSessions - хранилище токенов в памяти.
type memSessions struct {
	mu      sync.Mutex
	tokens  []string
	saveErr error
	readErr error
	// readGate, если задан, задерживает LatestToken до закрытия канала.
	readGate chan struct{}
}

func (s *memSessions) SaveToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tokens = []string{token}
	return nil
}

func (s *memSessions) LatestToken(_ context.Context) (string, bool, error) {
	if s.readGate != nil {
		<-s.readGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return "", false, s.readErr
	}
	if len(s.tokens) == 0 {
		return "", false, nil
	}
	return s.tokens[len(s.tokens)-1], true, nil
}

func (s *memSessions) ClearTokens(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = nil
	return nil
}

var errServer = errors.New("сервер недоступен")

//nolint:testpackage // Тесты в том же пакете для доступа к непубличным функциям
package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/inventory/client/internal/apperr"
	"github.com/maynagashev/inventory/models"
)

// fakeAPI - сервер инвентаря в памяти.
type fakeAPI struct {
	mu         sync.Mutex
	users      map[string]string
	categories []models.Category
	items      []models.RentalItem
	nextID     int64
	loggedOut  []string
	lastAuthor int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{users: map[string]string{}, nextID: 100}
}

func (f *fakeAPI) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeAPI) Register(_ context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; ok {
		return apperr.FromStatus("auth.register", 409, "username taken")
	}
	f.users[username] = password
	return nil
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.users[username]; !ok || p != password {
		return "", apperr.FromStatus("auth.login", 401, "invalid credentials")
	}
	return "token-" + username, nil
}

func (f *fakeAPI) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func (f *fakeAPI) Account(_ context.Context, token string) (int64, error) {
	if token == "" {
		return 0, &apperr.AuthError{Err: apperr.ErrNoToken}
	}
	return 1, nil
}

func (f *fakeAPI) Categories(_ context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeAPI) Category(_ context.Context, id int64) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, apperr.FromStatus("category.get", 404, "not found")
}

func (f *fakeAPI) CreateCategory(_ context.Context, name string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Category{ID: f.id(), Name: name}
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeAPI) UpdateCategory(_ context.Context, id int64, name string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].Name = name
			return f.categories[i], nil
		}
	}
	return models.Category{}, apperr.FromStatus("category.update", 404, "not found")
}

func (f *fakeAPI) DeleteCategory(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.categories[:0]
	for _, c := range f.categories {
		if c.ID != id {
			out = append(out, c)
		}
	}
	f.categories = out
	return nil
}

func (f *fakeAPI) RentalItems(_ context.Context, categoryID int64) ([]models.RentalItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []models.RentalItem
	for _, it := range f.items {
		if it.CategoryID == categoryID {
			res = append(res, it)
		}
	}
	return res, nil
}

func (f *fakeAPI) RentalItem(_ context.Context, id int64) (models.RentalItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.RentalItem{}, apperr.FromStatus("rental_item.get", 404, "not found")
}

func (f *fakeAPI) CreateRentalItem(
	_ context.Context, categoryID int64, name string, createdBy int64,
) (models.RentalItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it := models.RentalItem{ID: f.id(), Name: name, CategoryID: categoryID}
	f.items = append(f.items, it)
	f.lastAuthor = createdBy
	return it, nil
}

func (f *fakeAPI) UpdateRentalItem(_ context.Context, id int64, name string) (models.RentalItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Name = name
			return f.items[i], nil
		}
	}
	return models.RentalItem{}, apperr.FromStatus("rental_item.update", 404, "not found")
}

func (f *fakeAPI) DeleteRentalItem(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items[:0]
	for _, it := range f.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	f.items = out
	return nil
}

// memSessions - хранилище токена в памяти.
type memSessions struct {
	mu    sync.Mutex
	token string
}

func (s *memSessions) SaveToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memSessions) LatestToken(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != "", nil
}

func (s *memSessions) ClearTokens(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// press отправляет нажатие клавиши и возвращает команду.
func press(m *model, key tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}

// finishOp синхронно выполняет команду операции контроллера и передает результат в модель.
func finishOp(t *testing.T, m *model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd, "ожидалась команда операции")
	msg := cmd()
	fin, ok := msg.(opFinishedMsg)
	require.True(t, ok, "ожидалось opFinishedMsg, получено %T", msg)
	_, next := m.Update(fin)
	return next
}

// syncState применяет текущее состояние контроллера экрана, как это делает подписка.
func syncState(m *model) {
	_, _ = m.Update(stateChangedMsg{gen: m.gen})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText вводит текст посимвольно.
func typeText(m *model, s string) {
	for _, r := range s {
		press(m, runes(string(r)))
	}
}

func newTestModel(api *fakeAPI, sessions *memSessions) *model {
	m := initModel(context.Background(), api, sessions, false)
	return &m
}

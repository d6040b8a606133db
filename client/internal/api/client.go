package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/maynagashev/inventory/client/internal/apperr"
	"github.com/maynagashev/inventory/models"
)

// DefaultBaseURL - базовый адрес API по умолчанию.
const DefaultBaseURL = "http://localhost:8000/api/v1/"

// Максимальный размер тела ошибки, который читаем для сообщения пользователю.
const maxErrorBodySize = 4 << 10

// AuthAPI - операции семейства auth.
type AuthAPI interface {
	// Register регистрирует нового пользователя.
	Register(ctx context.Context, username, password string) error
	// Login аутентифицирует пользователя и возвращает токен доступа.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout завершает сессию на сервере.
	Logout(ctx context.Context, bearerToken string) error
	// Account возвращает ID пользователя, которому принадлежит токен.
	Account(ctx context.Context, bearerToken string) (int64, error)
}

// CategoriesAPI - операции над категориями.
type CategoriesAPI interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Category(ctx context.Context, id int64) (models.Category, error)
	CreateCategory(ctx context.Context, name string) (models.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// RentalItemsAPI - операции над арендуемыми предметами.
type RentalItemsAPI interface {
	RentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error)
	RentalItem(ctx context.Context, id int64) (models.RentalItem, error)
	CreateRentalItem(ctx context.Context, categoryID int64, name string, createdByUserID int64) (models.RentalItem, error)
	UpdateRentalItem(ctx context.Context, id int64, name string) (models.RentalItem, error)
	DeleteRentalItem(ctx context.Context, id int64) error
}

// Client определяет интерфейс для взаимодействия с REST API инвентаря.
// Реализация не хранит состояния между вызовами.
type Client interface {
	AuthAPI
	CategoriesAPI
	RentalItemsAPI
}

// Option настраивает httpClient.
type Option func(*httpClient)

// WithHTTPClient подменяет HTTP клиент (таймауты, транспорт, тесты).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// httpClient реализует интерфейс Client поверх HTTP+JSON.
type httpClient struct {
	baseURL    string       // Например "http://localhost:8000/api/v1/"
	httpClient *http.Client // HTTP клиент для выполнения запросов
}

// NewHTTPClient создает новый экземпляр API клиента.
func NewHTTPClient(baseURL string, opts ...Option) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{}, // Таймаут на этом уровне не задается
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --- auth --- //

// Register отправляет запрос на регистрацию.
func (c *httpClient) Register(ctx context.Context, username, password string) error {
	req := models.AuthRequest{Username: username, Password: password}
	return c.do(ctx, "auth.register", http.MethodPost, "auth/register", "", req, nil)
}

// Login отправляет запрос на вход и возвращает токен.
func (c *httpClient) Login(ctx context.Context, username, password string) (string, error) {
	var resp models.LoginResponse
	req := models.AuthRequest{Username: username, Password: password}
	if err := c.do(ctx, "auth.login", http.MethodPost, "auth/login", "", req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", &apperr.TransportError{Op: "auth.login", Err: errors.New("сервер вернул пустой токен")}
	}
	return resp.AccessToken, nil
}

// Logout завершает сессию, токен передается в заголовке Authorization.
func (c *httpClient) Logout(ctx context.Context, bearerToken string) error {
	return c.do(ctx, "auth.logout", http.MethodPost, "auth/logout", bearerToken, nil, nil)
}

// Account получает ID пользователя по токену.
func (c *httpClient) Account(ctx context.Context, bearerToken string) (int64, error) {
	var resp models.AccountResponse
	if err := c.do(ctx, "auth.account", http.MethodGet, "auth/account", bearerToken, nil, &resp); err != nil {
		return 0, err
	}
	return resp.AuthUserID, nil
}

// --- categories --- //

// Categories получает все категории.
func (c *httpClient) Categories(ctx context.Context) ([]models.Category, error) {
	var resp models.CategoriesResponse
	if err := c.do(ctx, "categories.list", http.MethodGet, "category/", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Category получает категорию по ID.
func (c *httpClient) Category(ctx context.Context, id int64) (models.Category, error) {
	var resp models.CategoryResponse
	err := c.do(ctx, "categories.get", http.MethodGet, fmt.Sprintf("category/%d", id), "", nil, &resp)
	return resp.Category, err
}

// CreateCategory создает категорию.
func (c *httpClient) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	var resp models.CategoryResponse
	req := models.CategoryRequest{Name: name}
	err := c.do(ctx, "categories.create", http.MethodPost, "category/", "", req, &resp)
	return resp.Category, err
}

// UpdateCategory меняет имя категории.
func (c *httpClient) UpdateCategory(ctx context.Context, id int64, name string) (models.Category, error) {
	var resp models.CategoryResponse
	req := models.CategoryRequest{Name: name}
	err := c.do(ctx, "categories.update", http.MethodPut, fmt.Sprintf("category/%d", id), "", req, &resp)
	return resp.Category, err
}

// DeleteCategory удаляет категорию.
func (c *httpClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, "categories.delete", http.MethodDelete, fmt.Sprintf("category/%d", id), "", nil, nil)
}

// --- rental items --- //

// RentalItems получает предметы категории. CategoryID проставляется локально.
func (c *httpClient) RentalItems(ctx context.Context, categoryID int64) ([]models.RentalItem, error) {
	var resp models.RentalItemsResponse
	path := fmt.Sprintf("category/%d/items/", categoryID)
	if err := c.do(ctx, "rentalitems.list", http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Items {
		resp.Items[i].CategoryID = categoryID
	}
	return resp.Items, nil
}

// RentalItem получает предмет по ID.
func (c *httpClient) RentalItem(ctx context.Context, id int64) (models.RentalItem, error) {
	var item models.RentalItem
	err := c.do(ctx, "rentalitems.get", http.MethodGet, fmt.Sprintf("rentalitem/%d/", id), "", nil, &item)
	return item, err
}

// CreateRentalItem добавляет предмет в категорию.
func (c *httpClient) CreateRentalItem(
	ctx context.Context,
	categoryID int64,
	name string,
	createdByUserID int64,
) (models.RentalItem, error) {
	var resp models.AddRentalItemResponse
	req := models.AddRentalItemRequest{Name: name, CreatedByUserID: createdByUserID}
	path := fmt.Sprintf("category/%d/items/", categoryID)
	if err := c.do(ctx, "rentalitems.create", http.MethodPost, path, "", req, &resp); err != nil {
		return models.RentalItem{}, err
	}
	resp.RentalItem.CategoryID = categoryID
	return resp.RentalItem, nil
}

// UpdateRentalItem меняет имя предмета.
func (c *httpClient) UpdateRentalItem(ctx context.Context, id int64, name string) (models.RentalItem, error) {
	var item models.RentalItem
	req := models.UpdateRentalItemRequest{Name: name}
	err := c.do(ctx, "rentalitems.update", http.MethodPut, fmt.Sprintf("rentalitem/%d/", id), "", req, &item)
	return item, err
}

// DeleteRentalItem удаляет предмет.
func (c *httpClient) DeleteRentalItem(ctx context.Context, id int64) error {
	return c.do(ctx, "rentalitems.delete", http.MethodDelete, fmt.Sprintf("rentalitem/%d/", id), "", nil, nil)
}

// do выполняет один запрос-ответ. Повторов нет.
// bearerToken != "" добавляет заголовок Authorization; in/out кодируются в JSON, nil - без тела.
func (c *httpClient) do(ctx context.Context, op, method, path, bearerToken string, in, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return &apperr.TransportError{Op: op, Err: fmt.Errorf("ошибка формирования URL: %w", err)}
	}

	var body io.Reader
	if in != nil {
		data, errMarshal := json.Marshal(in)
		if errMarshal != nil {
			return &apperr.TransportError{Op: op, Err: fmt.Errorf("ошибка кодирования запроса: %w", errMarshal)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &apperr.TransportError{Op: op, Err: fmt.Errorf("ошибка создания запроса: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err = setAuthHeader(op, req, bearerToken, path); err != nil {
		return err
	}

	slog.Debug("Запрос к API", "op", op, "method", method, "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperr.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := readErrorMessage(resp.Body)
		slog.Debug("API вернул ошибку", "op", op, "status", resp.StatusCode, "message", msg)
		return apperr.FromStatus(op, resp.StatusCode, msg)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperr.TransportError{Op: op, Err: fmt.Errorf("ошибка декодирования ответа: %w", err)}
	}
	return nil
}

// Пути, которые требуют токен.
var authenticatedPaths = map[string]bool{
	"auth/logout":  true,
	"auth/account": true,
}

// setAuthHeader добавляет "Authorization: Bearer <token>".
func setAuthHeader(op string, req *http.Request, bearerToken, path string) error {
	if bearerToken == "" {
		if authenticatedPaths[path] {
			return &apperr.AuthError{Op: op, Err: apperr.ErrNoToken}
		}
		return nil
	}
	(&oauth2.Token{AccessToken: bearerToken, TokenType: "Bearer"}).SetAuthHeader(req)
	return nil
}

// readErrorMessage читает тело ошибки для показа пользователю.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

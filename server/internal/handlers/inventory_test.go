package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maynagashev/inventory/models"
	"github.com/maynagashev/inventory/server/internal/handlers"
	"github.com/maynagashev/inventory/server/internal/services"
)

func setupInventoryRouter(h *handlers.InventoryHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/category/", h.ListCategories)
	r.Post("/category/", h.CreateCategory)
	r.Get("/category/{categoryId}", h.GetCategory)
	r.Put("/category/{categoryId}", h.UpdateCategory)
	r.Delete("/category/{categoryId}", h.DeleteCategory)
	r.Get("/category/{categoryId}/items/", h.ListRentalItems)
	r.Post("/category/{categoryId}/items/", h.CreateRentalItem)
	r.Get("/rentalitem/{rentalItemId}/", h.GetRentalItem)
	r.Put("/rentalitem/{rentalItemId}/", h.UpdateRentalItem)
	r.Delete("/rentalitem/{rentalItemId}/", h.DeleteRentalItem)
	return r
}

func TestInventoryHandler(t *testing.T) {
	author := int64(5)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setup          func(m *MockInventoryService)
		expectedStatus int
		expectedJSON   string
		expectedBody   string
	}{
		{
			name:   "Список категорий",
			method: http.MethodGet,
			path:   "/category/",
			setup: func(m *MockInventoryService) {
				m.On("ListCategories", mock.Anything).
					Return([]models.Category{{ID: 1, Name: "Tools"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"categories":[{"category_id":1,"category_name":"Tools"}]}`,
		},
		{
			name:   "Пустой список категорий",
			method: http.MethodGet,
			path:   "/category/",
			setup: func(m *MockInventoryService) {
				m.On("ListCategories", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"categories":[]}`,
		},
		{
			name:   "Категория по id",
			method: http.MethodGet,
			path:   "/category/3",
			setup: func(m *MockInventoryService) {
				m.On("GetCategory", mock.Anything, int64(3)).
					Return(&models.Category{ID: 3, Name: "Bikes"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"category":{"category_id":3,"category_name":"Bikes"}}`,
		},
		{
			name:   "Категория не найдена",
			method: http.MethodGet,
			path:   "/category/9",
			setup: func(m *MockInventoryService) {
				m.On("GetCategory", mock.Anything, int64(9)).Return(nil, services.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Нечисловой id",
			method:         http.MethodGet,
			path:           "/category/abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Некорректный идентификатор",
		},
		{
			name:           "Нулевой id",
			method:         http.MethodGet,
			path:           "/category/0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Создание категории",
			method: http.MethodPost,
			path:   "/category/",
			body:   `{"category_name":"Tents"}`,
			setup: func(m *MockInventoryService) {
				m.On("CreateCategory", mock.Anything, "Tents").
					Return(&models.Category{ID: 10, Name: "Tents"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"category":{"category_id":10,"category_name":"Tents"}}`,
		},
		{
			name:   "Пустое имя категории",
			method: http.MethodPost,
			path:   "/category/",
			body:   `{"category_name":"  "}`,
			setup: func(m *MockInventoryService) {
				m.On("CreateCategory", mock.Anything, "  ").Return(nil, services.ErrInvalidName)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   services.ErrInvalidName.Error(),
		},
		{
			name:           "Сломанный JSON при создании",
			method:         http.MethodPost,
			path:           "/category/",
			body:           `{"category_name":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Неверный формат запроса",
		},
		{
			name:   "Изменение категории",
			method: http.MethodPut,
			path:   "/category/3",
			body:   `{"category_name":"Bicycles"}`,
			setup: func(m *MockInventoryService) {
				m.On("UpdateCategory", mock.Anything, int64(3), "Bicycles").
					Return(&models.Category{ID: 3, Name: "Bicycles"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"category":{"category_id":3,"category_name":"Bicycles"}}`,
		},
		{
			name:   "Удаление категории",
			method: http.MethodDelete,
			path:   "/category/3",
			setup: func(m *MockInventoryService) {
				m.On("DeleteCategory", mock.Anything, int64(3)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Сбой при удалении категории",
			method: http.MethodDelete,
			path:   "/category/3",
			setup: func(m *MockInventoryService) {
				m.On("DeleteCategory", mock.Anything, int64(3)).Return(errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Внутренняя ошибка сервера",
		},
		{
			name:   "Предметы категории",
			method: http.MethodGet,
			path:   "/category/1/items/",
			setup: func(m *MockInventoryService) {
				m.On("ListRentalItems", mock.Anything, int64(1)).Return([]models.RentalItem{
					{ID: 4, Name: "Drill", CategoryID: 1, CreatedByUserID: &author},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"items":[{"rental_item_id":4,"rental_item_name":"Drill"}]}`,
		},
		{
			name:   "Создание предмета",
			method: http.MethodPost,
			path:   "/category/1/items/",
			body:   `{"rental_item_name":"Saw","created_by_user_id":5}`,
			setup: func(m *MockInventoryService) {
				m.On("CreateRentalItem", mock.Anything, int64(1), "Saw", int64(5)).
					Return(&models.RentalItem{ID: 6, Name: "Saw", CategoryID: 1, CreatedByUserID: &author}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"rentalItem":{"rental_item_id":6,"rental_item_name":"Saw"}}`,
		},
		{
			name:   "Создание предмета в несуществующей категории",
			method: http.MethodPost,
			path:   "/category/77/items/",
			body:   `{"rental_item_name":"Saw","created_by_user_id":0}`,
			setup: func(m *MockInventoryService) {
				m.On("CreateRentalItem", mock.Anything, int64(77), "Saw", int64(0)).
					Return(nil, services.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Предмет по id",
			method: http.MethodGet,
			path:   "/rentalitem/6/",
			setup: func(m *MockInventoryService) {
				m.On("GetRentalItem", mock.Anything, int64(6)).
					Return(&models.RentalItem{ID: 6, Name: "Saw", CategoryID: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"rental_item_id":6,"rental_item_name":"Saw"}`,
		},
		{
			name:   "Изменение предмета",
			method: http.MethodPut,
			path:   "/rentalitem/6/",
			body:   `{"rental_item_name":"Hand saw"}`,
			setup: func(m *MockInventoryService) {
				m.On("UpdateRentalItem", mock.Anything, int64(6), "Hand saw").
					Return(&models.RentalItem{ID: 6, Name: "Hand saw", CategoryID: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"rental_item_id":6,"rental_item_name":"Hand saw"}`,
		},
		{
			name:   "Удаление предмета",
			method: http.MethodDelete,
			path:   "/rentalitem/6/",
			setup: func(m *MockInventoryService) {
				m.On("DeleteRentalItem", mock.Anything, int64(6)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Удаление несуществующего предмета",
			method: http.MethodDelete,
			path:   "/rentalitem/60/",
			setup: func(m *MockInventoryService) {
				m.On("DeleteRentalItem", mock.Anything, int64(60)).Return(services.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockInventoryService)
			if tt.setup != nil {
				tt.setup(svc)
			}
			r := setupInventoryRouter(handlers.NewInventoryHandler(svc))

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedJSON != "" {
				assert.JSONEq(t, tt.expectedJSON, rr.Body.String())
			}
			if tt.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

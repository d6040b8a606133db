package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/maynagashev/inventory/models"
	"github.com/maynagashev/inventory/server/internal/services"
)

// InventoryHandler обслуживает маршруты category/ и rentalitem/.
type InventoryHandler struct {
	service services.InventoryService
}

// NewInventoryHandler создает обработчик инвентаря.
func NewInventoryHandler(s services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// ListCategories - GET category/.
func (h *InventoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, "список категорий", err)
		return
	}
	if list == nil {
		list = []models.Category{}
	}
	writeJSON(w, http.StatusOK, models.CategoriesResponse{Categories: list})
}

// GetCategory - GET category/{categoryId}.
func (h *InventoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, "получение категории", err)
		return
	}
	writeJSON(w, http.StatusOK, models.CategoryResponse{Category: *c})
}

// CreateCategory - POST category/.
func (h *InventoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, "создание категории", err)
		return
	}
	log.Printf("[InventoryHandler] Создана категория %d", c.ID)
	writeJSON(w, http.StatusOK, models.CategoryResponse{Category: *c})
}

// UpdateCategory - PUT category/{categoryId}.
func (h *InventoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		writeServiceError(w, "изменение категории", err)
		return
	}
	writeJSON(w, http.StatusOK, models.CategoryResponse{Category: *c})
}

// DeleteCategory - DELETE category/{categoryId}. Предметы категории удаляются каскадно.
func (h *InventoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, "удаление категории", err)
		return
	}
	log.Printf("[InventoryHandler] Удалена категория %d", id)
	w.WriteHeader(http.StatusOK)
}

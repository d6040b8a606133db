package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/maynagashev/inventory/models"
)

// wireItem оставляет только поля, которые передаются клиенту.
func wireItem(it models.RentalItem) models.RentalItem {
	return models.RentalItem{ID: it.ID, Name: it.Name}
}

// ListRentalItems - GET category/{categoryId}/items/.
func (h *InventoryHandler) ListRentalItems(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	list, err := h.service.ListRentalItems(r.Context(), categoryID)
	if err != nil {
		writeServiceError(w, "список предметов", err)
		return
	}
	items := make([]models.RentalItem, 0, len(list))
	for _, it := range list {
		items = append(items, wireItem(it))
	}
	writeJSON(w, http.StatusOK, models.RentalItemsResponse{Items: items})
}

// CreateRentalItem - POST category/{categoryId}/items/.
func (h *InventoryHandler) CreateRentalItem(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	var req models.AddRentalItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	it, err := h.service.CreateRentalItem(r.Context(), categoryID, req.Name, req.CreatedByUserID)
	if err != nil {
		writeServiceError(w, "создание предмета", err)
		return
	}
	log.Printf("[InventoryHandler] Создан предмет %d в категории %d", it.ID, categoryID)
	writeJSON(w, http.StatusOK, models.AddRentalItemResponse{RentalItem: wireItem(*it)})
}

// GetRentalItem - GET rentalitem/{rentalItemId}/.
func (h *InventoryHandler) GetRentalItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "rentalItemId")
	if !ok {
		return
	}
	it, err := h.service.GetRentalItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, "получение предмета", err)
		return
	}
	writeJSON(w, http.StatusOK, wireItem(*it))
}

// UpdateRentalItem - PUT rentalitem/{rentalItemId}/.
func (h *InventoryHandler) UpdateRentalItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "rentalItemId")
	if !ok {
		return
	}
	var req models.UpdateRentalItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	it, err := h.service.UpdateRentalItem(r.Context(), id, req.Name)
	if err != nil {
		writeServiceError(w, "изменение предмета", err)
		return
	}
	writeJSON(w, http.StatusOK, wireItem(*it))
}

// DeleteRentalItem - DELETE rentalitem/{rentalItemId}/.
func (h *InventoryHandler) DeleteRentalItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "rentalItemId")
	if !ok {
		return
	}
	if err := h.service.DeleteRentalItem(r.Context(), id); err != nil {
		writeServiceError(w, "удаление предмета", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

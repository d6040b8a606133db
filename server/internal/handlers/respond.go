package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maynagashev/inventory/server/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Статус уже отправлен, остается только записать в лог.
		log.Printf("[Handlers] Ошибка кодирования ответа: %v", err)
	}
}

// pathID читает положительный id из параметра маршрута.
func pathID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Некорректный идентификатор", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeServiceError переводит ошибки InventoryService в HTTP статусы.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[InventoryHandler] %s: %v", op, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

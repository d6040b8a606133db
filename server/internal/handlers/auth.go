package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/maynagashev/inventory/models"
	"github.com/maynagashev/inventory/server/internal/middleware"
	"github.com/maynagashev/inventory/server/internal/services"
)

// AuthHandler обрабатывает HTTP-запросы, связанные с аутентификацией.
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(s services.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// decodeAuthRequest читает тело register/login и проверяет, что оба поля заполнены.
func decodeAuthRequest(w http.ResponseWriter, r *http.Request) (models.AuthRequest, bool) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return req, false
	}
	if req.Username == "" || req.Password == "" {
		log.Printf("[AuthHandler] Пустое имя пользователя или пароль")
		http.Error(w, "Имя пользователя и пароль не могут быть пустыми", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAuthRequest(w, r)
	if !ok {
		return
	}
	log.Printf("[AuthHandler] Попытка регистрации пользователя: %s", req.Username)

	err := h.service.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Printf("[AuthHandler] Ошибка регистрации %s: %v", req.Username, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	log.Printf("[AuthHandler] Пользователь %s зарегистрирован", req.Username)
}

// Login обрабатывает запрос на вход пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAuthRequest(w, r)
	if !ok {
		return
	}
	log.Printf("[AuthHandler] Попытка входа пользователя: %s", req.Username)

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	case err != nil:
		log.Printf("[AuthHandler] Ошибка входа %s: %v", req.Username, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{AccessToken: token})
	log.Printf("[AuthHandler] Успешный вход: %s", req.Username)
}

// Logout отзывает токен, которым подписан запрос.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetTokenClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}
	if err := h.service.Logout(r.Context(), claims); err != nil {
		log.Printf("[AuthHandler] Ошибка выхода пользователя %d: %v", claims.UserID, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	log.Printf("[AuthHandler] Пользователь %d вышел", claims.UserID)
}

// Account возвращает id владельца токена.
func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, models.AccountResponse{AuthUserID: userID})
}

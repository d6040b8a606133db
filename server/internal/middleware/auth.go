package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/maynagashev/inventory/server/internal/services"
)

// Тип для ключа контекста.
type contextKey string

// Ключи контекста запроса.
const (
	UserIDKey      contextKey = "userID"
	TokenClaimsKey contextKey = "tokenClaims"
)

// TokenParser проверяет токен доступа. Реализуется services.AuthService.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*services.TokenClaims, error)
}

// Authenticator возвращает middleware, который пропускает только запросы с действующим Bearer-токеном.
func Authenticator(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Println("[AuthMiddleware] Заголовок Authorization отсутствует")
				http.Error(w, "Требуется аутентификация", http.StatusUnauthorized)
				return
			}

			// Проверяем формат "Bearer token"
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				log.Printf("[AuthMiddleware] Неверный формат заголовка Authorization: %s", authHeader)
				http.Error(w, "Неверный формат токена", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ParseToken(r.Context(), headerParts[1])
			switch {
			case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrTokenRevoked):
				log.Printf("[AuthMiddleware] Токен отклонен: %v", err)
				http.Error(w, "Невалидный токен", http.StatusUnauthorized)
				return
			case err != nil:
				log.Printf("[AuthMiddleware] Ошибка проверки токена: %v", err)
				http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, TokenClaimsKey, claims)
			log.Printf("[AuthMiddleware] Пользователь %d успешно аутентифицирован", claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext извлекает UserID из контекста запроса.
// Возвращает ID пользователя и true, если ID найден, иначе 0 и false.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetTokenClaimsFromContext извлекает данные проверенного токена.
func GetTokenClaimsFromContext(ctx context.Context) (*services.TokenClaims, bool) {
	claims, ok := ctx.Value(TokenClaimsKey).(*services.TokenClaims)
	return claims, ok && claims != nil
}

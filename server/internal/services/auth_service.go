package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maynagashev/inventory/models"
	"github.com/maynagashev/inventory/server/internal/repository"
)

// AuthService определяет интерфейс для сервиса аутентификации.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error) // Возвращает JWT токен или ошибку
	// ParseToken проверяет подпись, срок действия и отзыв токена.
	ParseToken(ctx context.Context, token string) (*TokenClaims, error)
	// Logout отзывает токен до истечения его срока.
	Logout(ctx context.Context, claims *TokenClaims) error
}

// TokenClaims - данные проверенного токена.
type TokenClaims struct {
	UserID    int64
	TokenID   string // jti
	ExpiresAt time.Time
}

const (
	tokenTTL    = time.Hour * 24 // Время жизни токена - 24 часа
	tokenIssuer = "inventory-server"
)

// Структура для пользовательских данных в JWT (claims).
type jwtClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Убедимся, что authService удовлетворяет интерфейсу AuthService.
var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RevokedTokenRepository
	secret    []byte
}

// NewAuthService создает новый экземпляр сервиса аутентификации.
// secret - ключ подписи HS256.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.RevokedTokenRepository,
	secret string,
) AuthService {
	return &authService{userRepo: userRepo, tokenRepo: tokenRepo, secret: []byte(secret)}
}

// Register регистрирует нового пользователя.
func (s *authService) Register(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] Ошибка хеширования пароля для '%s': %v", username, err)
		return errors.New("внутренняя ошибка сервера при хешировании пароля")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if _, err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			log.Printf("[AuthService] Попытка регистрации с занятым именем: %s", username)
			return ErrUsernameTaken
		}
		log.Printf("[AuthService] Непредвиденная ошибка репозитория при регистрации '%s': %v", username, err)
		return errors.New("внутренняя ошибка сервера при создании пользователя")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно зарегистрирован", username)
	return nil
}

// Login аутентифицирует пользователя и возвращает JWT токен.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[AuthService] Попытка входа несуществующего пользователя: %s", username)
			return "", ErrInvalidCredentials // Общая ошибка для несуществующего пользователя и неверного пароля
		}
		log.Printf("[AuthService] Ошибка репозитория при поиске '%s': %v", username, err)
		return "", errors.New("внутренняя ошибка сервера при поиске пользователя")
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("[AuthService] Неверный пароль для пользователя: %s", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.generateJWT(user.ID)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации JWT для '%s': %v", username, err)
		return "", errors.New("внутренняя ошибка сервера при генерации токена")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно аутентифицирован", username)
	return token, nil
}

// ParseToken разбирает токен и проверяет, что он не отозван.
func (s *authService) ParseToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		log.Printf("[AuthService] Невалидный токен: %v", err)
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.UserID == 0 {
		log.Println("[AuthService] В токене нет jti или user_id")
		return nil, ErrInvalidToken
	}

	revoked, err := s.tokenRepo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		log.Printf("[AuthService] Ошибка проверки отзыва токена: %v", err)
		return nil, fmt.Errorf("ошибка проверки токена: %w", err)
	}
	if revoked {
		log.Printf("[AuthService] Токен %s отозван", claims.ID)
		return nil, ErrTokenRevoked
	}

	return &TokenClaims{
		UserID:    claims.UserID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout запоминает jti токена как отозванный.
func (s *authService) Logout(ctx context.Context, claims *TokenClaims) error {
	if claims == nil || claims.TokenID == "" {
		return ErrInvalidToken
	}
	if err := s.tokenRepo.RevokeToken(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		log.Printf("[AuthService] Ошибка отзыва токена пользователя %d: %v", claims.UserID, err)
		return errors.New("внутренняя ошибка сервера при отзыве токена")
	}
	log.Printf("[AuthService] Пользователь %d вышел, токен %s отозван", claims.UserID, claims.TokenID)
	return nil
}

// generateJWT создает и подписывает JWT токен для пользователя.
func (s *authService) generateJWT(userID int64) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(), // jti, по нему токен отзывается при выходе
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи JWT: %w", err)
	}
	return signedToken, nil
}

// Кастомные ошибки сервиса.
var (
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	ErrUsernameTaken      = errors.New("имя пользователя уже занято")
	ErrInvalidToken       = errors.New("невалидный токен")
	ErrTokenRevoked       = errors.New("токен отозван")
)

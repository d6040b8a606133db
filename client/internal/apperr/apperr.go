// Package apperr описывает таксономию ошибок клиента: транспорт, авторизация, валидация.
// Контроллеры переводят любые ошибки в текст поля Error своего состояния через Message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthorization сигнализирует об ошибке авторизации (401/403).
var ErrAuthorization = errors.New("ошибка авторизации")

// ErrNoToken - для вызова нужен токен, а его нет.
var ErrNoToken = errors.New("токен аутентификации отсутствует")

// TransportError описывает сетевую ошибку или ответ сервера с кодом вне 2xx.
type TransportError struct {
	Op         string // Операция шлюза, например "categories.list"
	StatusCode int    // 0, если ответа не было
	Message    string // Сообщение сервера (тело ответа), если есть
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: статус %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: статус %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": ошибка транспорта"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError описывает отсутствующий/невалидный токен или сбой хранилища сессии.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	switch {
	case e.Err == nil:
		return e.Op + ": " + ErrAuthorization.Error()
	case e.Op == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *AuthError) Unwrap() error { return e.Err }

// ValidationError - обязательное поле формы не заполнено.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("поле %q не может быть пустым", e.Field)
}

// FromStatus строит ошибку по коду ответа сервера.
// 401 и 403 превращаются в AuthError, обернутый вокруг TransportError.
func FromStatus(op string, status int, message string) error {
	te := &TransportError{Op: op, StatusCode: status, Message: message}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		te.Err = ErrAuthorization
		return &AuthError{Err: te}
	}
	return te
}

// Message возвращает текст ошибки для показа пользователю. Для nil - пустая строка.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsAuth сообщает, относится ли ошибка к авторизации.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae) || errors.Is(err, ErrAuthorization)
}

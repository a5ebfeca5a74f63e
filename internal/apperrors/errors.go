// Package apperrors описывает таксономию ошибок приложения и ее отображение на HTTP статусы.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType тип ошибки приложения
type ErrorType string

const (
	TypeValidation       ErrorType = "VALIDATION"
	TypeNotFound         ErrorType = "NOT_FOUND"
	TypeMethodNotAllowed ErrorType = "METHOD_NOT_ALLOWED"
	TypeInternal         ErrorType = "INTERNAL"
)

// internalMessage - единственное сообщение, которое клиент видит при внутренней ошибке
const internalMessage = "Internal server error"

// AppError ошибка приложения. Message безопасно отдавать клиенту,
// Cause логируется только на сервере.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error реализует интерфейс error
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap возвращает исходную ошибку
func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus возвращает HTTP статус для типа ошибки
func (e *AppError) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Validation создает ошибку валидации (400)
func Validation(message string) *AppError {
	return &AppError{Type: TypeValidation, Message: message}
}

// Validationf создает ошибку валидации с форматированием
func Validationf(format string, args ...any) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

// NotFound создает ошибку "не найдено" для ресурса (404)
func NotFound(resource string) *AppError {
	return &AppError{Type: TypeNotFound, Message: resource + " not found"}
}

// MethodNotAllowed создает ошибку неподдерживаемого метода (405)
func MethodNotAllowed(method string) *AppError {
	return &AppError{Type: TypeMethodNotAllowed, Message: fmt.Sprintf("Method %s not allowed", method)}
}

// Internal оборачивает непредвиденную ошибку хранилища или рантайма (500)
func Internal(cause error) *AppError {
	return &AppError{Type: TypeInternal, Message: internalMessage, Cause: cause}
}

// As извлекает AppError из цепочки. Любая другая ошибка считается внутренней.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// HTTPStatus возвращает HTTP статус для произвольной ошибки
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return As(err).HTTPStatus()
}

// IsType проверяет тип ошибки в цепочке
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrTransport запрос не удалось выполнить: ответа нет.
	ErrTransport = errors.New("transport error")
	// ErrUnauthorized бэкенд ответил 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden бэкенд ответил 403.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound бэкенд ответил 404.
	ErrNotFound = errors.New("not found")
	// ErrValidation данные отклонены до отправки запроса.
	ErrValidation = errors.New("validation failed")
)

// APIError ответ бэкенда с неуспешным статусом.
type APIError struct {
	StatusCode int
	Message    string // из тела ответа, может быть пустым
	Path       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s: status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s: status %d", e.Path, e.StatusCode)
}

// Is позволяет сравнивать APIError с ErrUnauthorized, ErrForbidden и ErrNotFound.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// ValidationError ошибка проверки входных данных на стороне консоли.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

const maxErrorBody = 64 << 10

func newAPIError(resp *http.Response, path string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    extractMessage(body),
		Path:       path,
	}
}

// extractMessage достаёт текст ошибки из тела: message строкой или списком, либо error.
func extractMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Message) > 0 {
		var s string
		if err := json.Unmarshal(payload.Message, &s); err == nil && s != "" {
			return s
		}
		var list []string
		if err := json.Unmarshal(payload.Message, &list); err == nil && len(list) > 0 {
			return strings.Join(list, "; ")
		}
	}
	return payload.Error
}

// MessageOrDefault возвращает текст, который стоит показать администратору:
// сообщение бэкенда или ошибки валидации, иначе fallback.
func MessageOrDefault(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) && vErr.Message != "" {
		return vErr.Message
	}
	return fallback
}

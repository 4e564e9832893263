// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов консоли. Ошибки клиента бэкенда переводятся
// в HTTP‑статусы и понятные администратору сообщения.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-admin-console/internal/apiclient"
	"github.com/magabrotheeeer/subscription-admin-console/internal/services/console"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

// LoginPage адрес страницы входа, куда отправляется администратор без сессии.
const LoginPage = "/login"

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Redirect заполняется, когда сессия потеряна и нужен повторный вход.
type Response struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Data     any    `json:"data,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status   string `json:"status" example:"Error"`
	Error    string `json:"error" example:"Ошибка загрузки"`
	Redirect string `json:"redirect,omitempty" example:"/login"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// Unauthorized ответ для потерянной или истёкшей сессии.
func Unauthorized(msg string) ErrorResponse {
	return ErrorResponse{
		Status:   StatusError,
		Error:    msg,
		Redirect: LoginPage,
	}
}

// ValidationError формирует ответ на основе ошибок валидации тела запроса.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "gt", "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}

// StatusFor переводит ошибку клиента или сервиса в HTTP-статус ответа консоли.
func StatusFor(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, session.ErrNoSession), errors.Is(err, apiclient.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, console.ErrInvalidPassword), errors.Is(err, apiclient.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apiclient.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apiclient.ErrValidation),
		errors.Is(err, console.ErrPasswordRequired),
		errors.Is(err, console.ErrInvalidDays):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apiclient.ErrTransport):
		return http.StatusBadGateway
	case errors.As(err, &apiErr):
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message текст ошибки для администратора: сообщение бэкенда, текст проверки
// или fallback.
func Message(err error, fallback string) string {
	switch {
	case errors.Is(err, console.ErrPasswordRequired):
		return "Введите пароль для подтверждения"
	case errors.Is(err, console.ErrInvalidPassword):
		return "Неверный пароль"
	case errors.Is(err, console.ErrInvalidDays):
		return "Количество дней должно быть больше нуля"
	}
	return apiclient.MessageOrDefault(err, fallback)
}

// Fail пишет ответ с ошибкой. На 401 ответ содержит адрес страницы входа.
func Fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := StatusFor(err)
	render.Status(r, status)
	if status == http.StatusUnauthorized {
		render.JSON(w, r, Unauthorized(Message(err, "Сессия истекла, войдите снова")))
		return
	}
	render.JSON(w, r, Error(Message(err, fallback)))
}

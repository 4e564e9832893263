// Package login реализует HTTP-обработчик входа администратора.
//
// Учётные данные проверяются валидатором и передаются сервису консоли,
// который обращается к бэкенду и сохраняет сессию под новым идентификатором.
// Идентификатор уходит браузеру в HttpOnly cookie. Неудачный вход не трогает
// уже сохранённую сессию.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

// Request входные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает вход администратора.
type Handler struct {
	log      *slog.Logger
	service  Service
	cookie   middlewarectx.Cookie
	validate *validator.Validate
}

// Service вход с сохранением сессии.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.Admin, error)
}

// New создает обработчик входа.
func New(log *slog.Logger, service Service, cookie middlewarectx.Cookie) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		cookie:   cookie,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход администратора
// @Description Проверяет email и пароль на бэкенде и сохраняет сессию консоли.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные администратора"
// @Success 200 {object} response.Response{data=models.Admin}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много попыток"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		errors.As(err, &verrs)
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	id := session.NewID()
	admin, err := h.service.Login(session.WithID(r.Context(), id), req.Email, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, response.StatusFor(err))
		render.JSON(w, r, response.Error(response.Message(err, "Неверный email или пароль")))
		return
	}

	h.cookie.Issue(w, id)
	log.Info("login success", slog.Int64("admin_id", admin.ID), slog.String("admin", admin.DisplayName()))
	render.JSON(w, r, response.StatusOKWithData(admin))
}

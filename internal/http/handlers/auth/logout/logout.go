// Package logout реализует выход администратора из консоли.
// Работает только за RequireSession: стирается сессия того браузера,
// чья cookie пришла с запросом.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
	cookie  middlewarectx.Cookie
}

type Service interface {
	Logout(ctx context.Context) error
}

func New(log *slog.Logger, service Service, cookie middlewarectx.Cookie) *Handler {
	return &Handler{
		log:     log,
		service: service,
		cookie:  cookie,
	}
}

// ServeHTTP godoc
// @Summary Выход администратора
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 500 {object} response.ErrorResponse
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Logout(r.Context()); err != nil {
		log.Error("failed to clear session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Ошибка выхода"))
		return
	}
	h.cookie.Expire(w)
	render.JSON(w, r, response.Response{Status: response.StatusOK, Redirect: response.LoginPage})
}

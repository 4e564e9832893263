// Package me отдаёт профиль текущего администратора.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	GetMe(ctx context.Context) (*models.Admin, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущий администратор
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response{data=models.Admin}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	admin, err := h.service.GetMe(r.Context())
	if err != nil {
		log.Error("failed to load admin", sl.Err(err))
		response.Fail(w, r, err, "Ошибка загрузки")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(admin))
}

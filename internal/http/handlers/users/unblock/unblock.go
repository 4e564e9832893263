// Package unblock снимает блокировку пользователя после подтверждения паролем.
package unblock

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// Request тело запроса разблокировки.
type Request struct {
	Password string `json:"password"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	UnblockUser(ctx context.Context, id int64, password string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Разблокировка пользователя
// @Tags Users
// @Accept  json
// @Produce  json
// @Param id path int true "ID пользователя"
// @Param request body Request true "Пароль администратора"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Неверный пароль"
// @Router /api/users/{id}/unblock [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.unblock"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	ok, err := h.service.UnblockUser(r.Context(), id, req.Password)
	if err != nil {
		log.Error("failed to unblock user", sl.Err(err), slog.Int64("user_id", id))
		response.Fail(w, r, err, "Ошибка разблокировки")
		return
	}
	log.Info("user unblocked", slog.Int64("user_id", id))
	render.JSON(w, r, response.StatusOKWithData(models.SuccessResponse{Success: ok}))
}

// Package block блокирует пользователя после подтверждения паролем администратора.
package block

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

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service проверяет пароль и блокирует пользователя.
type Service interface {
	BlockUser(ctx context.Context, id int64, req models.BlockUserRequest) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Блокировка пользователя
// @Description Сначала проверяет пароль администратора, затем блокирует пользователя.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param id path int true "ID пользователя"
// @Param request body models.BlockUserRequest true "Причина, срок и пароль"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Неверный пароль"
// @Failure 422 {object} response.ErrorResponse "Пароль не введён"
// @Router /api/users/{id}/block [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.block"

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

	var req models.BlockUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	ok, err := h.service.BlockUser(r.Context(), id, req)
	if err != nil {
		log.Error("failed to block user", sl.Err(err), slog.Int64("user_id", id))
		response.Fail(w, r, err, "Ошибка блокировки")
		return
	}
	log.Info("user blocked", slog.Int64("user_id", id))
	render.JSON(w, r, response.StatusOKWithData(models.SuccessResponse{Success: ok}))
}

// Package subscription управляет подпиской пользователя: начисление и списание
// дней и полный отзыв. Каждое действие подтверждается паролем администратора.
package subscription

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

// Действия над подпиской из пути запроса.
const (
	ActionGrant  = "grant"
	ActionReduce = "reduce"
	ActionRevoke = "revoke"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	GrantSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error)
	ReduceSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error)
	RevokeSubscription(ctx context.Context, id int64, password string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Изменение подписки пользователя
// @Description grant и reduce меняют срок на days дней, revoke отзывает подписку. days для revoke не нужен.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param id path int true "ID пользователя"
// @Param action path string true "grant, reduce или revoke"
// @Param request body models.SubscriptionDaysRequest true "Дни и пароль администратора"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Неверный пароль"
// @Failure 404 {object} response.ErrorResponse "Неизвестное действие"
// @Failure 422 {object} response.ErrorResponse "Некорректное количество дней"
// @Router /api/users/{id}/subscription/{action} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.subscription"

	action := chi.URLParam(r, "action")
	log := h.log.With(
		slog.String("op", op),
		slog.String("action", action),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req models.SubscriptionDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	var data any
	switch action {
	case ActionGrant:
		data, err = h.service.GrantSubscription(r.Context(), id, req.Days, req.Password)
	case ActionReduce:
		data, err = h.service.ReduceSubscription(r.Context(), id, req.Days, req.Password)
	case ActionRevoke:
		var ok bool
		ok, err = h.service.RevokeSubscription(r.Context(), id, req.Password)
		data = models.SuccessResponse{Success: ok}
	default:
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("unknown action"))
		return
	}
	if err != nil {
		log.Error("failed to change subscription", sl.Err(err), slog.Int64("user_id", id))
		response.Fail(w, r, err, "Ошибка изменения подписки")
		return
	}
	log.Info("subscription changed", slog.Int64("user_id", id))
	render.JSON(w, r, response.StatusOKWithData(data))
}

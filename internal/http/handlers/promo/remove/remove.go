// Package remove удаляет промокод.
package remove

import (
	"context"
	"log/slog"
	"net/http"

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

type Service interface {
	DeletePromoCode(ctx context.Context, id string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление промокода
// @Tags Promo
// @Produce  json
// @Param id path string true "ID промокода"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/promocodes/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.promo.remove"

	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("promo_id", id),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ok, err := h.service.DeletePromoCode(r.Context(), id)
	if err != nil {
		log.Error("failed to delete promo code", sl.Err(err))
		response.Fail(w, r, err, "Ошибка удаления")
		return
	}
	log.Info("promo code deleted")
	render.JSON(w, r, response.StatusOKWithData(models.SuccessResponse{Success: ok}))
}

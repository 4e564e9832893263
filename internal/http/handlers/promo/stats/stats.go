// Package stats отдаёт статистику использования промокода.
package stats

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
	GetPromoStats(ctx context.Context, id string) (*models.PromoStats, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика промокода
// @Tags Promo
// @Produce  json
// @Param id path string true "ID промокода"
// @Success 200 {object} response.Response{data=models.PromoStats}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/promocodes/{id}/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.promo.stats"

	id := chi.URLParam(r, "id")
	log := h.log.With(
		slog.String("op", op),
		slog.String("promo_id", id),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.GetPromoStats(r.Context(), id)
	if err != nil {
		log.Error("failed to load promo stats", sl.Err(err))
		response.Fail(w, r, err, "Ошибка загрузки статистики")
		return
	}
	log.Info("promo stats loaded", slog.String("summary", stats.String()))
	render.JSON(w, r, response.StatusOKWithData(stats))
}

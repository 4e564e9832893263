// Package stats отдаёт статистику главной страницы консоли.
package stats

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
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика дашборда
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} response.Response{data=models.DashboardStats}
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.GetDashboardStats(r.Context())
	if err != nil {
		log.Error("failed to load dashboard stats", sl.Err(err))
		response.Fail(w, r, err, "Ошибка загрузки статистики")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(stats))
}

// Package plans отдаёт тарифы подписки.
package plans

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
	GetPlans(ctx context.Context) ([]models.Plan, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Тарифы
// @Tags Payments
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.Plan}
// @Router /api/plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.plans"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.GetPlans(r.Context())
	if err != nil {
		log.Error("failed to load plans", sl.Err(err))
		response.Fail(w, r, err, "Ошибка загрузки тарифов")
		return
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	render.JSON(w, r, response.StatusOKWithData(plans))
}

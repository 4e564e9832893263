// Package list отдаёт все промокоды.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// Item промокод с признаком действия на момент запроса.
type Item struct {
	models.PromoCode
	Active bool `json:"active"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	GetPromoCodes(ctx context.Context) ([]models.PromoCode, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список промокодов
// @Tags Promo
// @Produce  json
// @Success 200 {object} response.Response{data=[]Item}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/promocodes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.promo.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	codes, err := h.service.GetPromoCodes(r.Context())
	if err != nil {
		log.Error("failed to load promo codes", sl.Err(err))
		response.Fail(w, r, err, "Ошибка загрузки")
		return
	}
	now := time.Now()
	items := make([]Item, 0, len(codes))
	for _, c := range codes {
		items = append(items, Item{PromoCode: c, Active: c.IsActive(now)})
	}
	render.JSON(w, r, response.StatusOKWithData(items))
}

// Package overview отдаёт сводку для страницы промокодов и оплат:
// статистику, тарифы и промокоды, загруженные параллельно.
package overview

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/services/console"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Overview(ctx context.Context) (*console.Overview, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка консоли
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} response.Response{data=console.Overview}
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/overview [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	out, err := h.service.Overview(r.Context())
	if err != nil {
		log.Error("failed to load overview", sl.Err(err))
		response.Fail(w, r, err, "Ошибка загрузки")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(out))
}

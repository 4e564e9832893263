// Package create создаёт промокод. Проверка полей и скидки выполняется
// клиентом бэкенда до отправки запроса.
package create

import (
	"context"
	"encoding/json"
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
	CreatePromoCode(ctx context.Context, req models.CreatePromoCodeRequest) (*models.PromoCode, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создание промокода
// @Description Код приводится к верхнему регистру. PERCENT принимает 1..100, RUB больше нуля.
// @Tags Promo
// @Accept  json
// @Produce  json
// @Param request body models.CreatePromoCodeRequest true "Промокод"
// @Success 201 {object} response.Response{data=models.PromoCode}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/promocodes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.promo.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreatePromoCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	created, err := h.service.CreatePromoCode(r.Context(), req)
	if err != nil {
		log.Error("failed to create promo code", sl.Err(err))
		response.Fail(w, r, err, "Ошибка создания")
		return
	}
	log.Info("promo code created", slog.String("code", created.Code))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(created))
}

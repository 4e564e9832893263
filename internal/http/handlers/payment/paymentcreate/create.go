// Package paymentcreate создаёт ссылку на оплату тарифа для пользователя.
// Консоль только получает адрес подтверждения, платёж проводит бэкенд.
package paymentcreate

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
	CreatePaymentLink(ctx context.Context, req models.PaymentLinkRequest) (*models.PaymentLink, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Ссылка на оплату
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.PaymentLinkRequest true "Тариф, пользователь и промокод"
// @Success 200 {object} response.Response{data=models.PaymentLink}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /api/payments/link [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.PaymentLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	link, err := h.service.CreatePaymentLink(r.Context(), req)
	if err != nil {
		log.Error("failed to create payment link", sl.Err(err))
		response.Fail(w, r, err, "Ошибка создания ссылки")
		return
	}
	log.Info("payment link created", slog.String("payment_id", link.PaymentID))
	render.JSON(w, r, response.StatusOKWithData(link))
}

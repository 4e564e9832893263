package apiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// CreatePaymentLink создаёт ссылку на оплату тарифа для пользователя.
// Платёж при этом не проводится.
func (c *Client) CreatePaymentLink(ctx context.Context, req models.PaymentLinkRequest) (*models.PaymentLink, error) {
	const op = "apiclient.CreatePaymentLink"
	req.PlanID = strings.TrimSpace(req.PlanID)
	req.EmailOrID = strings.TrimSpace(req.EmailOrID)
	req.PromoCodeID = strings.TrimSpace(req.PromoCodeID)
	if err := c.check(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var link models.PaymentLink
	if err := c.post(ctx, op, "/admin/payments/create-link", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// GetPlans возвращает список тарифов.
func (c *Client) GetPlans(ctx context.Context) ([]models.Plan, error) {
	const op = "apiclient.GetPlans"
	var plans []models.Plan
	if err := c.get(ctx, op, "/payments/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

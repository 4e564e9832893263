package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

func promoPath(id, suffix string) string {
	return "/admin/promocodes/" + url.PathEscape(id) + suffix
}

// GetPromoCodes возвращает все промокоды, без пагинации.
func (c *Client) GetPromoCodes(ctx context.Context) ([]models.PromoCode, error) {
	const op = "apiclient.GetPromoCodes"
	var list []models.PromoCode
	if err := c.get(ctx, op, "/admin/promocodes", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetPromoStats возвращает статистику использования промокода.
func (c *Client) GetPromoStats(ctx context.Context, id string) (*models.PromoStats, error) {
	const op = "apiclient.GetPromoStats"
	if id == "" {
		return nil, fmt.Errorf("%s: %w", op, &ValidationError{Message: "field id is a required field"})
	}
	var stats models.PromoStats
	if err := c.get(ctx, op, promoPath(id, "/stats"), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreatePromoCode создаёт промокод. Код приводится к верхнему регистру,
// некорректные данные отклоняются до отправки запроса.
func (c *Client) CreatePromoCode(ctx context.Context, req models.CreatePromoCodeRequest) (*models.PromoCode, error) {
	const op = "apiclient.CreatePromoCode"
	req = req.Normalize()
	if err := c.check(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var created models.PromoCode
	if err := c.post(ctx, op, "/admin/promocodes", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeletePromoCode удаляет промокод.
func (c *Client) DeletePromoCode(ctx context.Context, id string) (bool, error) {
	const op = "apiclient.DeletePromoCode"
	if id == "" {
		return false, fmt.Errorf("%s: %w", op, &ValidationError{Message: "field id is a required field"})
	}
	var resp models.SuccessResponse
	if err := c.remove(ctx, op, promoPath(id, ""), &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

package apiclient

import (
	"context"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// GetDashboardStats возвращает статистику для главной страницы.
func (c *Client) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "apiclient.GetDashboardStats"
	var stats models.DashboardStats
	if err := c.get(ctx, op, "/admin/stats/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

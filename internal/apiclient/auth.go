package apiclient

import (
	"context"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// Login проверяет email и пароль. 401 здесь означает неверные данные и не
// приводит к выходу из сессии. Сохранять сессию должен вызывающий.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	const op = "apiclient.Login"
	var resp models.LoginResponse
	if err := c.post(ctx, op, "/admin/auth/login", models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMe возвращает текущего администратора по сохранённому токену.
func (c *Client) GetMe(ctx context.Context) (*models.Admin, error) {
	const op = "apiclient.GetMe"
	var admin models.Admin
	if err := c.get(ctx, op, "/admin/me", nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// VerifyAdminPassword проверяет пароль администратора без повторного входа.
func (c *Client) VerifyAdminPassword(ctx context.Context, password string) (bool, error) {
	const op = "apiclient.VerifyAdminPassword"
	var resp models.PasswordCheck
	if err := c.post(ctx, op, "/admin/auth/verify-password", map[string]string{"password": password}, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

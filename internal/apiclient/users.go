package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// Параметры пагинации по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

func usersQuery(f models.UsersFilter) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.UserID != nil {
		q.Set("userId", strconv.FormatInt(*f.UserID, 10))
	}
	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// GetUsers возвращает страницу пользователей. Пустые фильтры не отправляются.
func (c *Client) GetUsers(ctx context.Context, f models.UsersFilter) (*models.UsersPage, error) {
	const op = "apiclient.GetUsers"
	var page models.UsersPage
	if err := c.get(ctx, op, "/admin/users", usersQuery(f), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func userPath(id int64, suffix string) string {
	return fmt.Sprintf("/admin/users/%d%s", id, suffix)
}

// GetUser возвращает карточку пользователя; ErrNotFound, если его нет.
func (c *Client) GetUser(ctx context.Context, id int64) (*models.UserDetail, error) {
	const op = "apiclient.GetUser"
	var user models.UserDetail
	if err := c.get(ctx, op, userPath(id, ""), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// BlockUser блокирует пользователя. Срок и причину трактует бэкенд.
func (c *Client) BlockUser(ctx context.Context, id int64, req models.BlockUserRequest) (bool, error) {
	const op = "apiclient.BlockUser"
	var resp models.SuccessResponse
	if err := c.post(ctx, op, userPath(id, "/block"), req, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// UnblockUser снимает блокировку.
func (c *Client) UnblockUser(ctx context.Context, id int64, password string) (bool, error) {
	const op = "apiclient.UnblockUser"
	var resp models.SuccessResponse
	if err := c.post(ctx, op, userPath(id, "/unblock"), map[string]string{"password": password}, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// GrantSubscription начисляет дни подписки.
func (c *Client) GrantSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error) {
	return c.changeSubscription(ctx, "apiclient.GrantSubscription", id, "grant", days, password)
}

// ReduceSubscription списывает дни подписки.
func (c *Client) ReduceSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error) {
	return c.changeSubscription(ctx, "apiclient.ReduceSubscription", id, "reduce", days, password)
}

func (c *Client) changeSubscription(ctx context.Context, op string, id int64, action string, days int, password string) (*models.SubscriptionChange, error) {
	var resp models.SubscriptionChange
	body := models.SubscriptionDaysRequest{Days: days, Password: password}
	if err := c.post(ctx, op, userPath(id, "/subscription/"+action), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RevokeSubscription отзывает подписку.
func (c *Client) RevokeSubscription(ctx context.Context, id int64, password string) (bool, error) {
	const op = "apiclient.RevokeSubscription"
	var resp models.SuccessResponse
	if err := c.post(ctx, op, userPath(id, "/subscription/revoke"), map[string]string{"password": password}, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

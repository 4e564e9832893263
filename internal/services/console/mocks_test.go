package console

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-admin-console/internal/audit"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

type APIMock struct {
	mock.Mock
}

func (m *APIMock) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

func (m *APIMock) GetMe(ctx context.Context) (*models.Admin, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.Admin)
	return resp, args.Error(1)
}

func (m *APIMock) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.DashboardStats)
	return resp, args.Error(1)
}

func (m *APIMock) GetUsers(ctx context.Context, f models.UsersFilter) (*models.UsersPage, error) {
	args := m.Called(ctx, f)
	resp, _ := args.Get(0).(*models.UsersPage)
	return resp, args.Error(1)
}

func (m *APIMock) GetUser(ctx context.Context, id int64) (*models.UserDetail, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.UserDetail)
	return resp, args.Error(1)
}

func (m *APIMock) VerifyAdminPassword(ctx context.Context, password string) (bool, error) {
	args := m.Called(ctx, password)
	return args.Bool(0), args.Error(1)
}

func (m *APIMock) BlockUser(ctx context.Context, id int64, req models.BlockUserRequest) (bool, error) {
	args := m.Called(ctx, id, req)
	return args.Bool(0), args.Error(1)
}

func (m *APIMock) UnblockUser(ctx context.Context, id int64, password string) (bool, error) {
	args := m.Called(ctx, id, password)
	return args.Bool(0), args.Error(1)
}

func (m *APIMock) GrantSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error) {
	args := m.Called(ctx, id, days, password)
	resp, _ := args.Get(0).(*models.SubscriptionChange)
	return resp, args.Error(1)
}

func (m *APIMock) ReduceSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error) {
	args := m.Called(ctx, id, days, password)
	resp, _ := args.Get(0).(*models.SubscriptionChange)
	return resp, args.Error(1)
}

func (m *APIMock) RevokeSubscription(ctx context.Context, id int64, password string) (bool, error) {
	args := m.Called(ctx, id, password)
	return args.Bool(0), args.Error(1)
}

func (m *APIMock) GetPromoCodes(ctx context.Context) ([]models.PromoCode, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]models.PromoCode)
	return resp, args.Error(1)
}

func (m *APIMock) GetPromoStats(ctx context.Context, id string) (*models.PromoStats, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.PromoStats)
	return resp, args.Error(1)
}

func (m *APIMock) CreatePromoCode(ctx context.Context, req models.CreatePromoCodeRequest) (*models.PromoCode, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.PromoCode)
	return resp, args.Error(1)
}

func (m *APIMock) DeletePromoCode(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *APIMock) CreatePaymentLink(ctx context.Context, req models.PaymentLinkRequest) (*models.PaymentLink, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.PaymentLink)
	return resp, args.Error(1)
}

func (m *APIMock) GetPlans(ctx context.Context) ([]models.Plan, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]models.Plan)
	return resp, args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, e audit.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newManager() *session.Manager {
	return session.NewManager(session.NewMemoryStore(), newNoopLogger())
}

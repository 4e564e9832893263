// Package console содержит логику консоли поверх клиента API: вход и выход,
// подтверждение чувствительных действий паролем, загрузку обзорной страницы
// и аудит выполненных действий.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/subscription-admin-console/internal/audit"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

var (
	// ErrPasswordRequired пароль для подтверждения не введён.
	ErrPasswordRequired = errors.New("password confirmation required")
	// ErrInvalidPassword пароль администратора не подошёл.
	ErrInvalidPassword = errors.New("invalid admin password")
	// ErrInvalidDays количество дней должно быть положительным.
	ErrInvalidDays = errors.New("days must be positive")
)

// API операции бэкенда, которыми пользуется консоль.
type API interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	GetMe(ctx context.Context) (*models.Admin, error)
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetUsers(ctx context.Context, f models.UsersFilter) (*models.UsersPage, error)
	GetUser(ctx context.Context, id int64) (*models.UserDetail, error)
	VerifyAdminPassword(ctx context.Context, password string) (bool, error)
	BlockUser(ctx context.Context, id int64, req models.BlockUserRequest) (bool, error)
	UnblockUser(ctx context.Context, id int64, password string) (bool, error)
	GrantSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error)
	ReduceSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error)
	RevokeSubscription(ctx context.Context, id int64, password string) (bool, error)
	GetPromoCodes(ctx context.Context) ([]models.PromoCode, error)
	GetPromoStats(ctx context.Context, id string) (*models.PromoStats, error)
	CreatePromoCode(ctx context.Context, req models.CreatePromoCodeRequest) (*models.PromoCode, error)
	DeletePromoCode(ctx context.Context, id string) (bool, error)
	CreatePaymentLink(ctx context.Context, req models.PaymentLinkRequest) (*models.PaymentLink, error)
	GetPlans(ctx context.Context) ([]models.Plan, error)
}

// Sessions операции менеджера сессии, нужные консоли.
type Sessions interface {
	Get(ctx context.Context) (*session.Session, error)
	Set(ctx context.Context, token string, admin models.Admin) error
	Clear(ctx context.Context, reason session.Reason) error
}

// Service сценарии консоли администратора.
type Service struct {
	api      API
	sessions Sessions
	audit    audit.Publisher
	log      *slog.Logger
}

// NewService создаёт сервис консоли.
func NewService(api API, sessions Sessions, pub audit.Publisher, log *slog.Logger) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		audit:    pub,
		log:      log,
	}
}

// API возвращает клиент бэкенда для операций только на чтение.
func (s *Service) API() API {
	return s.api
}

// Login входит и сохраняет сессию. При ошибке сохранённая сессия не меняется.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Admin, error) {
	const op = "console.Login"
	resp, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, resp.AccessToken, resp.Admin); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin logged in", sl.Op(op), slog.Int64("admin_id", resp.Admin.ID))
	return &resp.Admin, nil
}

// Logout стирает сессию.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx, session.ReasonLogout)
}

// CurrentAdmin возвращает закэшированного администратора, не обращаясь к бэкенду.
func (s *Service) CurrentAdmin(ctx context.Context) (*models.Admin, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Admin == nil {
		return nil, session.ErrNoSession
	}
	return sess.Admin, nil
}

// Confirm повторно проверяет пароль администратора перед чувствительным действием.
func (s *Service) Confirm(ctx context.Context, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	valid, err := s.api.VerifyAdminPassword(ctx, password)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalidPassword
	}
	return nil
}

// BlockUser подтверждает пароль и блокирует пользователя.
func (s *Service) BlockUser(ctx context.Context, id int64, req models.BlockUserRequest) (bool, error) {
	if err := s.Confirm(ctx, req.Password); err != nil {
		return false, err
	}
	ok, err := s.api.BlockUser(ctx, id, req)
	if err != nil {
		return false, err
	}
	s.record(ctx, audit.KindUserBlock, userTarget(id), map[string]any{"reason": req.Reason, "until": req.Until})
	return ok, nil
}

// UnblockUser подтверждает пароль и снимает блокировку.
func (s *Service) UnblockUser(ctx context.Context, id int64, password string) (bool, error) {
	if err := s.Confirm(ctx, password); err != nil {
		return false, err
	}
	ok, err := s.api.UnblockUser(ctx, id, password)
	if err != nil {
		return false, err
	}
	s.record(ctx, audit.KindUserUnblock, userTarget(id), nil)
	return ok, nil
}

// GrantSubscription подтверждает пароль и начисляет дни подписки.
func (s *Service) GrantSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error) {
	if days <= 0 {
		return nil, ErrInvalidDays
	}
	if err := s.Confirm(ctx, password); err != nil {
		return nil, err
	}
	res, err := s.api.GrantSubscription(ctx, id, days, password)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.KindSubscriptionGrant, userTarget(id), map[string]any{"days": days})
	return res, nil
}

// ReduceSubscription подтверждает пароль и списывает дни подписки.
func (s *Service) ReduceSubscription(ctx context.Context, id int64, days int, password string) (*models.SubscriptionChange, error) {
	if days <= 0 {
		return nil, ErrInvalidDays
	}
	if err := s.Confirm(ctx, password); err != nil {
		return nil, err
	}
	res, err := s.api.ReduceSubscription(ctx, id, days, password)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.KindSubscriptionReduce, userTarget(id), map[string]any{"days": days})
	return res, nil
}

// RevokeSubscription подтверждает пароль и отзывает подписку.
func (s *Service) RevokeSubscription(ctx context.Context, id int64, password string) (bool, error) {
	if err := s.Confirm(ctx, password); err != nil {
		return false, err
	}
	ok, err := s.api.RevokeSubscription(ctx, id, password)
	if err != nil {
		return false, err
	}
	s.record(ctx, audit.KindSubscriptionRevoke, userTarget(id), nil)
	return ok, nil
}

// CreatePromoCode создаёт промокод.
func (s *Service) CreatePromoCode(ctx context.Context, req models.CreatePromoCodeRequest) (*models.PromoCode, error) {
	created, err := s.api.CreatePromoCode(ctx, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.KindPromoCreate, "promo:"+created.ID, map[string]any{"code": created.Code, "discount": created.Label()})
	return created, nil
}

// DeletePromoCode удаляет промокод.
func (s *Service) DeletePromoCode(ctx context.Context, id string) (bool, error) {
	ok, err := s.api.DeletePromoCode(ctx, id)
	if err != nil {
		return false, err
	}
	s.record(ctx, audit.KindPromoDelete, "promo:"+id, nil)
	return ok, nil
}

// CreatePaymentLink создаёт ссылку на оплату.
func (s *Service) CreatePaymentLink(ctx context.Context, req models.PaymentLinkRequest) (*models.PaymentLink, error) {
	link, err := s.api.CreatePaymentLink(ctx, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.KindPaymentLink, "user:"+req.EmailOrID, map[string]any{
		"planId":      req.PlanID,
		"promoCodeId": req.PromoCodeID,
		"paymentId":   link.PaymentID,
	})
	return link, nil
}

// Overview данные страницы промокодов и тарифов вместе со статистикой.
type Overview struct {
	Stats      *models.DashboardStats `json:"stats"`
	Plans      []models.Plan          `json:"plans"`
	PromoCodes []models.PromoCode     `json:"promoCodes"`
}

// Overview загружает статистику, тарифы и промокоды параллельно.
// Первая ошибка отменяет остальные запросы. Результаты, пришедшие после
// выхода из метода или отмены ctx, никуда не пишутся.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	l := NewLoader(ctx)
	defer l.Close()

	var out Overview
	Load(l, s.api.GetDashboardStats, func(v *models.DashboardStats) { out.Stats = v }, nil)
	Load(l, s.api.GetPlans, func(v []models.Plan) { out.Plans = v }, nil)
	Load(l, s.api.GetPromoCodes, func(v []models.PromoCode) { out.PromoCodes = v }, nil)
	if err := l.Wait(); err != nil {
		return nil, err
	}
	if out.Plans == nil {
		out.Plans = []models.Plan{}
	}
	return &out, nil
}

func userTarget(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}

// record публикует событие аудита от имени текущего администратора. Ошибки только логируются.
func (s *Service) record(ctx context.Context, kind, target string, details map[string]any) {
	const op = "console.record"
	ev := audit.Event{Kind: kind, Target: target, Details: details}
	if admin, err := s.CurrentAdmin(ctx); err == nil {
		ev.AdminID = admin.ID
		ev.AdminEmail = admin.Email
	}
	if err := s.audit.Publish(ctx, ev); err != nil {
		s.log.Error("failed to publish audit event", sl.Op(op), slog.String("kind", kind), sl.Err(err))
	}
}

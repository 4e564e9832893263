package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

// loginPath признак запроса входа: на нём 401 означает неверный пароль, а не истёкшую сессию.
const loginPath = "auth/login"

// RequestIDHeader заголовок с идентификатором исходящего запроса.
const RequestIDHeader = "X-Request-ID"

// Middleware оборачивает транспорт: дополняет запрос или проверяет ответ.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc адаптер функции к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain собирает транспорт; первый middleware становится внешним.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// Sessions то, что клиенту нужно от менеджера сессии.
type Sessions interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context, reason session.Reason) error
}

// Navigator переводит всё приложение на страницу входа.
type Navigator interface {
	NavigateToLogin(ctx context.Context)
}

// NavigatorFunc адаптер функции к Navigator.
type NavigatorFunc func(ctx context.Context)

func (f NavigatorFunc) NavigateToLogin(ctx context.Context) { f(ctx) }

// RequestID добавляет X-Request-ID, если его нет.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set(RequestIDHeader, uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// BearerAuth перед каждым запросом читает сохранённый токен и кладёт его в Authorization.
// Без сессии заголовок не ставится.
func BearerAuth(sessions Sessions, log *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token, err := sessions.Token(r.Context())
			if err != nil {
				log.Warn("failed to read session token", sl.Op("apiclient.BearerAuth"), sl.Err(err))
			}
			if token == "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(r)
		})
	}
}

// SessionGuard на 401 от любого запроса, кроме входа, стирает сессию и уводит на страницу входа.
// Ответ всё равно возвращается вызывающему.
func SessionGuard(sessions Sessions, nav Navigator, log *slog.Logger) Middleware {
	const op = "apiclient.SessionGuard"
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(r)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}
			if strings.Contains(r.URL.Path, loginPath) {
				return resp, nil
			}

			ctx := context.WithoutCancel(r.Context())
			log.Warn("session rejected by backend, logging out",
				sl.Op(op),
				slog.String("path", r.URL.Path),
				slog.String("request_id", r.Header.Get(RequestIDHeader)),
			)
			if clearErr := sessions.Clear(ctx, session.ReasonExpired); clearErr != nil {
				log.Error("failed to clear session", sl.Op(op), sl.Err(clearErr))
			}
			if nav != nil {
				nav.NavigateToLogin(ctx)
			}
			return resp, nil
		})
	}
}

// Package middlewarectx содержит HTTP middleware консоли.
//
// RequireSession пропускает запрос дальше, только если cookie браузера
// указывает на сохранённую сессию администратора. Идентификатор сессии и
// администратор кладутся в контекст. Без cookie, без сессии или с истёкшим
// токеном возвращает 401 с адресом страницы входа.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Admin ключ администратора текущей сессии в контексте.
const Admin Key = "admin"

// Sessions источник сохранённой сессии.
type Sessions interface {
	Get(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context, reason session.Reason) error
}

// AdminFrom возвращает администратора, положенного RequireSession.
func AdminFrom(ctx context.Context) (*models.Admin, bool) {
	a, ok := ctx.Value(Admin).(*models.Admin)
	return a, ok
}

// RequireSession возвращает middleware, требующий сохранённую сессию вызывающего.
func RequireSession(sessions Sessions, cookie Cookie, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireSession"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			id, ok := cookie.Read(r)
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized("Требуется вход"))
				return
			}
			ctx := session.WithID(r.Context(), id)

			sess, err := sessions.Get(ctx)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					cookie.Expire(w)
				} else {
					log.Error("failed to load session", sl.Err(err))
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized("Требуется вход"))
				return
			}
			if sess.Expired(time.Now()) {
				log.Info("session token expired")
				if err := sessions.Clear(ctx, session.ReasonExpired); err != nil {
					log.Error("failed to clear expired session", sl.Err(err))
				}
				cookie.Expire(w)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized("Сессия истекла, войдите снова"))
				return
			}

			if sess.Admin != nil {
				ctx = context.WithValue(ctx, Admin, sess.Admin)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

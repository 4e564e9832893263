// Package adminconsole собирает сервер консоли администратора: маршруты,
// хранилище сессии, клиент бэкенда, аудит и метрики.
package adminconsole

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/dashboard/overview"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/dashboard/stats"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/payment/plans"
	promocreate "github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/promo/create"
	promolist "github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/promo/list"
	promoremove "github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/promo/remove"
	promostats "github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/promo/stats"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/users/block"
	userlist "github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/users/list"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/users/read"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/users/subscription"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/handlers/users/unblock"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-admin-console/internal/services/console"
)

// RegisterRoutes регистрирует все маршруты консоли.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *console.Service, sessions middlewarectx.Sessions, cookie middlewarectx.Cookie, limiter *rate.Limiter, gatherer prometheus.Gatherer) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.With(middlewarectx.RateLimitMiddleware(limiter, logger)).
		Post("/login", login.New(logger, svc, cookie).ServeHTTP)

	requireSession := middlewarectx.RequireSession(sessions, cookie, logger)
	r.With(requireSession).Post("/logout", logout.New(logger, svc, cookie).ServeHTTP)

	api := svc.API()
	r.Route("/api", func(r chi.Router) {
		r.Use(requireSession)

		r.Get("/me", me.New(logger, api).ServeHTTP)
		r.Get("/dashboard", stats.New(logger, api).ServeHTTP)
		r.Get("/overview", overview.New(logger, svc).ServeHTTP)

		r.Get("/users", userlist.New(logger, api).ServeHTTP)
		r.Get("/users/{id}", read.New(logger, api).ServeHTTP)
		r.Post("/users/{id}/block", block.New(logger, svc).ServeHTTP)
		r.Post("/users/{id}/unblock", unblock.New(logger, svc).ServeHTTP)
		r.Post("/users/{id}/subscription/{action}", subscription.New(logger, svc).ServeHTTP)

		r.Get("/promocodes", promolist.New(logger, api).ServeHTTP)
		r.Post("/promocodes", promocreate.New(logger, svc).ServeHTTP)
		r.Get("/promocodes/{id}/stats", promostats.New(logger, api).ServeHTTP)
		r.Delete("/promocodes/{id}", promoremove.New(logger, svc).ServeHTTP)

		r.Post("/payments/link", paymentcreate.New(logger, svc).ServeHTTP)
		r.Get("/plans", plans.New(logger, api).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

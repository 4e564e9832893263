package adminconsole

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/subscription-admin-console/internal/apiclient"
	"github.com/magabrotheeeer/subscription-admin-console/internal/audit"
	"github.com/magabrotheeeer/subscription-admin-console/internal/config"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-admin-console/internal/http/response"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/services/console"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

// Хранилища сессии, выбираемые конфигом.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

const redisKeyPrefix = "admin-console:"

type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []func() error
}

// New собирает приложение по конфигу.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "adminconsole.New"
	a := &App{logger: logger}

	store, err := a.sessionStore(ctx, cfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sessions := session.NewManager(store, logger)

	publisher, err := a.auditPublisher(cfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sessions.Subscribe(audit.SessionObserver(publisher, logger))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client, err := apiclient.New(apiclient.Options{
		APIURL:  cfg.APIURL,
		Origin:  cfg.PublicOrigin,
		Timeout: cfg.TimeoutClient,
		Metrics: apiclient.NewMetrics(registry),
	}, sessions, loginRedirect(logger), logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("backend resolved", slog.String("base_url", client.BaseURL()))

	svc := console.NewService(client, sessions, publisher, logger)

	router := chi.NewRouter()
	cookie := middlewarectx.Cookie{Name: cfg.CookieName, Secure: cfg.CookieSecure}
	RegisterRoutes(router, logger, svc, sessions, cookie, rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst), registry)

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

func (a *App) sessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Store {
	case StoreMemory:
		return session.NewMemoryStore(), nil
	case StoreFile, "":
		return session.NewFileStore(cfg.FilePath), nil
	case StoreRedis:
		db, err := session.NewRedisClient(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return session.NewRedisStore(db, redisKeyPrefix), nil
	}
	return nil, fmt.Errorf("unknown session store %q", cfg.Store)
}

// auditPublisher подключается к RabbitMQ. Пустой адрес выключает аудит.
func (a *App) auditPublisher(cfg *config.Config) (audit.Publisher, error) {
	if cfg.AMQPURL == "" {
		a.logger.Info("audit disabled")
		return audit.NopPublisher{}, nil
	}
	conn, err := rabbitmq.Connect(cfg.AMQPURL, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, conn.Close)

	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.AuditQueues(cfg.RoutingKey))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, ch.Close)
	return audit.NewAMQPPublisher(ch, cfg.Exchange, cfg.RoutingKey), nil
}

// loginRedirect фиксирует потерю сессии. Сам переход на вход администратор
// получает из ответа 401 с полем redirect.
func loginRedirect(logger *slog.Logger) apiclient.Navigator {
	return apiclient.NavigatorFunc(func(ctx context.Context) {
		logger.Warn("session expired, login required", slog.String("redirect", response.LoginPage))
	})
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает ресурсы в обратном порядке.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}

// Команда audit-tail читает очередь аудита консоли и пишет события в лог.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magabrotheeeer/subscription-admin-console/internal/audit"
	"github.com/magabrotheeeer/subscription-admin-console/internal/config"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if cfg.AMQPURL == "" {
		logger.Error("AUDIT_AMQP_URL is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := rabbitmq.Connect(cfg.AMQPURL, 5, 2*time.Second)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", sl.Err(err))
		os.Exit(1)
	}
	defer conn.Close()

	queues := rabbitmq.AuditQueues(cfg.RoutingKey)
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, queues)
	if err != nil {
		logger.Error("failed to setup channel", sl.Err(err))
		os.Exit(1)
	}
	defer ch.Close()

	if err := rabbitmq.ConsumeMessages(ctx, ch, queues[0].QueueName, audit.LogHandler(logger), logger); err != nil {
		logger.Error("failed to consume audit queue", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("audit-tail started", slog.String("queue", queues[0].QueueName))
	<-ctx.Done()
	logger.Info("audit-tail stopped")
}

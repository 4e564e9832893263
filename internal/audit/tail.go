package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
)

// LogHandler пишет события аудита из очереди в лог.
// Нечитаемые сообщения пропускаются, чтобы не возвращаться в очередь бесконечно.
func LogHandler(log *slog.Logger) rabbitmq.Handler {
	const op = "audit.LogHandler"
	return func(_ context.Context, body []byte) error {
		var e Event
		if err := json.Unmarshal(body, &e); err != nil {
			log.Error("malformed audit event dropped", sl.Op(op), sl.Err(err))
			return nil
		}
		attrs := []any{
			slog.String("id", e.ID),
			slog.String("kind", e.Kind),
			slog.Time("at", e.At),
		}
		if e.AdminEmail != "" {
			attrs = append(attrs, slog.Int64("admin_id", e.AdminID), slog.String("admin", e.AdminEmail))
		}
		if e.Target != "" {
			attrs = append(attrs, slog.String("target", e.Target))
		}
		if len(e.Details) > 0 {
			attrs = append(attrs, slog.Any("details", e.Details))
		}
		log.Info("audit", attrs...)
		return nil
	}
}

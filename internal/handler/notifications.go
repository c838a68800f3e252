package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

// publishNotification enqueues a mail notification. Queue trouble is
// logged and swallowed so the HTTP request that triggered it still
// succeeds.
func (h *Handler) publishNotification(r *http.Request, msg domain.NotificationMessage) {
	if h.notifyChannel == nil {
		return
	}

	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to encode notification", "type", msg.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = h.notifyChannel.PublishWithContext(ctx, "", "notification_queue", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		slog.Error("failed to publish notification", "type", msg.Type, "to", msg.To, "error", err)
	}
}

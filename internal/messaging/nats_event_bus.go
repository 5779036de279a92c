package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"maid-recruitment-backend/internal/domain"

	"github.com/nats-io/nats.go"
)

const (
	subjectPrefix  = "recruitment."
	connectTimeout = 10 * time.Second
)

// NATSEventBus implements domain.EventBus over a NATS connection.
// Events are published on subjects derived from the event type, e.g.
// "recruitment.job_posting.created".
type NATSEventBus struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewNATSEventBus(natsURL string, logger *slog.Logger) (*NATSEventBus, error) {
	opts := []nats.Option{
		nats.Timeout(connectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn, logger: logger}, nil
}

func (b *NATSEventBus) Publish(_ context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event %s: %w", event.Type, err)
	}

	subject := subjectPrefix + event.Type
	if err := b.conn.Publish(subject, data); err != nil {
		b.logger.Error("failed to publish domain event",
			"type", event.Type,
			"subject", subject,
			"error", err)
		return fmt.Errorf("publishing to NATS: %w", err)
	}

	b.logger.Debug("published domain event", "type", event.Type, "subject", subject)
	return nil
}

func (b *NATSEventBus) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}

// Package events publishes marketplace lifecycle events to NATS for
// downstream consumers. Publication is best-effort: a failure is
// logged and never surfaces into the user flow.
package events

import (
	"encoding/json"
	"time"

	"marketplace-service/internal/logger"

	"github.com/nats-io/nats.go"
)

const (
	SubjectLogin        = "marketplace.identity.login"
	SubjectOnboarded    = "marketplace.identity.onboarded"
	SubjectLogout       = "marketplace.identity.logout"
	SubjectOfferCreated = "marketplace.offer.created"
)

// Publisher emits JSON events. A nil Publisher is valid and drops
// everything, so callers never need to branch on configuration.
type Publisher struct {
	conn *nats.Conn
}

func Connect(url string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("marketplace-service"))
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Publish(subject string, payload map[string]any) {
	if p == nil || p.conn == nil {
		return
	}

	payload["at"] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("event marshal failed", map[string]any{
			"subject": subject,
			"error":   err.Error(),
		})
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		logger.Warn("event publish failed", map[string]any{
			"subject": subject,
			"error":   err.Error(),
		})
	}
}

func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

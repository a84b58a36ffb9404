package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"fair-wager-core/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// EventChannel is the pub/sub channel carrying post-commit ledger events.
const EventChannel = "ledger.events"

// EventPublisher implements ports.EventPublisher over Redis pub/sub.
type EventPublisher struct {
	client *goredis.Client
	log    zerolog.Logger
}

func NewEventPublisher(client *goredis.Client, log zerolog.Logger) *EventPublisher {
	return &EventPublisher{client: client, log: log}
}

func (p *EventPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	if err := p.client.Publish(ctx, EventChannel, payload).Err(); err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}
	p.log.Debug().
		Str("event", event.EventName).
		Str("account_id", event.AccountID.String()).
		Msg("Ledger event published")
	return nil
}

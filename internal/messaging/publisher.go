package messaging

//go:generate mockgen -destination=mock/mock_publisher.go -package=messagingmock github.com/KirkDiggler/rpg-dungeon/internal/messaging Publisher

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-dungeon/internal/redis"
)

const (
	// Stream entry fields
	FieldType    = "type"
	FieldPayload = "payload"

	DefaultEventsStream = "dungeon.events"
	DefaultCombatStream = "combat.triggers"
)

// Publisher appends events to durable streams. Delivery is at-least-once
// from the consumer's point of view.
type Publisher interface {
	// PublishRunEvent appends a lifecycle event to the events stream
	PublishRunEvent(ctx context.Context, event Event) error

	// PublishCombatTrigger appends a combat trigger to the combat stream
	PublishCombatTrigger(ctx context.Context, trigger *CombatTrigger) error

	// Ping verifies the broker is reachable
	Ping(ctx context.Context) error
}

// Config holds the configuration for the stream publisher
type Config struct {
	Client       redisclient.Client
	EventsStream string
	CombatStream string
	// MaxLen trims streams approximately; zero disables trimming
	MaxLen int64
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.MaxLen < 0 {
		vb.Field("MaxLen", "must not be negative")
	}
	return vb.Build()
}

type streamPublisher struct {
	client       redisclient.Client
	eventsStream string
	combatStream string
	maxLen       int64
}

// NewStreamPublisher creates a Redis Streams publisher
func NewStreamPublisher(cfg *Config) (Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := &streamPublisher{
		client:       cfg.Client,
		eventsStream: cfg.EventsStream,
		combatStream: cfg.CombatStream,
		maxLen:       cfg.MaxLen,
	}
	if p.eventsStream == "" {
		p.eventsStream = DefaultEventsStream
	}
	if p.combatStream == "" {
		p.combatStream = DefaultCombatStream
	}
	return p, nil
}

func (p *streamPublisher) PublishRunEvent(ctx context.Context, event Event) error {
	if event == nil {
		return errors.InvalidArgument("event cannot be nil")
	}
	return p.append(ctx, p.eventsStream, event)
}

func (p *streamPublisher) PublishCombatTrigger(ctx context.Context, trigger *CombatTrigger) error {
	if trigger == nil {
		return errors.InvalidArgument("combat trigger cannot be nil")
	}
	return p.append(ctx, p.combatStream, trigger)
}

func (p *streamPublisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "broker unreachable")
	}
	return nil
}

func (p *streamPublisher) append(ctx context.Context, stream string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", event.EventType())
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			FieldType:    string(event.EventType()),
			FieldPayload: string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to publish %s", event.EventType())
	}
	return nil
}

// Package eventbus is the in-process domain event bus. It wraps Watermill's
// gochannel transport behind a typed API: the event set is closed, payloads
// are statically typed, and topic strings never leak past this package and
// the event definitions.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	audioevents "github.com/soundcord/soundcord-bot/app/modules/audio/domain/events"
)

// PlayRequestedHandler consumes a play request event. A returned error is
// logged and does not affect the publisher or sibling subscribers.
type PlayRequestedHandler func(ctx context.Context, payload audioevents.PlayRequestedPayload) error

// PlayFinishedHandler consumes a play finished event.
type PlayFinishedHandler func(ctx context.Context, payload audioevents.PlayFinishedPayload) error

// EventBus decouples "audio play requested" from the voice session lifecycle.
// Delivery is in-process, at-most-once, to currently registered subscribers
// only; there is no buffering of missed events and no persistence.
type EventBus interface {
	PublishPlayRequested(ctx context.Context, payload audioevents.PlayRequestedPayload) error
	PublishPlayFinished(ctx context.Context, payload audioevents.PlayFinishedPayload) error

	// Subscriptions live until ctx is canceled or the bus is closed.
	SubscribePlayRequested(ctx context.Context, handler PlayRequestedHandler) error
	SubscribePlayFinished(ctx context.Context, handler PlayFinishedHandler) error

	Close() error
}

type eventBus struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

// New creates an in-process event bus.
func New(logger *slog.Logger) EventBus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &eventBus{
		pubSub: pubSub,
		logger: logger,
	}
}

func (b *eventBus) PublishPlayRequested(ctx context.Context, payload audioevents.PlayRequestedPayload) error {
	return publish(b, audioevents.TopicPlayRequested, payload)
}

func (b *eventBus) PublishPlayFinished(ctx context.Context, payload audioevents.PlayFinishedPayload) error {
	return publish(b, audioevents.TopicPlayFinished, payload)
}

func (b *eventBus) SubscribePlayRequested(ctx context.Context, handler PlayRequestedHandler) error {
	return subscribe(b, ctx, audioevents.TopicPlayRequested, handler)
}

func (b *eventBus) SubscribePlayFinished(ctx context.Context, handler PlayFinishedHandler) error {
	return subscribe(b, ctx, audioevents.TopicPlayFinished, handler)
}

func (b *eventBus) Close() error {
	return b.pubSub.Close()
}

func publish[T any](b *eventBus, topic string, payload T) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	if err := b.pubSub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}

// subscribe registers handler for future publishes on topic and drains the
// subscription in a goroutine. Handler and unmarshal errors are logged and the
// message is acked anyway: one failing subscriber never stalls the topic or
// its siblings.
func subscribe[T any](b *eventBus, ctx context.Context, topic string, handler func(context.Context, T) error) error {
	messages, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	go func() {
		for msg := range messages {
			var payload T
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				b.logger.Error("Failed to unmarshal event payload",
					slog.String("topic", topic),
					slog.String("message_id", msg.UUID),
					slog.Any("error", err),
				)
				msg.Ack()
				continue
			}

			if err := handler(ctx, payload); err != nil {
				b.logger.Error("Event handler failed",
					slog.String("topic", topic),
					slog.String("message_id", msg.UUID),
					slog.Any("error", err),
				)
			}
			msg.Ack()
		}
	}()

	return nil
}

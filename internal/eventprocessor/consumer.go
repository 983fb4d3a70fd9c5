// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cashpick/internal/metrics"
)

// ErrSubscriptionClosed is returned by Serve when the message channel closes
// while the service is still meant to be running.
var ErrSubscriptionClosed = errors.New("subscription closed unexpectedly")

// HandlerFunc processes one decoded event. A returned error nacks the message.
type HandlerFunc func(ctx context.Context, event *InteractionEvent) error

// ConsumerStats contains consumer counters.
type ConsumerStats struct {
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
	Invalid   int64 `json:"invalid"`
}

// Consumer reads interaction events and hands them to a HandlerFunc.
// It implements suture.Service.
type Consumer struct {
	subscriber message.Subscriber
	topic      string
	handler    HandlerFunc
	logger     zerolog.Logger

	processed atomic.Int64
	failed    atomic.Int64
	invalid   atomic.Int64
}

// NewConsumer creates a consumer for topic.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConsumer(sub message.Subscriber, topic string, handler HandlerFunc, logger zerolog.Logger) *Consumer {
	return &Consumer{
		subscriber: sub,
		topic:      topic,
		handler:    handler,
		logger:     logger.With().Str("component", "event-consumer").Str("topic", topic).Logger(),
	}
}

// Serve subscribes and processes messages until ctx is canceled.
func (c *Consumer) Serve(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}
	c.logger.Info().Msg("Event consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return ErrSubscriptionClosed
			}
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg *message.Message) {
	start := time.Now()

	event, err := DeserializeEvent(msg.Payload)
	if err != nil {
		// Redelivery cannot fix a bad payload.
		msg.Ack()
		c.invalid.Add(1)
		metrics.RecordEventConsumed(c.topic, "invalid", time.Since(start))
		c.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping invalid event")
		return
	}

	if c.handler != nil {
		if err := c.handler(ctx, event); err != nil {
			msg.Nack()
			c.failed.Add(1)
			metrics.RecordEventConsumed(c.topic, "failed", time.Since(start))
			c.logger.Error().Err(err).Str("event_id", event.EventID).Msg("Event processing failed")
			return
		}
	}

	msg.Ack()
	c.processed.Add(1)
	metrics.RecordEventConsumed(c.topic, "processed", time.Since(start))
}

// Stats returns the consumer counters.
func (c *Consumer) Stats() ConsumerStats {
	return ConsumerStats{
		Processed: c.processed.Load(),
		Failed:    c.failed.Load(),
		Invalid:   c.invalid.Load(),
	}
}

// String implements fmt.Stringer for suture logging.
func (c *Consumer) String() string {
	return "event-consumer(" + c.topic + ")"
}

// Invalidator drops cached fitted models.
type Invalidator interface {
	Invalidate()
}

// InvalidateOnEvent returns a handler that invalidates the fit cache for
// every recorded interaction.
func InvalidateOnEvent(inv Invalidator) HandlerFunc {
	return func(ctx context.Context, event *InteractionEvent) error {
		inv.Invalidate()
		metrics.RecordFitCacheInvalidation("event")
		return nil
	}
}

// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package main

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/cashpick/internal/api"
	"github.com/tomtom215/cashpick/internal/config"
	"github.com/tomtom215/cashpick/internal/eventprocessor"
	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/supervisor"
)

// EventComponents holds the interaction event bus.
type EventComponents struct {
	Publisher  *eventprocessor.Publisher
	Subscriber message.Subscriber
	Consumer   *eventprocessor.Consumer
	Server     *eventprocessor.EmbeddedServer // embedded backend only
}

// interactionPublisher returns the publisher as the API's interface type,
// or a nil interface when no publisher exists.
func (ec *EventComponents) interactionPublisher() api.InteractionPublisher {
	if ec == nil || ec.Publisher == nil {
		return nil
	}
	return ec.Publisher
}

// Close shuts down the publisher, the subscriber and the embedded server.
// For the memory backend publisher and subscriber are the same channel and
// the second close is a no-op.
func (ec *EventComponents) Close() {
	if ec.Publisher != nil {
		if err := ec.Publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event publisher")
		}
	}
	if ec.Subscriber != nil {
		if err := ec.Subscriber.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event subscriber")
		}
	}
	if ec.Server != nil {
		ec.Server.Shutdown()
	}
}

// initEvents wires recorded interactions to fit cache invalidation: the API
// publishes an event per interaction and the consumer drops cached models.
func initEvents(cfg *config.Config, inv eventprocessor.Invalidator, tree *supervisor.SupervisorTree) (*EventComponents, error) {
	logger := logging.WithComponent("events")

	eventsCfg := cfg.Events
	var embedded *eventprocessor.EmbeddedServer
	if eventsCfg.Backend == eventprocessor.BackendEmbedded {
		srv, err := eventprocessor.NewEmbeddedServer(eventsCfg.EmbeddedHost, eventsCfg.EmbeddedPort)
		if err != nil {
			return nil, err
		}
		embedded = srv
		eventsCfg.Backend = eventprocessor.BackendNATS
		eventsCfg.NATSURL = srv.ClientURL()
		logger.Info().Str("url", srv.ClientURL()).Msg("Embedded NATS server started")
	}

	pub, sub, err := eventprocessor.NewPubSub(&eventsCfg, logging.NewWatermillAdapter(logger))
	if err != nil {
		if embedded != nil {
			embedded.Shutdown()
		}
		return nil, fmt.Errorf("create pubsub: %w", err)
	}

	breakerCfg := eventprocessor.DefaultCircuitBreakerConfig("events-publisher")
	breakerCfg.FailureThreshold = cfg.Events.BreakerMaxFailures
	breakerCfg.Timeout = cfg.Events.BreakerTimeout

	publisher := eventprocessor.NewPublisher(pub, cfg.Events.Topic)
	publisher.SetCircuitBreaker(eventprocessor.NewCircuitBreaker(breakerCfg))

	consumer := eventprocessor.NewConsumer(sub, cfg.Events.Topic, eventprocessor.InvalidateOnEvent(inv), logger)
	tree.AddMessagingService(consumer)

	logger.Info().
		Str("backend", cfg.Events.Backend).
		Str("url", eventsCfg.NATSURL).
		Str("topic", cfg.Events.Topic).
		Msg("Event bus initialized")

	return &EventComponents{
		Publisher:  publisher,
		Subscriber: sub,
		Consumer:   consumer,
		Server:     embedded,
	}, nil
}

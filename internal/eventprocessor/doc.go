// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

/*
Package eventprocessor carries interaction events between the API and the
background consumers.

# Overview

Every feedback event accepted by the API is written to DuckDB and then
published as an InteractionEvent on the "interaction.recorded" topic. A
supervised Consumer reads the topic and invalidates the recommendation
engine's fit cache, so the next request refits on the new data.

The transport is Watermill:
  - memory: the gochannel pub/sub, for single-instance deployments and tests
  - nats: watermill-nats over JetStream, for multi-replica deployments where
    every replica must drop its cached fit

# Resilience

Publisher wraps the Watermill publisher in a gobreaker circuit breaker. When
the broker is unreachable the breaker opens and Publish fails fast with
gobreaker.ErrOpenState. The interaction is already persisted at that point,
so a lost event only delays invalidation until the next fingerprint change.

# Usage

	pub, sub, err := eventprocessor.NewPubSub(cfg, logging.NewWatermillAdapter(logger))
	publisher := eventprocessor.NewPublisher(pub, cfg.Topic)
	publisher.SetCircuitBreaker(eventprocessor.NewCircuitBreaker(
		eventprocessor.DefaultCircuitBreakerConfig("events")))

	consumer := eventprocessor.NewConsumer(sub, cfg.Topic,
		eventprocessor.InvalidateOnEvent(engine), logger)
	supervisor.AddService(consumer)
*/
package eventprocessor

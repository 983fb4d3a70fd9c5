// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package eventprocessor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cashpick/internal/config"
)

const testTopic = "interaction.recorded"

// failingPublisher always fails.
type failingPublisher struct {
	calls atomic.Int64
}

func (f *failingPublisher) Publish(topic string, msgs ...*message.Message) error {
	f.calls.Add(1)
	return errors.New("connection refused")
}

func (f *failingPublisher) Close() error { return nil }

type countingInvalidator struct{ n atomic.Int64 }

func (c *countingInvalidator) Invalidate() { c.n.Add(1) }

// persistentChannel keeps messages published before Subscribe.
func persistentChannel(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	ch := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestNewPubSub(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		pub, sub, err := NewPubSub(&config.EventsConfig{Backend: BackendMemory}, nil)
		if err != nil {
			t.Fatalf("NewPubSub() error = %v", err)
		}
		defer func() { _ = pub.Close() }()
		if _, ok := sub.(*gochannel.GoChannel); !ok {
			t.Errorf("subscriber type = %T, want *gochannel.GoChannel", sub)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, _, err := NewPubSub(&config.EventsConfig{Backend: "kafka"}, nil); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewPubSub() error = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestPublisher_PublishInteraction(t *testing.T) {
	ch := persistentChannel(t)
	pub := NewPublisher(ch, testTopic)

	event := NewInteractionEvent(sampleInteraction(), "api", "corr-1")
	if err := pub.PublishInteraction(context.Background(), event); err != nil {
		t.Fatalf("PublishInteraction() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	messages, err := ch.Subscribe(ctx, testTopic)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		if msg.UUID != event.EventID {
			t.Errorf("UUID = %s, want %s", msg.UUID, event.EventID)
		}
		if got := msg.Metadata.Get(natsgo.MsgIdHdr); got != event.EventID {
			t.Errorf("%s = %q, want %q", natsgo.MsgIdHdr, got, event.EventID)
		}
		if got := msg.Metadata.Get("correlation_id"); got != "corr-1" {
			t.Errorf("correlation_id = %q, want corr-1", got)
		}
		got, err := DeserializeEvent(msg.Payload)
		if err != nil {
			t.Fatalf("DeserializeEvent() error = %v", err)
		}
		if got.UserID != event.UserID {
			t.Errorf("UserID = %d, want %d", got.UserID, event.UserID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}

func TestPublisher_CircuitBreaker(t *testing.T) {
	failing := &failingPublisher{}
	pub := NewPublisher(failing, testTopic)
	if pub.BreakerState() != "disabled" {
		t.Errorf("BreakerState() = %s, want disabled", pub.BreakerState())
	}

	cfg := DefaultCircuitBreakerConfig("events-test")
	cfg.FailureThreshold = 3
	cfg.Timeout = time.Minute
	pub.SetCircuitBreaker(NewCircuitBreaker(cfg))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := pub.PublishInteraction(ctx, NewInteractionEvent(sampleInteraction(), "api", ""))
		if err == nil || errors.Is(err, gobreaker.ErrOpenState) {
			t.Fatalf("publish #%d error = %v, want broker error", i, err)
		}
	}

	err := pub.PublishInteraction(ctx, NewInteractionEvent(sampleInteraction(), "api", ""))
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("publish after threshold error = %v, want ErrOpenState", err)
	}
	if got := failing.calls.Load(); got != 3 {
		t.Errorf("underlying publisher called %d times, want 3", got)
	}
	if pub.BreakerState() != "open" {
		t.Errorf("BreakerState() = %s, want open", pub.BreakerState())
	}
}

func TestPublisher_Close(t *testing.T) {
	pub := NewPublisher(&failingPublisher{}, testTopic)
	if err := pub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	err := pub.PublishInteraction(context.Background(), NewInteractionEvent(sampleInteraction(), "api", ""))
	if !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("PublishInteraction() error = %v, want ErrPublisherClosed", err)
	}
}

func TestConsumer_InvalidatesOnEvent(t *testing.T) {
	ch := persistentChannel(t)
	pub := NewPublisher(ch, testTopic)
	ctx := context.Background()

	if err := pub.PublishInteraction(ctx, NewInteractionEvent(sampleInteraction(), "api", "")); err != nil {
		t.Fatalf("PublishInteraction() error = %v", err)
	}
	if err := ch.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("not json"))); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	inv := &countingInvalidator{}
	consumer := NewConsumer(ch, testTopic, InvalidateOnEvent(inv), zerolog.Nop())
	if consumer.String() != "event-consumer(interaction.recorded)" {
		t.Errorf("String() = %s", consumer.String())
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- consumer.Serve(runCtx) }()

	waitFor(t, "event processing", func() bool {
		s := consumer.Stats()
		return s.Processed == 1 && s.Invalid == 1
	})
	if got := inv.n.Load(); got != 1 {
		t.Errorf("Invalidate called %d times, want 1", got)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestConsumer_NackRedelivers(t *testing.T) {
	ch := persistentChannel(t)
	pub := NewPublisher(ch, testTopic)
	if err := pub.PublishInteraction(context.Background(), NewInteractionEvent(sampleInteraction(), "api", "")); err != nil {
		t.Fatalf("PublishInteraction() error = %v", err)
	}

	var attempts atomic.Int64
	handler := func(ctx context.Context, event *InteractionEvent) error {
		if attempts.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	}
	consumer := NewConsumer(ch, testTopic, handler, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = consumer.Serve(ctx) }()

	waitFor(t, "redelivery", func() bool {
		s := consumer.Stats()
		return s.Failed == 1 && s.Processed == 1
	})
}

func TestNATSBackend_EmbeddedRoundTrip(t *testing.T) {
	srv, err := NewEmbeddedServer("127.0.0.1", -1)
	if err != nil {
		t.Fatalf("NewEmbeddedServer() error = %v", err)
	}
	defer srv.Shutdown()
	if !srv.IsRunning() {
		t.Fatal("IsRunning() = false after start")
	}

	cfg := &config.EventsConfig{Backend: BackendNATS, NATSURL: srv.ClientURL(), Topic: testTopic}
	wmPub, sub, err := NewPubSub(cfg, nil)
	if err != nil {
		t.Fatalf("NewPubSub() error = %v", err)
	}
	defer func() { _ = sub.Close() }()
	pub := NewPublisher(wmPub, testTopic)
	defer func() { _ = pub.Close() }()

	inv := &countingInvalidator{}
	consumer := NewConsumer(sub, testTopic, InvalidateOnEvent(inv), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = consumer.Serve(ctx) }()

	// Core NATS drops messages published before the subscription exists,
	// so keep publishing until one lands.
	deadline := time.Now().Add(5 * time.Second)
	for inv.n.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no event delivered over NATS")
		}
		if err := pub.PublishInteraction(ctx, NewInteractionEvent(sampleInteraction(), "api", "")); err != nil {
			t.Fatalf("PublishInteraction() error = %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

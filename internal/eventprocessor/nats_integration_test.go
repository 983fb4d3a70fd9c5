// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

//go:build integration

package eventprocessor

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cashpick/internal/config"
	"github.com/tomtom215/cashpick/internal/testinfra"
)

func TestNATSBackend_Container(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	nc, err := testinfra.NewNATSContainer(ctx)
	if err != nil {
		t.Fatalf("NewNATSContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, nc)

	cfg := &config.EventsConfig{Backend: BackendNATS, NATSURL: nc.URL, Topic: testTopic}

	// Two subscribers stand in for two replicas; both must see the event.
	wmPub, subA, err := NewPubSub(cfg, nil)
	if err != nil {
		t.Fatalf("NewPubSub() error = %v", err)
	}
	defer func() { _ = subA.Close() }()
	_, subB, err := NewPubSub(cfg, nil)
	if err != nil {
		t.Fatalf("NewPubSub() error = %v", err)
	}
	defer func() { _ = subB.Close() }()

	pub := NewPublisher(wmPub, testTopic)
	defer func() { _ = pub.Close() }()

	invA, invB := &countingInvalidator{}, &countingInvalidator{}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = NewConsumer(subA, testTopic, InvalidateOnEvent(invA), zerolog.Nop()).Serve(runCtx) }()
	go func() { _ = NewConsumer(subB, testTopic, InvalidateOnEvent(invB), zerolog.Nop()).Serve(runCtx) }()

	deadline := time.Now().Add(10 * time.Second)
	for invA.n.Load() == 0 || invB.n.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("invalidations = %d, %d; want both > 0", invA.n.Load(), invB.n.Load())
		}
		if err := pub.PublishInteraction(runCtx, NewInteractionEvent(sampleInteraction(), "api", "")); err != nil {
			t.Fatalf("PublishInteraction() error = %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package main

import (
	"testing"
	"time"

	"github.com/tomtom215/cashpick/internal/config"
	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/supervisor"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate() { c.calls++ }

func newTestTree(t *testing.T) *supervisor.SupervisorTree {
	t.Helper()
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("test"), supervisor.DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	return tree
}

func TestInitEvents_Memory(t *testing.T) {
	cfg := &config.Config{Events: config.EventsConfig{
		Backend:            "memory",
		Topic:              "interaction.recorded",
		BreakerMaxFailures: 3,
		BreakerTimeout:     time.Second,
	}}

	ec, err := initEvents(cfg, &countingInvalidator{}, newTestTree(t))
	if err != nil {
		t.Fatalf("initEvents() error = %v", err)
	}
	defer ec.Close()

	if ec.Publisher == nil || ec.Consumer == nil || ec.Subscriber == nil {
		t.Fatalf("initEvents() = %+v, want all components", ec)
	}
	if got := ec.Publisher.Topic(); got != "interaction.recorded" {
		t.Errorf("Topic() = %q, want interaction.recorded", got)
	}
	if got := ec.Publisher.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
	if ec.interactionPublisher() == nil {
		t.Error("interactionPublisher() = nil, want publisher")
	}
}

func TestInitEvents_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Events: config.EventsConfig{Backend: "kafka", Topic: "t"}}
	if _, err := initEvents(cfg, &countingInvalidator{}, newTestTree(t)); err == nil {
		t.Error("initEvents() error = nil, want error for unknown backend")
	}
}

func TestEventComponents_NilPublisher(t *testing.T) {
	var ec *EventComponents
	if p := ec.interactionPublisher(); p != nil {
		t.Errorf("interactionPublisher() = %v, want nil interface", p)
	}
	(&EventComponents{}).Close()
}

func TestInitEvents_Embedded(t *testing.T) {
	cfg := &config.Config{Events: config.EventsConfig{
		Backend:            "embedded",
		EmbeddedHost:       "127.0.0.1",
		EmbeddedPort:       -1,
		Topic:              "interaction.recorded",
		BreakerMaxFailures: 3,
		BreakerTimeout:     time.Second,
	}}

	ec, err := initEvents(cfg, &countingInvalidator{}, newTestTree(t))
	if err != nil {
		t.Fatalf("initEvents() error = %v", err)
	}
	defer ec.Close()

	if ec.Server == nil || !ec.Server.IsRunning() {
		t.Fatal("embedded server not running")
	}
	if cfg.Events.Backend != "embedded" {
		t.Errorf("initEvents() mutated config backend to %q", cfg.Events.Backend)
	}
}

// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package testinfra starts Docker containers for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// # NATS Container
//
// NATSContainer runs a real NATS broker so the event bus can be tested
// against the same server replicas use in production:
//
//	func TestEvents(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    nc, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, nc)
//
//	    cfg := &config.EventsConfig{Backend: "nats", NATSURL: nc.URL, Topic: "t"}
//	    pub, sub, err := eventprocessor.NewPubSub(cfg, nil)
//	    // ...
//	}
//
// Tests skip when Docker is unavailable. The first run pulls the image.
package testinfra

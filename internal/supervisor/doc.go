// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

/*
Package supervisor runs the long-lived services of the server under a
suture v4 supervisor tree.

Services are grouped into three layers so that a failing layer restarts
without taking the others down:

	RootSupervisor ("cashpick")
	├── DataSupervisor ("data-layer")
	│   ├── SnapshotService   (if SNAPSHOT_ENABLED)
	│   └── ModelPruneService (if FIT_CACHE_PERSIST)
	├── MessagingSupervisor ("messaging-layer")
	│   └── eventprocessor.Consumer
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (service panics, restarts, backoff) are logged through
sutureslog into the zerolog pipeline via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddMessagingService(consumer)
	errCh := tree.ServeBackground(ctx)

The concrete service wrappers live in package services.
*/
package supervisor

// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package logging provides centralized zerolog-based structured logging for Cashpick.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int64("user_id", uid).Msg("Recommendation served")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Fit failed")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Adapters
//
// Two adapters route third-party logging into the same zerolog output:
//
//   - SlogHandler / NewSlogLogger for libraries that take *slog.Logger
//     (sutureslog in the supervisor tree)
//   - WatermillAdapter for the event bus publisher, subscriber, and router
//
// # Context Propagation
//
// HTTP middleware stores the request ID in the request context. Ctx(ctx)
// returns a logger that includes request_id and correlation_id when present.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
